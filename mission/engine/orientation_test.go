package engine

import (
	"errors"
	"testing"
)

func TestDirectionVectorBijection(t *testing.T) {
	expected := map[Direction]Vector{
		North: {0, 1},
		South: {0, -1},
		East:  {1, 0},
		West:  {-1, 0},
	}

	seen := make(map[Vector]bool)
	for _, d := range Directions() {
		v := d.Vector()
		if v != expected[d] {
			t.Errorf("%s.Vector(): expected %v, got %v", d, expected[d], v)
		}
		if seen[v] {
			t.Errorf("vector %v mapped twice", v)
		}
		seen[v] = true

		if got := v.Direction(); got != d {
			t.Errorf("%v.Direction(): expected %s, got %s", v, d, got)
		}
	}

	if len(seen) != 4 {
		t.Errorf("Expected 4 distinct vectors, got %d", len(seen))
	}
}

func TestRotationClosure(t *testing.T) {
	for _, d := range Directions() {
		v := d.Vector()

		for _, rotated := range []Vector{v.RotateLeft(), v.RotateRight()} {
			if _, ok := headings[rotated]; !ok {
				t.Errorf("rotating %s produced illegal vector %v", d, rotated)
			}
		}

		if got := v.RotateLeft().RotateRight(); got != v {
			t.Errorf("%s: left then right = %v, expected %v", d, got, v)
		}
		if got := v.RotateRight().RotateLeft(); got != v {
			t.Errorf("%s: right then left = %v, expected %v", d, got, v)
		}
		if got := v.RotateLeft().RotateLeft().RotateLeft().RotateLeft(); got != v {
			t.Errorf("%s: four left turns = %v, expected %v", d, got, v)
		}
		if got := v.RotateRight().RotateRight().RotateRight().RotateRight(); got != v {
			t.Errorf("%s: four right turns = %v, expected %v", d, got, v)
		}
	}
}

func TestDirectionLeftRight(t *testing.T) {
	tests := []struct {
		from        Direction
		left, right Direction
	}{
		{North, West, East},
		{East, North, South},
		{South, East, West},
		{West, South, North},
	}

	for _, test := range tests {
		if got := test.from.Left(); got != test.left {
			t.Errorf("%s.Left(): expected %s, got %s", test.from, test.left, got)
		}
		if got := test.from.Right(); got != test.right {
			t.Errorf("%s.Right(): expected %s, got %s", test.from, test.right, got)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input    string
		expected Direction
		wantErr  bool
	}{
		{"N", North, false},
		{"S", South, false},
		{"E", East, false},
		{"W", West, false},
		{" E ", East, false},
		{"n", "", true},
		{"NE", "", true},
		{"", "", true},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			d, err := ParseDirection(test.input)
			if test.wantErr {
				if !errors.Is(err, ErrUnknownDirection) {
					t.Errorf("Expected ErrUnknownDirection, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if d != test.expected {
				t.Errorf("Expected %s, got %s", test.expected, d)
			}
		})
	}
}

func TestVectorDirectionPanicsOnIllegalVector(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for non-unit vector")
		}
	}()
	Vector{DX: 1, DY: 1}.Direction()
}
