package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// Usage is printed when the input holds fewer than three records.
const Usage = "The input must consist of at least 3 lines.\n" +
	"The first line must be the maximum size of the grid.\n" +
	"The second line must contain the initial position and orientation of a rover.\n" +
	"The third line must contain rover movements.\n" +
	"For example:\n5 5\n1 2 N\nLMLMLMRM\n"

// PlateauRecord is the first input line: "width height".
type PlateauRecord struct {
	Width  string `parser:"@('-'? Int)"`
	Height string `parser:"@('-'? Int)"`
}

// SpawnRecord is a rover deployment line: "x y direction".
type SpawnRecord struct {
	X      string `parser:"@('-'? Int)"`
	Y      string `parser:"@('-'? Int)"`
	Facing string `parser:"@Ident"`
}

var (
	plateauParser = participle.MustBuild[PlateauRecord]()
	spawnParser   = participle.MustBuild[SpawnRecord]()
)

// ParsePlateau reads the upper bound of the plateau from a record
func ParsePlateau(line string) (width, height int, err error) {
	rec, err := plateauParser.ParseString("plateau", strings.TrimSpace(line))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: expected \"width height\": %v", ErrMalformedRecord, err)
	}
	if width, err = atoi(rec.Width); err != nil {
		return 0, 0, err
	}
	if height, err = atoi(rec.Height); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

// ParseSpawn reads a rover's starting position and heading from a record
func ParseSpawn(line string) (x, y int, facing Direction, err error) {
	rec, err := spawnParser.ParseString("rover", strings.TrimSpace(line))
	if err != nil {
		return 0, 0, "", fmt.Errorf("%w: expected \"x y direction\": %v", ErrMalformedRecord, err)
	}
	if x, err = atoi(rec.X); err != nil {
		return 0, 0, "", err
	}
	if y, err = atoi(rec.Y); err != nil {
		return 0, 0, "", err
	}
	if facing, err = ParseDirection(rec.Facing); err != nil {
		return 0, 0, "", err
	}
	return x, y, facing, nil
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrMalformedRecord, s)
	}
	return n, nil
}
