package api

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/wricardo/mcp-training/marsrover/mission/engine"
)

// PlateauFeatures renders a plateau as GeoJSON in grid coordinates: the
// plateau outline, one point per rover and, for rovers that have moved, a
// track through every cell they occupied.
func PlateauFeatures(state *engine.PlateauState, histories map[int][]engine.Event) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	w, h := float64(state.Width), float64(state.Height)
	outline := geojson.NewFeature(orb.Polygon{orb.Ring{{0, 0}, {w, 0}, {w, h}, {0, h}, {0, 0}}})
	outline.Properties["kind"] = "plateau"
	outline.Properties["width"] = state.Width
	outline.Properties["height"] = state.Height
	fc.Append(outline)

	for _, rover := range state.Rovers {
		point := geojson.NewFeature(orb.Point{float64(rover.X), float64(rover.Y)})
		point.Properties["kind"] = "rover"
		point.Properties["id"] = rover.ID
		point.Properties["facing"] = string(rover.Facing)
		fc.Append(point)

		if track := roverTrack(histories[rover.ID]); len(track) > 1 {
			line := geojson.NewFeature(track)
			line.Properties["kind"] = "track"
			line.Properties["id"] = rover.ID
			fc.Append(line)
		}
	}

	return fc
}

// roverTrack joins the cells visited by successful moves
func roverTrack(events []engine.Event) orb.LineString {
	var track orb.LineString
	for _, ev := range events {
		if ev.Type != engine.EventMove {
			continue
		}
		if len(track) == 0 {
			track = append(track, orb.Point{float64(ev.From.X), float64(ev.From.Y)})
		}
		track = append(track, orb.Point{float64(ev.To.X), float64(ev.To.Y)})
	}
	return track
}
