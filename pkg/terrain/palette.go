package terrain

import "math"

// Colors written by the stages.
const (
	OceanFill   = "#1921B1"
	OceanStroke = "#000"
	RiverStroke = "#0000FF"
)

// BandHeight is the elevation span covered by one land palette entry.
const BandHeight = 13.0

// LandPalette holds the land fills from lowland to highland.
var LandPalette = []string{
	"#6a965c",
	"#85a979",
	"#9cb993",
	"#c7d8c2",
	"#e0e9de",
	"#fbfcfb",
}

// BandIndex returns the palette index for an elevation. Everything above the
// last band uses the last entry; negative elevations use the first.
func BandIndex(elevation float64) int {
	if math.IsNaN(elevation) || elevation < 0 {
		return 0
	}
	i := math.Floor(elevation / BandHeight)
	if i >= float64(len(LandPalette)-1) {
		return len(LandPalette) - 1
	}
	return int(i)
}

// LandFill returns the palette color for an elevation.
func LandFill(elevation float64) string {
	return LandPalette[BandIndex(elevation)]
}
