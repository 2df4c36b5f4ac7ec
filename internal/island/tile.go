package island

import "archipelago/internal/core"

// Tile is one cell of an island's elevation grid.
type Tile struct {
	Pos    core.Vec
	Height float64
}

// Band is a coarse height classification used by renderers.
type Band uint8

const (
	BandWater Band = iota
	BandShore
	BandLowland
	BandHighland
)

const (
	shoreMax   = 0.004
	lowlandMax = 0.02
)

// Classify maps a height onto a Band. Heights <= 0 are water.
func Classify(height float64) Band {
	switch {
	case height <= 0:
		return BandWater
	case height <= shoreMax:
		return BandShore
	case height <= lowlandMax:
		return BandLowland
	default:
		return BandHighland
	}
}

// String returns the band name.
func (b Band) String() string {
	switch b {
	case BandWater:
		return "water"
	case BandShore:
		return "shore"
	case BandLowland:
		return "lowland"
	case BandHighland:
		return "highland"
	default:
		return "unknown"
	}
}
