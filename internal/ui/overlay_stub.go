//go:build !ebiten

package ui

import "archipelago/internal/render"

// RevisionSource is a map that reports when it changed.
type RevisionSource interface {
	render.MapSource
	Revision() uint64
}

// Minimap is a no-op placeholder used when the ebiten build tag is absent.
type Minimap struct{}

// NewMinimap constructs a stub minimap.
func NewMinimap(RevisionSource, int) *Minimap { return &Minimap{} }

// Update is a no-op in headless builds.
func (m *Minimap) Update() {}

// Draw is a no-op placeholder.
func (m *Minimap) Draw(any, int, int) {}
