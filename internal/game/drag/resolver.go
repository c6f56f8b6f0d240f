package drag

import (
	"sort"

	"klondike/internal/game/card"
)

// TargetKind identifies the pile kind a target represents. Stock and
// waste are never drop destinations, so only two kinds exist.
type TargetKind int

const (
	TargetTableau TargetKind = iota
	TargetFoundation
)

// Target is a registered drop candidate: a tableau column or a
// foundation pile together with its current screen rectangle.
type Target struct {
	Kind   TargetKind
	Index  int       // tableau column, 0..6
	Suit   card.Suit // foundation suit
	Bounds Rect
}

// BoundsFunc reports a target's current rectangle. Layout is owned by
// the presentation layer; the registry calls this on demand right
// before each resolution rather than on every pointer move.
type BoundsFunc func() Rect

// DefaultSensitivity is the overlap-area margin (normalized by the
// dragged box's area) above which the larger overlap wins outright.
const DefaultSensitivity = 0.2

type registration struct {
	target Target
	bounds BoundsFunc
}

// Registry holds the currently mounted drop targets. Targets are
// registered when their pile is mounted and unregistered when it
// disappears; registration order is stable and serves as the final
// determinism tie-break.
type Registry struct {
	entries []*registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a target with its bounds provider and returns a
// function that unregisters it.
func (r *Registry) Register(t Target, bounds BoundsFunc) func() {
	reg := &registration{target: t, bounds: bounds}
	r.entries = append(r.entries, reg)
	return func() {
		for i, e := range r.entries {
			if e == reg {
				r.entries = append(r.entries[:i], r.entries[i+1:]...)
				return
			}
		}
	}
}

// Clear drops every registration.
func (r *Registry) Clear() {
	r.entries = nil
}

// Snapshot refreshes every target's bounds and returns the candidates
// in registration order.
func (r *Registry) Snapshot() []Target {
	targets := make([]Target, 0, len(r.entries))
	for _, e := range r.entries {
		t := e.target
		if e.bounds != nil {
			t.Bounds = e.bounds()
		}
		targets = append(targets, t)
	}
	return targets
}

// Resolver picks the single best drop target for a dragged run.
type Resolver struct {
	// Sensitivity is the normalized overlap-area margin separating the
	// area tie-break from the pointer-distance tie-break.
	Sensitivity float64
}

// NewResolver returns a resolver with the default sensitivity.
func NewResolver() *Resolver {
	return &Resolver{Sensitivity: DefaultSensitivity}
}

// Resolve returns the best legal target overlapping dragBox, or nil.
//
// Candidates are filtered to those intersecting the dragged box and
// accepted by the injected legality predicate, then ranked by overlap
// area normalized to the dragged box: when the best candidate leads the
// runner-up by more than Sensitivity it wins outright, otherwise every
// candidate within the sensitivity band of the best competes on
// pointer-to-center distance. The result is deterministic for a given
// snapshot, pointer and state.
func (r *Resolver) Resolve(dragBox Rect, pointer Point, candidates []Target, legal func(Target) bool) *Target {
	dragArea := dragBox.Area()
	if dragArea <= 0 {
		return nil
	}

	type scored struct {
		target  Target
		overlap float64 // normalized by dragArea
	}
	var matches []scored
	for _, t := range candidates {
		overlap := dragBox.IntersectionArea(t.Bounds)
		if overlap <= 0 {
			continue
		}
		if legal != nil && !legal(t) {
			continue
		}
		matches = append(matches, scored{target: t, overlap: overlap / dragArea})
	}

	switch len(matches) {
	case 0:
		return nil
	case 1:
		return &matches[0].target
	}

	// Order by overlap, keeping registration order among exact ties.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].overlap > matches[j].overlap
	})

	sensitivity := r.Sensitivity
	if matches[0].overlap-matches[1].overlap > sensitivity {
		return &matches[0].target
	}

	// Visually ambiguous overlap: fall back to the candidate whose
	// center is nearest the pointer, among those within the band.
	best := matches[0]
	bestDist := pointer.DistanceTo(best.target.Bounds.Center())
	for _, m := range matches[1:] {
		if matches[0].overlap-m.overlap > sensitivity {
			break
		}
		if d := pointer.DistanceTo(m.target.Bounds.Center()); d < bestDist {
			best, bestDist = m, d
		}
	}
	return &best.target
}
