package larhits

import (
	"fmt"
	"math"

	"golang.org/x/exp/slices"
)

// DriftResolution is the drift distance (cm) below which two hits on the
// same wire cannot be told apart by the readout.
const DriftResolution = 0.5

type MergeOptions struct {
	// DriftResolution overrides the package constant when positive.
	DriftResolution float64
	// Directional compares h1.Drift-h2.Drift without taking the absolute
	// value. Every pair of hits on the same wire then merges. Kept to
	// reproduce legacy reference output.
	Directional bool
}

func (o MergeOptions) resolution() float64 {
	if o.DriftResolution > 0 {
		return o.DriftResolution
	}
	return DriftResolution
}

func (o MergeOptions) Mergeable(h1, h2 ProtoHit) bool {
	if math.Abs(h1.Wire-h2.Wire) >= Epsilon {
		return false
	}
	separation := h1.Drift - h2.Drift
	if !o.Directional {
		separation = math.Abs(separation)
	}
	return separation < o.resolution()
}

// QuantizeWire snaps a wire coordinate to the closest multiple of pitch.
// Half way values go to the upper wire.
func QuantizeWire(wire float64, pitch float64) float64 {
	return math.Floor((wire+0.5*pitch)/pitch) * pitch
}

// Quantize snaps every hit of a single-view sequence onto the wire grid of c.
func Quantize(hits []ProtoHit, c ViewConfig) error {
	if err := c.validate(); err != nil {
		return err
	}
	if len(hits) == 0 {
		return &ErrEmptySequence{Operation: "quantize"}
	}
	if err := checkViews(hits, c.View); err != nil {
		return err
	}
	for i := range hits {
		hits[i].Wire = QuantizeWire(hits[i].Wire, c.Pitch)
	}
	return nil
}

// CompareProtoHits orders by wire, then drift, then energy. Wire and drift
// differences within Epsilon count as equal.
func CompareProtoHits(a, b ProtoHit) int {
	if math.Abs(b.Wire-a.Wire) > Epsilon {
		if a.Wire < b.Wire {
			return -1
		}
		return 1
	}
	if math.Abs(b.Drift-a.Drift) > Epsilon {
		if a.Drift < b.Drift {
			return -1
		}
		return 1
	}
	switch {
	case a.Energy < b.Energy:
		return -1
	case a.Energy > b.Energy:
		return 1
	}
	return 0
}

func SortProtoHits(hits []ProtoHit) {
	slices.SortStableFunc(hits, CompareProtoHits)
}

// Merge collapses hits sharing a wire and within the drift resolution until
// no such adjacent pair remains. The slice is sorted and shortened in place;
// the returned slice is the final sorted sequence. The second value is the
// number of merges performed.
func Merge(hits []ProtoHit, opts MergeOptions) ([]ProtoHit, int, error) {
	if len(hits) == 0 {
		return nil, 0, &ErrEmptySequence{Operation: "merge"}
	}
	if err := checkViews(hits, hits[0].View); err != nil {
		return nil, 0, err
	}

	merges := 0
	for {
		SortProtoHits(hits)
		i := findMerge(hits, opts)
		if i < 0 {
			return hits, merges, nil
		}
		merged, err := mergePair(hits[i], hits[i+1])
		if err != nil {
			return nil, merges, err
		}
		if configuration.Verbosity > 2 {
			message := fmt.Sprintf("View %v: merging hits at wire %g, drift %g and %g", merged.View, merged.Wire, hits[i].Drift, hits[i+1].Drift)
			logger.Info(message, "merger")
		}
		hits[i] = merged
		hits = slices.Delete(hits, i+1, i+2)
		merges++
	}
}

// DownsampleHits quantizes a single-view sequence to the readout pitch and
// merges the hits that end up on the same wire.
func DownsampleHits(hits []ProtoHit, c ViewConfig, opts MergeOptions) ([]ProtoHit, error) {
	if err := Quantize(hits, c); err != nil {
		return nil, err
	}
	merged, _, err := Merge(hits, opts)
	return merged, err
}

// findMerge returns the index of the first adjacent mergeable pair, or -1.
func findMerge(hits []ProtoHit, opts MergeOptions) int {
	for i := 0; i+1 < len(hits); i++ {
		if opts.Mergeable(hits[i], hits[i+1]) {
			return i
		}
	}
	return -1
}

func mergePair(h1, h2 ProtoHit) (ProtoHit, error) {
	energy := h1.Energy + h2.Energy
	if !(energy > 0) {
		return ProtoHit{}, &ErrDegenerateMerge{View: h1.View, Wire: h1.Wire}
	}
	return ProtoHit{
		// Merged hit stays on the shared wire
		Wire:   h1.Wire,
		Drift:  (h1.Drift*h1.Energy + h2.Drift*h2.Energy) / energy,
		Energy: energy,
		View:   h1.View,
	}, nil
}

func checkViews(hits []ProtoHit, view View) error {
	for i, hit := range hits {
		if hit.View != view {
			return &ErrMixedViews{Expected: view, Found: hit.View, Index: i}
		}
	}
	return nil
}
