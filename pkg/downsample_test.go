package larhits

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var viewU = ViewConfig{View: ViewU, Pitch: 0.5, Angle: 0.6}

func TestQuantizeWire(t *testing.T) {
	tests := []struct {
		wire  float64
		pitch float64
		want  float64
	}{
		{0, 0.5, 0},
		{0.24, 0.5, 0},
		{0.25, 0.5, 0.5}, // half way goes up
		{0.26, 0.5, 0.5},
		{0.74, 0.5, 0.5},
		{0.75, 0.5, 1.0},
		{-0.25, 0.5, 0},
		{-0.3, 0.5, -0.5},
		{3.1, 1, 3},
	}
	for _, tc := range tests {
		got := QuantizeWire(tc.wire, tc.pitch)
		if got != tc.want {
			t.Errorf("QuantizeWire(%g, %g) = %g, want %g", tc.wire, tc.pitch, got, tc.want)
		}
	}
}

func TestQuantizeIdempotent(t *testing.T) {
	pitch := 0.4792
	for i := -500; i < 500; i++ {
		wire := float64(i) * 0.0173
		once := QuantizeWire(wire, pitch)
		twice := QuantizeWire(once, pitch)
		if once != twice {
			t.Fatalf("wire %g: quantized once %g, twice %g", wire, once, twice)
		}
		k := math.Round(once / pitch)
		if math.Abs(once-k*pitch) > 1e-9 {
			t.Fatalf("wire %g quantized to %g, not a multiple of %g", wire, once, pitch)
		}
	}
}

func TestQuantizeInvalidPitch(t *testing.T) {
	for _, pitch := range []float64{0, -0.5, 1e-9, Epsilon, math.NaN()} {
		hits := []ProtoHit{{Drift: 0, Wire: 0.3, Energy: 1, View: ViewU}}
		err := Quantize(hits, ViewConfig{View: ViewU, Pitch: pitch})
		var pitchErr *ErrInvalidPitch
		if !errors.As(err, &pitchErr) {
			t.Fatalf("pitch %g: expected ErrInvalidPitch, got %v", pitch, err)
		}
		if !errors.Is(err, ErrStopProcessing) {
			t.Errorf("pitch %g: error does not stop processing", pitch)
		}
		if hits[0].Wire != 0.3 {
			t.Errorf("pitch %g: hit modified to %g", pitch, hits[0].Wire)
		}
	}
}

func TestQuantizeMixedViews(t *testing.T) {
	hits := []ProtoHit{
		{Drift: 0, Wire: 0.3, Energy: 1, View: ViewU},
		{Drift: 1, Wire: 0.3, Energy: 1, View: ViewV},
	}
	err := Quantize(hits, viewU)
	var mixed *ErrMixedViews
	if !errors.As(err, &mixed) {
		t.Fatalf("expected ErrMixedViews, got %v", err)
	}
	if mixed.Index != 1 || mixed.Found != ViewV || mixed.Expected != ViewU {
		t.Errorf("unexpected error content: %+v", mixed)
	}
	if !errors.Is(err, ErrStopProcessing) {
		t.Error("mixed views must stop processing")
	}
}

func TestQuantizeWrongView(t *testing.T) {
	hits := []ProtoHit{{Drift: 0, Wire: 0.3, Energy: 1, View: ViewW}}
	if err := Quantize(hits, viewU); err == nil {
		t.Fatal("expected an error quantizing W hits with the U configuration")
	}
}

func TestQuantizeInvalidView(t *testing.T) {
	hits := []ProtoHit{{Drift: 0, Wire: 0.3, Energy: 1, View: View(7)}}
	err := Quantize(hits, ViewConfig{View: View(7), Pitch: 0.5})
	var viewErr *ErrInvalidView
	if !errors.As(err, &viewErr) {
		t.Fatalf("expected ErrInvalidView, got %v", err)
	}
	if viewErr.View != View(7) || !strings.Contains(err.Error(), "invalid view 7") {
		t.Errorf("unexpected error %q", err)
	}
	if !errors.Is(err, ErrStopProcessing) {
		t.Error("invalid view must stop processing")
	}
}

func TestEmptySequence(t *testing.T) {
	err := Quantize(nil, viewU)
	var empty *ErrEmptySequence
	if !errors.As(err, &empty) || empty.Operation != "quantize" {
		t.Errorf("Quantize: expected ErrEmptySequence, got %v", err)
	}
	_, _, err = Merge([]ProtoHit{}, MergeOptions{})
	if !errors.As(err, &empty) || empty.Operation != "merge" {
		t.Errorf("Merge: expected ErrEmptySequence, got %v", err)
	}
}

func TestCompareProtoHits(t *testing.T) {
	hits := []ProtoHit{
		{Wire: 1.0, Drift: 0.2, Energy: 1},
		{Wire: 0.5, Drift: 3.0, Energy: 1},
		{Wire: 1.0, Drift: 0.2 + 1e-9, Energy: 0.5}, // same drift within tolerance
		{Wire: 0.5 + 1e-9, Drift: 1.0, Energy: 2},   // same wire within tolerance
		{Wire: -0.5, Drift: 9.0, Energy: 1},
	}
	SortProtoHits(hits)

	want := []ProtoHit{
		{Wire: -0.5, Drift: 9.0, Energy: 1},
		{Wire: 0.5 + 1e-9, Drift: 1.0, Energy: 2},
		{Wire: 0.5, Drift: 3.0, Energy: 1},
		{Wire: 1.0, Drift: 0.2 + 1e-9, Energy: 0.5},
		{Wire: 1.0, Drift: 0.2, Energy: 1},
	}
	if diff := cmp.Diff(want, hits); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
	if CompareProtoHits(hits[0], hits[0]) != 0 {
		t.Error("a hit must compare equal to itself")
	}
}

func TestDownsampleMergesCloseHits(t *testing.T) {
	hits := []ProtoHit{
		{Drift: 0.0, Wire: 0.26, Energy: 1.0, View: ViewU},
		{Drift: 0.1, Wire: 0.30, Energy: 3.0, View: ViewU},
	}
	got, err := DownsampleHits(hits, viewU, MergeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ProtoHit{{Drift: 0.075, Wire: 0.5, Energy: 4.0, View: ViewU}}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("unexpected hits (-want +got):\n%s", diff)
	}
}

func TestDownsampleKeepsSeparatedHits(t *testing.T) {
	hits := []ProtoHit{
		{Drift: 0.6, Wire: 1.1, Energy: 2.0, View: ViewU},
		{Drift: 0.0, Wire: 0.9, Energy: 1.0, View: ViewU},
	}
	got, err := DownsampleHits(hits, viewU, MergeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ProtoHit{
		{Drift: 0.0, Wire: 1.0, Energy: 1.0, View: ViewU},
		{Drift: 0.6, Wire: 1.0, Energy: 2.0, View: ViewU},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected hits (-want +got):\n%s", diff)
	}
}

func TestMergeDirectional(t *testing.T) {
	// The directional comparison merges any pair sorted on the same wire
	hits := []ProtoHit{
		{Drift: 0.0, Wire: 1.0, Energy: 1.0, View: ViewV},
		{Drift: 0.6, Wire: 1.0, Energy: 1.0, View: ViewV},
		{Drift: 5.0, Wire: 1.0, Energy: 2.0, View: ViewV},
	}
	got, merges, err := Merge(hits, MergeOptions{Directional: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merges != 2 || len(got) != 1 {
		t.Fatalf("expected 2 merges into 1 hit, got %d merges and %d hits", merges, len(got))
	}
	if math.Abs(got[0].Drift-2.65) > 1e-12 || got[0].Energy != 4 {
		t.Errorf("unexpected merged hit %+v", got[0])
	}
}

func TestMergeChain(t *testing.T) {
	// 0 and 0.75 are too far apart, but merging 0 with 0.4 moves the
	// composite to 0.3, within reach of 0.75
	hits := []ProtoHit{
		{Drift: 0.75, Wire: 2, Energy: 1, View: ViewW},
		{Drift: 0.0, Wire: 2, Energy: 1, View: ViewW},
		{Drift: 0.4, Wire: 2, Energy: 3, View: ViewW},
	}
	got, merges, err := Merge(hits, MergeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merges != 2 || len(got) != 1 {
		t.Fatalf("expected a single hit after 2 merges, got %d hits after %d merges", len(got), merges)
	}
	if math.Abs(got[0].Drift-0.39) > 1e-12 || got[0].Energy != 5 || got[0].Wire != 2 {
		t.Errorf("unexpected merged hit %+v", got[0])
	}
}

func TestMergeDriftResolutionOverride(t *testing.T) {
	hits := []ProtoHit{
		{Drift: 0.0, Wire: 1, Energy: 1, View: ViewU},
		{Drift: 0.3, Wire: 1, Energy: 1, View: ViewU},
	}
	got, _, err := Merge(hits, MergeOptions{DriftResolution: 0.2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected hits 0.3 apart to survive a 0.2 resolution, got %d hits", len(got))
	}
}

func TestMergeDegenerateEnergy(t *testing.T) {
	hits := []ProtoHit{
		{Drift: 0.0, Wire: 1, Energy: 0, View: ViewU},
		{Drift: 0.1, Wire: 1, Energy: 0, View: ViewU},
	}
	_, _, err := Merge(hits, MergeOptions{})
	var degenerate *ErrDegenerateMerge
	if !errors.As(err, &degenerate) {
		t.Fatalf("expected ErrDegenerateMerge, got %v", err)
	}
	if !errors.Is(err, ErrStopProcessing) {
		t.Error("degenerate merge must stop processing")
	}
}

func randomHits(r *rand.Rand, n int, view View) []ProtoHit {
	hits := make([]ProtoHit, n)
	for i := range hits {
		hits[i] = ProtoHit{
			Drift:  r.Float64() * 10,
			Wire:   r.Float64() * 5,
			Energy: 0.1 + r.Float64()*2,
			View:   view,
		}
	}
	return hits
}

func TestMergeProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for _, opts := range []MergeOptions{{}, {Directional: true}} {
		for trial := 0; trial < 20; trial++ {
			hits := randomHits(r, 200, ViewV)
			inputEnergy := totalEnergy(hits)
			c := ViewConfig{View: ViewV, Pitch: 0.5}

			got, err := DownsampleHits(hits, c, opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if math.Abs(totalEnergy(got)-inputEnergy) > 1e-9 {
				t.Errorf("energy not conserved: %g in, %g out", inputEnergy, totalEnergy(got))
			}
			for i, hit := range got {
				if hit.View != ViewV {
					t.Fatalf("hit %d has view %v", i, hit.View)
				}
				for j := i + 1; j < len(got); j++ {
					if opts.Mergeable(hit, got[j]) {
						t.Fatalf("hits %d and %d still mergeable: %+v %+v", i, j, hit, got[j])
					}
				}
			}

			again := append([]ProtoHit(nil), got...)
			_, merges, err := Merge(again, opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if merges != 0 {
				t.Errorf("merge output is not a fixpoint: %d further merges", merges)
			}
		}
	}
}
