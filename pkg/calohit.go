package larhits

import "gonum.org/v1/gonum/spatial/r3"

// HitSize is the cell size (cm) given to every hit handed to reconstruction.
const HitSize = 0.5

type CellGeometry int

const (
	Rectangular CellGeometry = iota
)

type HitRegion int

const (
	SingleRegion HitRegion = iota
)

// CaloHitParameters carries a finalized hit in the form expected by the
// reconstruction engine. Most values are fixed placeholders.
type CaloHitParameters struct {
	Position                r3.Vec
	ExpectedDirection       r3.Vec
	CellNormalVector        r3.Vec
	CellGeometry            CellGeometry
	CellSize0               float64
	CellSize1               float64
	CellThickness           float64
	NCellRadiationLengths   float64
	NCellInteractionLengths float64
	Time                    float64
	InputEnergy             float64
	MipEquivalentEnergy     float64
	ElectromagneticEnergy   float64
	HadronicEnergy          float64
	IsDigital               bool
	HitType                 View
	HitRegion               HitRegion
	Layer                   int
	IsInOuterSamplingLayer  bool
}

// NewCaloHitParameters places the hit at (drift, 0, wire) in its view.
func NewCaloHitParameters(hit ProtoHit) CaloHitParameters {
	return CaloHitParameters{
		Position:                r3.Vec{X: hit.Drift, Y: 0, Z: hit.Wire},
		ExpectedDirection:       r3.Vec{X: 0, Y: 0, Z: 1},
		CellNormalVector:        r3.Vec{X: 0, Y: 0, Z: 1},
		CellGeometry:            Rectangular,
		CellSize0:               HitSize,
		CellSize1:               HitSize,
		CellThickness:           HitSize,
		NCellRadiationLengths:   1,
		NCellInteractionLengths: 1,
		Time:                    0,
		InputEnergy:             hit.Energy,
		MipEquivalentEnergy:     1,
		ElectromagneticEnergy:   hit.Energy,
		HadronicEnergy:          hit.Energy,
		IsDigital:               false,
		HitType:                 hit.View,
		HitRegion:               SingleRegion,
		Layer:                   0,
		IsInOuterSamplingLayer:  false,
	}
}

func NewCaloHits(hits []ProtoHit) []CaloHitParameters {
	params := make([]CaloHitParameters, len(hits))
	for i, hit := range hits {
		params[i] = NewCaloHitParameters(hit)
	}
	return params
}

// HitSink receives the hits of each processed event.
type HitSink interface {
	WriteEvent(eventNumber int, hits []CaloHitParameters) error
	Close() error
}

// MemorySink keeps every event in memory, in arrival order.
type MemorySink struct {
	Events []int
	Hits   [][]CaloHitParameters
}

func (m *MemorySink) WriteEvent(eventNumber int, hits []CaloHitParameters) error {
	m.Events = append(m.Events, eventNumber)
	m.Hits = append(m.Hits, hits)
	return nil
}

func (m *MemorySink) Close() error {
	return nil
}
