package larhits

// Length conversion applied by event sources: Geant4 is mm, hits are cm.
const MillimetersToCentimeters = 0.1

type View int

const (
	ViewU View = iota
	ViewV
	ViewW
)

// Views lists the wire planes in output order.
var Views = [3]View{ViewU, ViewV, ViewW}

func (v View) String() string {
	switch v {
	case ViewU:
		return "U"
	case ViewV:
		return "V"
	case ViewW:
		return "W"
	default:
		return "Unknown"
	}
}

func (v View) Valid() bool {
	return v >= ViewU && v <= ViewW
}

// Deposit is one simulated energy deposit, positions in cm.
type Deposit struct {
	X      float64
	Y      float64
	Z      float64
	Energy float64
}

type EventType struct {
	EventNumber int
	Deposits    []Deposit
	Error       bool
}

// ProtoHit is a deposit projected onto one view. Drift is never modified,
// Wire is snapped by quantization and merging, Energy is summed by merging.
type ProtoHit struct {
	Drift  float64
	Wire   float64
	Energy float64
	View   View
}
