package larhits

import "math"

// ProjectWire returns the wire coordinate of a (y, z) position in a view.
// U and V are rotated by their wire angle; W is the reference axis.
func ProjectWire(y, z float64, c ViewConfig) float64 {
	if c.View == ViewW {
		return z
	}
	return z*math.Cos(c.Angle) - y*math.Sin(c.Angle)
}

// ProjectDeposit builds one hit per view. All three share the drift
// coordinate x and the deposit energy.
func ProjectDeposit(d Deposit, g Geometry) [3]ProtoHit {
	var hits [3]ProtoHit
	for i, v := range Views {
		hits[i] = ProtoHit{
			Drift:  d.X,
			Wire:   ProjectWire(d.Y, d.Z, g.View(v)),
			Energy: d.Energy,
			View:   v,
		}
	}
	return hits
}

// Project splits the deposits of an event into the U, V and W sequences,
// in that order. Each sequence keeps the deposit order.
func Project(deposits []Deposit, g Geometry) [3][]ProtoHit {
	var views [3][]ProtoHit
	for i := range views {
		views[i] = make([]ProtoHit, 0, len(deposits))
	}
	for _, d := range deposits {
		hits := ProjectDeposit(d, g)
		for i := range views {
			views[i] = append(views[i], hits[i])
		}
	}
	return views
}
