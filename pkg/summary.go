package larhits

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// RunSummary accumulates per view statistics over the processed events.
type RunSummary struct {
	Events      int
	Discarded   int
	inputHits   [3][]float64
	outputHits  [3][]float64
	inputEnergy [3][]float64
	outEnergy   [3][]float64
}

func (r *RunSummary) Add(s EventSummary) {
	r.Events++
	for i, v := range s.Views {
		r.inputHits[i] = append(r.inputHits[i], float64(v.InputHits))
		r.outputHits[i] = append(r.outputHits[i], float64(v.OutputHits))
		r.inputEnergy[i] = append(r.inputEnergy[i], v.InputEnergy)
		r.outEnergy[i] = append(r.outEnergy[i], v.OutputEnergy)
	}
}

func (r *RunSummary) AddDiscarded(n int) {
	r.Discarded += n
}

func (r *RunSummary) InputHits(v View) int {
	return int(floats.Sum(r.inputHits[v]))
}

func (r *RunSummary) OutputHits(v View) int {
	return int(floats.Sum(r.outputHits[v]))
}

func (r *RunSummary) InputEnergy(v View) float64 {
	return floats.Sum(r.inputEnergy[v])
}

func (r *RunSummary) OutputEnergy(v View) float64 {
	return floats.Sum(r.outEnergy[v])
}

// MaxOutputHits is the largest number of hits written for one event in a view.
func (r *RunSummary) MaxOutputHits(v View) int {
	if len(r.outputHits[v]) == 0 {
		return 0
	}
	return int(floats.Max(r.outputHits[v]))
}

func (r *RunSummary) Log() {
	message := fmt.Sprintf("Events processed: %d, discarded: %d", r.Events, r.Discarded)
	logger.Info(message, "summary")
	for _, v := range Views {
		message := fmt.Sprintf("View %v: %d hits -> %d hits (max %d per event), energy %g -> %g",
			v, r.InputHits(v), r.OutputHits(v), r.MaxOutputHits(v), r.InputEnergy(v), r.OutputEnergy(v))
		logger.Info(message, "summary")
	}
}
