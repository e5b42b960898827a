package larhits

import (
	"fmt"
)

type ViewSummary struct {
	InputHits    int
	OutputHits   int
	InputEnergy  float64
	OutputEnergy float64
	Merges       int
}

type EventSummary struct {
	EventNumber int
	Views       [3]ViewSummary
}

type EventHits struct {
	EventNumber int
	Hits        []ProtoHit
	Summary     EventSummary
	Error       bool
}

// ProcessEvent projects the deposits of an event onto the three views,
// downsamples each view and concatenates the result as U, V, W. Views with
// no hits are skipped. Errors returned here stop the run.
func ProcessEvent(event EventType, geometry Geometry, opts MergeOptions) (EventHits, error) {
	result := EventHits{
		EventNumber: event.EventNumber,
		Summary:     EventSummary{EventNumber: event.EventNumber},
	}
	if err := geometry.Validate(); err != nil {
		return result, err
	}

	views := Project(event.Deposits, geometry)
	for i, hits := range views {
		if len(hits) == 0 {
			continue
		}
		summary := &result.Summary.Views[i]
		summary.InputHits = len(hits)
		summary.InputEnergy = totalEnergy(hits)

		if err := Quantize(hits, geometry.View(Views[i])); err != nil {
			return result, fmt.Errorf("event %d: %w", event.EventNumber, err)
		}
		merged, merges, err := Merge(hits, opts)
		if err != nil {
			return result, fmt.Errorf("event %d: %w", event.EventNumber, err)
		}
		summary.OutputHits = len(merged)
		summary.OutputEnergy = totalEnergy(merged)
		summary.Merges = merges
		result.Hits = append(result.Hits, merged...)

		if configuration.Verbosity > 1 {
			message := fmt.Sprintf("Event %d view %v: %d hits downsampled to %d", event.EventNumber, Views[i], summary.InputHits, summary.OutputHits)
			logger.Info(message, "pipeline")
		}
	}
	return result, nil
}

func totalEnergy(hits []ProtoHit) float64 {
	energy := 0.0
	for _, hit := range hits {
		energy += hit.Energy
	}
	return energy
}
