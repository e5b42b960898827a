package main

import (
	"fmt"
	"io"

	larhits "github.com/next-exp/larhits_go/pkg"
)

// EventReader applies the skip and max events settings on top of an event
// source. A negative MaxEvents reads every event.
type EventReader struct {
	Source    larhits.EventSource
	Skip      int
	MaxEvents int
	EvtCount  int
	Read      int
	Discarded int
}

func NewEventReader(source larhits.EventSource, skip int, maxEvents int) *EventReader {
	return &EventReader{Source: source, Skip: skip, MaxEvents: maxEvents, EvtCount: -1}
}

func (f *EventReader) getNextEvent() (larhits.EventType, error) {
	for {
		if f.MaxEvents >= 0 && f.Read >= f.MaxEvents {
			if VerbosityLevel > 0 {
				logger.Info("Max events reached", "eventReader")
			}
			return larhits.EventType{}, io.EOF
		}
		event, err := f.Source.NextEvent()
		if err == io.EOF {
			return event, err
		}
		// Malformed entries still occupy a position in the file
		f.EvtCount++
		if err != nil {
			if event.Error && f.EvtCount < f.Skip {
				continue
			}
			return event, err
		}
		if f.EvtCount < f.Skip {
			if VerbosityLevel > 1 {
				message := fmt.Sprintf("Skipping event %d", event.EventNumber)
				logger.Info(message, "eventReader")
			}
			continue
		}
		f.Read++
		if VerbosityLevel > 1 {
			message := fmt.Sprintf("Reading event %d with %d deposits", event.EventNumber, len(event.Deposits))
			logger.Info(message, "eventReader")
		}
		return event, nil
	}
}

// nextEvent skips the events the source reports as malformed when errors
// are discarded.
func (f *EventReader) nextEvent() (larhits.EventType, error) {
	for {
		event, err := f.getNextEvent()
		if err != nil && err != io.EOF && event.Error && DiscardErrors {
			message := fmt.Errorf("error reading event: %w", err)
			logger.Error(message.Error())
			logger.Error(fmt.Sprintf("discarding event %d", event.EventNumber))
			f.Discarded++
			continue
		}
		return event, err
	}
}
