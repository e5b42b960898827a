package larhits

import "io"

// EventSource delivers events in order. NextEvent returns io.EOF once every
// event has been read.
type EventSource interface {
	NextEvent() (EventType, error)
	Close() error
}

// SliceEventSource serves events held in memory.
type SliceEventSource struct {
	Events []EventType
	next   int
}

func NewSliceEventSource(events []EventType) *SliceEventSource {
	return &SliceEventSource{Events: events}
}

func (s *SliceEventSource) NextEvent() (EventType, error) {
	if s.next >= len(s.Events) {
		return EventType{}, io.EOF
	}
	event := s.Events[s.next]
	s.next++
	return event, nil
}

func (s *SliceEventSource) Close() error {
	return nil
}
