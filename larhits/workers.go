package main

import (
	"fmt"
	"io"
	"sync"

	larhits "github.com/next-exp/larhits_go/pkg"
)

type WorkerData struct {
	Index int
	Event larhits.EventType
}

type WorkerResult struct {
	Index int
	Hits  larhits.EventHits
	Err   error
}

// Processor runs the hit pipeline over the events of a reader and hands the
// results to the sink in event order.
type Processor struct {
	Geometry larhits.Geometry
	Options  larhits.MergeOptions
	Sink     larhits.HitSink
	Summary  larhits.RunSummary
}

func (p *Processor) Run(reader *EventReader, numWorkers int) error {
	var err error
	if numWorkers <= 1 {
		err = p.runSequential(reader)
	} else {
		err = p.runParallel(reader, numWorkers)
	}
	p.Summary.AddDiscarded(reader.Discarded)
	return err
}

func (p *Processor) runSequential(reader *EventReader) error {
	for {
		event, err := reader.nextEvent()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading event: %w", err)
		}
		hits, err := p.processEvent(event)
		if err := p.handleResult(WorkerResult{Hits: hits, Err: err}); err != nil {
			return err
		}
	}
}

func (p *Processor) runParallel(reader *EventReader, numWorkers int) error {
	jobs := make(chan WorkerData, numWorkers)
	results := make(chan WorkerResult, numWorkers)
	done := make(chan struct{})

	var wg sync.WaitGroup
	for w := 1; w <= numWorkers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			worker(id, p, jobs, results)
		}(w)
	}
	readErr := make(chan error, 1)
	go func() {
		readErr <- sendEventsToWorkers(reader, jobs, done)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	// Results arrive in any order, they are handled by index
	pending := make(map[int]WorkerResult)
	next := 0
	var firstErr error
	for result := range results {
		if firstErr != nil {
			continue
		}
		pending[result.Index] = result
		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if err := p.handleResult(r); err != nil {
				firstErr = err
				close(done)
				break
			}
		}
	}
	if firstErr != nil {
		return firstErr
	}
	return <-readErr
}

func worker(id int, p *Processor, jobs <-chan WorkerData, results chan<- WorkerResult) {
	for job := range jobs {
		if VerbosityLevel > 2 {
			message := fmt.Sprintf("Worker %d processing event %d", id, job.Event.EventNumber)
			logger.Info(message, "worker")
		}
		hits, err := p.processEvent(job.Event)
		results <- WorkerResult{Index: job.Index, Hits: hits, Err: err}
	}
}

func sendEventsToWorkers(reader *EventReader, jobs chan<- WorkerData, done <-chan struct{}) error {
	defer close(jobs)
	for index := 0; ; index++ {
		event, err := reader.nextEvent()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading event: %w", err)
		}
		select {
		case jobs <- WorkerData{Index: index, Event: event}:
		case <-done:
			return nil
		}
	}
}

// processEvent runs the pipeline on one event. A panic discards the event
// instead of stopping the run.
func (p *Processor) processEvent(event larhits.EventType) (hits larhits.EventHits, err error) {
	defer func() {
		if r := recover(); r != nil {
			errMessage := fmt.Errorf("recovered from panic on event %d: %v", event.EventNumber, r)
			logger.Error(errMessage.Error())
			message := fmt.Sprintf("discarding event %d", event.EventNumber)
			logger.Error(message)
			hits = larhits.EventHits{EventNumber: event.EventNumber, Error: true}
			err = nil
		}
	}()

	if DisplayEventNumber {
		message := fmt.Sprintf("PROCESSING EVENT: %d", event.EventNumber)
		logger.Info(message, "main")
	}
	return larhits.ProcessEvent(event, p.Geometry, p.Options)
}

func (p *Processor) handleResult(result WorkerResult) error {
	if result.Err != nil {
		return result.Err
	}
	if result.Hits.Error {
		p.Summary.AddDiscarded(1)
		return nil
	}
	p.Summary.Add(result.Hits.Summary)
	if p.Sink == nil {
		return nil
	}
	calohits := larhits.NewCaloHits(result.Hits.Hits)
	if err := p.Sink.WriteEvent(result.Hits.EventNumber, calohits); err != nil {
		return fmt.Errorf("error writing event %d: %w", result.Hits.EventNumber, err)
	}
	return nil
}
