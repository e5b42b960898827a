package larhits

import (
	"fmt"
	"io"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
)

const DefaultTreeName = "G4TPC"

// RootEventSource reads Geant4 energy deposits from a ROOT tree, one entry
// per event. Branches CellX, CellY, CellZ hold positions in mm and
// CellEnergy the deposited energy.
type RootEventSource struct {
	Filename string
	file     *riofs.File
	tree     rtree.Tree
	next     int64
}

func NewRootEventSource(filename string, treeName string) (*RootEventSource, error) {
	if treeName == "" {
		treeName = DefaultTreeName
	}
	f, err := groot.Open(filename)
	if err != nil {
		return nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	obj, err := riofs.Dir(f).Get(treeName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error reading tree %q from %s: %w", treeName, filename, err)
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		f.Close()
		return nil, fmt.Errorf("object %q in %s is not a tree", treeName, filename)
	}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Tree %s has %d entries", treeName, tree.Entries())
		logger.Info(message, "rootReader")
	}
	return &RootEventSource{Filename: filename, file: f, tree: tree}, nil
}

func (r *RootEventSource) Entries() int64 {
	return r.tree.Entries()
}

func (r *RootEventSource) NextEvent() (EventType, error) {
	if r.next >= r.tree.Entries() {
		return EventType{}, io.EOF
	}
	entry := r.next
	r.next++

	var cellX, cellY, cellZ, cellEnergy []float32
	rvars := []rtree.ReadVar{
		{Name: "CellX", Value: &cellX},
		{Name: "CellY", Value: &cellY},
		{Name: "CellZ", Value: &cellZ},
		{Name: "CellEnergy", Value: &cellEnergy},
	}
	reader, err := rtree.NewReader(r.tree, rvars, rtree.WithRange(entry, entry+1))
	if err != nil {
		return EventType{}, fmt.Errorf("error creating reader for entry %d: %w", entry, err)
	}
	defer reader.Close()

	err = reader.Read(func(ctx rtree.RCtx) error {
		return nil
	})
	if err != nil {
		return EventType{}, fmt.Errorf("error reading entry %d: %w", entry, err)
	}

	n := len(cellEnergy)
	if len(cellX) != n || len(cellY) != n || len(cellZ) != n {
		return EventType{EventNumber: int(entry), Error: true},
			fmt.Errorf("entry %d: branch sizes differ (x %d, y %d, z %d, energy %d)", entry, len(cellX), len(cellY), len(cellZ), n)
	}

	event := EventType{
		EventNumber: int(entry),
		Deposits:    make([]Deposit, n),
	}
	for i := 0; i < n; i++ {
		event.Deposits[i] = Deposit{
			X:      float64(cellX[i]) * MillimetersToCentimeters,
			Y:      float64(cellY[i]) * MillimetersToCentimeters,
			Z:      float64(cellZ[i]) * MillimetersToCentimeters,
			Energy: float64(cellEnergy[i]),
		}
	}
	return event, nil
}

func (r *RootEventSource) Close() error {
	return r.file.Close()
}
