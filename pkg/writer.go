package larhits

import (
	"errors"
	"fmt"
	"reflect"

	"gonum.org/v1/hdf5"
)

// Writer stores the hits of a run in an HDF5 file. Rows are buffered and
// the tables are written when the writer is closed.
type Writer struct {
	File             *hdf5.File
	Filename         string
	CompressionLevel int
	RunGroup         *hdf5.Group
	GeometryGroup    *hdf5.Group
	HitsGroup        *hdf5.Group
	RecoGroup        *hdf5.Group
	EvtCounter       int

	runInfo  []RunInfoHDF5
	views    []ViewGeometryHDF5
	steering []SteeringParamsHDF5
	events   []EventDataHDF5
	hits     []HitHDF5
}

func NewWriter(filename string, compressionLevel int) (*Writer, error) {
	writer := &Writer{Filename: filename, CompressionLevel: compressionLevel}
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Creating file: %s", filename), "hdf5writer")
	}

	var err error
	writer.File, err = openFile(filename)
	if err != nil {
		return nil, err
	}
	groups := []struct {
		name  string
		group **hdf5.Group
	}{
		{"Run", &writer.RunGroup},
		{"Geometry", &writer.GeometryGroup},
		{"Hits", &writer.HitsGroup},
		{"Reco", &writer.RecoGroup},
	}
	for _, g := range groups {
		*g.group, err = createGroup(writer.File, g.name)
		if err != nil {
			writer.closeGroups()
			writer.File.Close()
			return nil, err
		}
	}
	return writer, nil
}

// WriteRunInfo records the run number, the reconstruction settings file,
// the wire geometry and the reconstruction steering used for the run.
func (w *Writer) WriteRunInfo(runNumber int, settingsFile string, geometry Geometry, steering Steering) {
	w.runInfo = append(w.runInfo, RunInfoHDF5{
		run_number:    int32(runNumber),
		settings_file: convertToHdf5Path(settingsFile),
	})
	for _, v := range Views {
		c := geometry.View(v)
		w.views = append(w.views, ViewGeometryHDF5{
			view:  convertToHdf5String(v.String()),
			pitch: c.Pitch,
			angle: c.Angle,
		})
	}
	w.writeSteering(steering)
}

func (w *Writer) WriteEvent(eventNumber int, hits []CaloHitParameters) error {
	w.events = append(w.events, EventDataHDF5{
		evt_number: int32(eventNumber),
		n_hits:     int32(len(hits)),
	})
	for _, hit := range hits {
		w.hits = append(w.hits, HitHDF5{
			evt_number: int32(eventNumber),
			view:       int32(hit.HitType),
			drift:      hit.Position.X,
			wire:       hit.Position.Z,
			energy:     hit.InputEnergy,
			cell_size:  hit.CellSize0,
		})
	}
	w.EvtCounter++
	return nil
}

// writeSteering stores every boolean steering flag as a name/value row,
// named after its hdf5 tag.
func (w *Writer) writeSteering(steering Steering) {
	t := reflect.TypeOf(steering)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type.Kind() != reflect.Bool {
			continue
		}
		var value int32
		if reflect.ValueOf(steering).Field(i).Bool() {
			value = 1
		}
		w.steering = append(w.steering, SteeringParamsHDF5{
			paramStr: convertToHdf5String(f.Tag.Get("hdf5")),
			value:    value,
		})
	}
}

func (w *Writer) Close() error {
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Closing file %s with %d events", w.Filename, w.EvtCounter), "hdf5writer")
	}
	var errs []error

	if err := writeTable(w.RunGroup, "runInfo", w.runInfo, w.CompressionLevel); err != nil {
		errs = append(errs, err)
	}
	if err := writeTable(w.RunGroup, "events", w.events, w.CompressionLevel); err != nil {
		errs = append(errs, err)
	}
	if err := writeTable(w.GeometryGroup, "views", w.views, w.CompressionLevel); err != nil {
		errs = append(errs, err)
	}
	if err := writeTable(w.RecoGroup, "steering", w.steering, w.CompressionLevel); err != nil {
		errs = append(errs, err)
	}
	if err := writeTable(w.HitsGroup, "calohits", w.hits, w.CompressionLevel); err != nil {
		errs = append(errs, err)
	}

	errs = append(errs, w.closeGroups()...)
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (w *Writer) closeGroups() []error {
	var errs []error
	groups := []struct {
		name  string
		group *hdf5.Group
	}{
		{"run", w.RunGroup},
		{"geometry", w.GeometryGroup},
		{"hits", w.HitsGroup},
		{"reco", w.RecoGroup},
	}
	for _, g := range groups {
		if g.group == nil {
			continue
		}
		if err := g.group.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing %s group: %w", g.name, err))
		}
	}
	return errs
}
