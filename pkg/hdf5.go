package larhits

import (
	"fmt"

	"gonum.org/v1/hdf5"
)

type EventDataHDF5 struct {
	evt_number int32
	n_hits     int32
}

type RunInfoHDF5 struct {
	run_number    int32
	settings_file [PATHLEN]byte
}

type HitHDF5 struct {
	evt_number int32
	view       int32
	drift      float64
	wire       float64
	energy     float64
	cell_size  float64
}

type ViewGeometryHDF5 struct {
	view  [STRLEN]byte
	pitch float64
	angle float64
}

type SteeringParamsHDF5 struct {
	paramStr [STRLEN]byte
	value    int32
}

const STRLEN = 32

// Longest file path stored in the run information.
const PATHLEN = 256

// Chunk length of every table.
const tableChunk = 32768

func convertToHdf5String(s string) [STRLEN]byte {
	var byteArray [STRLEN]byte
	copy(byteArray[:], s)
	return byteArray
}

func convertToHdf5Path(s string) [PATHLEN]byte {
	var byteArray [PATHLEN]byte
	copy(byteArray[:], s)
	return byteArray
}

func openFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, &ErrCreateGroup{GroupName: groupName, Err: err}
	}
	return g, nil
}

// writeTable creates a one dimensional table of compound rows and fills it.
// The table is chunked and deflate compressed.
func writeTable[T any](group *hdf5.Group, name string, rows []T, compressionLevel int) error {
	var zero T
	dims := []uint{uint(len(rows))}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return &ErrCreateTable{TableName: name, Err: err}
	}
	defer fileSpace.Close()

	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return &ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	chunk := uint(tableChunk)
	if len(rows) > 0 && len(rows) < tableChunk {
		chunk = uint(len(rows))
	}
	if err := plist.SetChunk([]uint{chunk}); err != nil {
		return &ErrCreateTable{TableName: name, Err: err}
	}
	if compressionLevel > 0 {
		if err := plist.SetDeflate(compressionLevel); err != nil {
			return &ErrCreateTable{TableName: name, Err: err}
		}
	}

	dtype, err := hdf5.NewDatatypeFromValue(zero)
	if err != nil {
		return &ErrCreateTable{TableName: name, Err: err}
	}
	defer dtype.Close()

	dset, err := group.CreateDatasetWith(name, dtype, fileSpace, plist)
	if err != nil {
		return &ErrCreateTable{TableName: name, Err: err}
	}
	defer dset.Close()

	if len(rows) == 0 {
		return nil
	}
	if err := dset.Write(&rows); err != nil {
		return fmt.Errorf("error writing table %q: %w", name, err)
	}
	return nil
}
