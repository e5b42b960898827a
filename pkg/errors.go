package larhits

import (
	"errors"
	"fmt"
)

// ErrStopProcessing is matched by every error after which the run cannot
// continue. Drivers test for it with errors.Is and shut down gracefully.
var ErrStopProcessing = errors.New("processing cannot continue")

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error {
	return e.Err
}

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

func (e *ErrCreateGroup) Unwrap() error {
	return e.Err
}

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}

func (e *ErrCreateTable) Unwrap() error {
	return e.Err
}

// ErrInvalidPitch is returned when a view is configured with a wire pitch
// that cannot be used as a quantization grid.
type ErrInvalidPitch struct {
	View  View
	Pitch float64
}

func (e *ErrInvalidPitch) Error() string {
	return fmt.Sprintf("unfeasible wire pitch %g requested for view %v", e.Pitch, e.View)
}

func (e *ErrInvalidPitch) Is(target error) bool {
	return target == ErrStopProcessing
}

// ErrInvalidView is returned for a view outside U, V and W.
type ErrInvalidView struct {
	View View
}

func (e *ErrInvalidView) Error() string {
	return fmt.Sprintf("invalid view %d, expected U, V or W", int(e.View))
}

func (e *ErrInvalidView) Is(target error) bool {
	return target == ErrStopProcessing
}

// ErrMixedViews is returned when a hit sequence holds more than one view.
type ErrMixedViews struct {
	Expected View
	Found    View
	Index    int
}

func (e *ErrMixedViews) Error() string {
	return fmt.Sprintf("multiple hit types: hit %d has view %v, expected %v", e.Index, e.Found, e.Expected)
}

func (e *ErrMixedViews) Is(target error) bool {
	return target == ErrStopProcessing
}

// ErrEmptySequence is returned when the quantizer or merger receives no hits.
type ErrEmptySequence struct {
	Operation string
}

func (e *ErrEmptySequence) Error() string {
	return fmt.Sprintf("%s called with an empty hit sequence", e.Operation)
}

func (e *ErrEmptySequence) Is(target error) bool {
	return target == ErrStopProcessing
}

// ErrDegenerateMerge is returned when a merge candidate pair carries no energy.
type ErrDegenerateMerge struct {
	View View
	Wire float64
}

func (e *ErrDegenerateMerge) Error() string {
	return fmt.Sprintf("zero energy merge candidate on view %v wire %g", e.View, e.Wire)
}

func (e *ErrDegenerateMerge) Is(target error) bool {
	return target == ErrStopProcessing
}

// ErrGeometry represents a missing or malformed geometry parameter.
type ErrGeometry struct {
	Parameter string
	Err       error
}

func (e *ErrGeometry) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("missing geometry parameter %s", e.Parameter)
	}
	return fmt.Sprintf("unable to read geometry parameter %s: %v", e.Parameter, e.Err)
}

func (e *ErrGeometry) Unwrap() error {
	return e.Err
}

func (e *ErrGeometry) Is(target error) bool {
	return target == ErrStopProcessing
}
