package larhits

import (
	"encoding/xml"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Epsilon is the tolerance used to compare wire and drift coordinates and
// to validate wire pitches. It matches single precision machine epsilon,
// the resolution of the simulated input.
const Epsilon = 1.1920929e-07

type Geometry struct {
	CenterX    float64 `db:"CenterX"`
	CenterY    float64 `db:"CenterY"`
	CenterZ    float64 `db:"CenterZ"`
	WidthX     float64 `db:"WidthX"`
	WidthY     float64 `db:"WidthY"`
	WidthZ     float64 `db:"WidthZ"`
	WireAngleU float64 `db:"WireAngleU"`
	WireAngleV float64 `db:"WireAngleV"`
	WireAngleW float64 `db:"WireAngleW"`
	WirePitchU float64 `db:"WirePitchU"`
	WirePitchV float64 `db:"WirePitchV"`
	WirePitchW float64 `db:"WirePitchW"`
}

// ViewConfig holds the immutable per-view parameters of the projection and
// quantization stages. Angle is ignored for the W view.
type ViewConfig struct {
	View  View
	Pitch float64
	Angle float64
}

func (g Geometry) View(v View) ViewConfig {
	switch v {
	case ViewU:
		return ViewConfig{View: ViewU, Pitch: g.WirePitchU, Angle: g.WireAngleU}
	case ViewV:
		return ViewConfig{View: ViewV, Pitch: g.WirePitchV, Angle: g.WireAngleV}
	default:
		return ViewConfig{View: ViewW, Pitch: g.WirePitchW, Angle: g.WireAngleW}
	}
}

// Validate checks every view can be used as a quantization grid.
func (g Geometry) Validate() error {
	for _, v := range Views {
		if err := g.View(v).validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c ViewConfig) validate() error {
	if !c.View.Valid() {
		return &ErrInvalidView{View: c.View}
	}
	if math.IsNaN(c.Pitch) || c.Pitch <= Epsilon {
		return &ErrInvalidPitch{View: c.View, Pitch: c.Pitch}
	}
	return nil
}

type geometryXML struct {
	CenterX    *string `xml:"CenterX"`
	CenterY    *string `xml:"CenterY"`
	CenterZ    *string `xml:"CenterZ"`
	WidthX     *string `xml:"WidthX"`
	WidthY     *string `xml:"WidthY"`
	WidthZ     *string `xml:"WidthZ"`
	WireAngleU *string `xml:"WireAngleU"`
	WireAngleV *string `xml:"WireAngleV"`
	WireAngleW *string `xml:"WireAngleW"`
	WirePitchU *string `xml:"WirePitchU"`
	WirePitchV *string `xml:"WirePitchV"`
	WirePitchW *string `xml:"WirePitchW"`
}

func LoadGeometryXML(filename string) (Geometry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Geometry{}, &ErrGeometry{Parameter: filename, Err: &ErrOpenFile{Filename: filename, Err: err}}
	}
	geometry, err := ParseGeometryXML(data)
	if err != nil {
		return Geometry{}, err
	}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Geometry read from %s", filename)
		logger.Info(message, "geometry")
	}
	return geometry, nil
}

// ParseGeometryXML reads the parameters stored as children of the document
// root element, whatever its name.
func ParseGeometryXML(data []byte) (Geometry, error) {
	var doc geometryXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Geometry{}, &ErrGeometry{Parameter: "document", Err: err}
	}

	var g Geometry
	fields := []struct {
		name  string
		text  *string
		value *float64
	}{
		{"CenterX", doc.CenterX, &g.CenterX},
		{"CenterY", doc.CenterY, &g.CenterY},
		{"CenterZ", doc.CenterZ, &g.CenterZ},
		{"WidthX", doc.WidthX, &g.WidthX},
		{"WidthY", doc.WidthY, &g.WidthY},
		{"WidthZ", doc.WidthZ, &g.WidthZ},
		{"WireAngleU", doc.WireAngleU, &g.WireAngleU},
		{"WireAngleV", doc.WireAngleV, &g.WireAngleV},
		{"WireAngleW", doc.WireAngleW, &g.WireAngleW},
		{"WirePitchU", doc.WirePitchU, &g.WirePitchU},
		{"WirePitchV", doc.WirePitchV, &g.WirePitchV},
		{"WirePitchW", doc.WirePitchW, &g.WirePitchW},
	}
	for _, f := range fields {
		if f.text == nil {
			return Geometry{}, &ErrGeometry{Parameter: f.name}
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(*f.text), 64)
		if err != nil {
			return Geometry{}, &ErrGeometry{Parameter: f.name, Err: err}
		}
		*f.value = value
	}
	return g, nil
}
