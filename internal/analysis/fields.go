package analysis

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names accepted by SetField and Field, in display order
const (
	FieldSpan         = "span"
	FieldLoad         = "load"
	FieldLoadType     = "load_type"
	FieldMaterial     = "material"
	FieldDepth        = "depth"
	FieldWidth        = "width"
	FieldShape        = "shape"
	FieldSafetyFactor = "safety_factor"
	FieldSeismicZone  = "seismic_zone"
	FieldWindSpeed    = "wind_speed"
	FieldHeight       = "height"
	FieldFootingArea  = "footing_area"
)

// FieldNames lists every parameter field in display order
var FieldNames = []string{
	FieldSpan, FieldLoad, FieldLoadType, FieldMaterial, FieldDepth, FieldWidth,
	FieldShape, FieldSafetyFactor, FieldSeismicZone, FieldWindSpeed, FieldHeight, FieldFootingArea,
}

// UnknownFieldError is returned for a field name not in FieldNames
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Name)
}

// SetField assigns one field from its text form. Names are matched
// case-insensitively. Only the syntax is checked here; ranges are left to
// Validate.
func (p *Parameters) SetField(name, value string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	value = strings.TrimSpace(value)

	var target *float64
	switch name {
	case FieldSpan:
		target = &p.Span
	case FieldLoad:
		target = &p.Load
	case FieldDepth:
		target = &p.Depth
	case FieldWidth:
		target = &p.Width
	case FieldSafetyFactor:
		target = &p.SafetyFactor
	case FieldWindSpeed:
		target = &p.WindSpeed
	case FieldHeight:
		target = &p.Height
	case FieldFootingArea:
		target = &p.FootingArea
	case FieldLoadType:
		p.LoadType = LoadType(strings.ToLower(value))
		return nil
	case FieldMaterial:
		p.MaterialID = strings.ToLower(value)
		return nil
	case FieldShape:
		p.ShapeID = strings.ToLower(value)
		return nil
	case FieldSeismicZone:
		p.SeismicZone = value
		return nil
	default:
		return &UnknownFieldError{Name: name}
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%s: %q is not a number", name, value)
	}
	*target = v
	return nil
}

// Field returns the text form of one field
func (p Parameters) Field(name string) (string, error) {
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	switch strings.ToLower(strings.TrimSpace(name)) {
	case FieldSpan:
		return num(p.Span), nil
	case FieldLoad:
		return num(p.Load), nil
	case FieldLoadType:
		return string(p.LoadType), nil
	case FieldMaterial:
		return p.MaterialID, nil
	case FieldDepth:
		return num(p.Depth), nil
	case FieldWidth:
		return num(p.Width), nil
	case FieldShape:
		return p.ShapeID, nil
	case FieldSafetyFactor:
		return num(p.SafetyFactor), nil
	case FieldSeismicZone:
		return p.SeismicZone, nil
	case FieldWindSpeed:
		return num(p.WindSpeed), nil
	case FieldHeight:
		return num(p.Height), nil
	case FieldFootingArea:
		return num(p.FootingArea), nil
	default:
		return "", &UnknownFieldError{Name: name}
	}
}
