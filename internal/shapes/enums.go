package shapes

import (
	"strings"
)

// enum is a closed set of string values. Lookup ignores case and also
// accepts the constant-style spelling ("L_SHAPE" for "L Shape").
type enum struct {
	name   string
	values []string
	index  map[string]string
}

func newEnum(name string, values ...string) *enum {
	e := &enum{name: name, values: values, index: make(map[string]string, 2*len(values))}
	for _, v := range values {
		e.index[strings.ToLower(v)] = v
		e.index[strings.ToLower(strings.ReplaceAll(v, " ", "_"))] = v
	}
	return e
}

// lookup returns the declared spelling of s.
func (e *enum) lookup(s string) (string, bool) {
	v, ok := e.index[strings.ToLower(strings.TrimSpace(s))]
	return v, ok
}

// Values returns the declared values in order.
func (e *enum) Values() []string {
	out := make([]string, len(e.values))
	copy(out, e.values)
	return out
}

var (
	MaterialTypes = newEnum("MaterialType",
		"Concrete", "Steel", "Timber", "Aluminium", "Composite", "Masonry", "Others", "Rebar", "Tendon")

	CrossSectionShapes = newEnum("Shape",
		"Rectangular", "Circular", "L Shape", "T Shape", "C Shape", "I Shape",
		"Square Hollow", "Rectangular Hollow", "Others", "Unknown")

	CurveMemberTypes = newEnum("CurveMemberType", "Beam", "Column", "Bracing", "Other", "Unknown")

	SystemLines = newEnum("SystemLine",
		"Top Left", "Top Middle", "Top Right",
		"Middle Left", "Middle Middle", "Middle Right",
		"Bottom Left", "Bottom Middle", "Bottom Right", "Unknown")

	SurfaceMemberTypes = newEnum("SurfaceMemberType",
		"Slab", "Wall", "Pad Footing", "Strip Footing", "Pilecap", "Roof Panel", "Wall Panel", "Raft", "Unknown")

	SystemPlanes = newEnum("SystemPlane", "Bottom", "Top", "Middle", "Left", "Right", "Unknown")

	SpanTypes = newEnum("SpanType", "One Way", "Two Way", "Unknown")

	SegmentTypes = newEnum("SegmentType", "Line", "Circular Arc", "Parabolic Arc", "Bezier", "Spline", "Others")

	Units = newEnum("Unit",
		"m", "cm", "mm", "m^2", "cm^2", "mm^2", "m^3", "cm^3", "mm^3", "m^4", "cm^4", "mm^4",
		"in", "ft", "yd", "in^2", "ft^2", "in^3", "ft^3", "in^4", "sec")
)
