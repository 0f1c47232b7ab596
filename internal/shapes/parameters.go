package shapes

import (
	"fmt"
	"strings"
)

// ParameterLayout names the positional entries of XmiCrossSection.Parameters
// for one shape, in order.
type ParameterLayout []string

func (l ParameterLayout) String() string {
	return fmt.Sprintf("%d values (%s)", len(l), strings.Join(l, ", "))
}

// parameterLayouts lists the accepted layouts per shape. T Shape has a
// standard and a rolled-section form. Shapes missing here (Others,
// Unknown) take any number of values.
var parameterLayouts = map[string][]ParameterLayout{
	"Rectangular":        {{"H", "B"}},
	"Circular":           {{"D"}},
	"L Shape":            {{"H", "B", "T", "t"}},
	"T Shape":            {{"H", "B", "T", "t"}, {"d", "B", "T", "t", "r"}},
	"C Shape":            {{"H", "B", "T1", "T2", "t"}},
	"I Shape":            {{"D", "B", "T", "t", "r"}},
	"Square Hollow":      {{"D", "t"}},
	"Rectangular Hollow": {{"D", "B", "t"}},
}

// Root radii may be zero; every other dimension must be positive.
var zeroAllowed = map[string]bool{"r": true}

// ParameterLayouts returns the layouts accepted for shape, nil when the
// shape takes free-form parameters.
func ParameterLayouts(shape string) []ParameterLayout {
	if v, ok := CrossSectionShapes.lookup(shape); ok {
		shape = v
	}
	return parameterLayouts[shape]
}

// RequiredParameters returns the symbols of the primary layout for shape.
func RequiredParameters(shape string) []string {
	layouts := ParameterLayouts(shape)
	if len(layouts) == 0 {
		return nil
	}
	out := make([]string, len(layouts[0]))
	copy(out, layouts[0])
	return out
}

func layoutFor(shape string, n int) (ParameterLayout, bool) {
	for _, l := range parameterLayouts[shape] {
		if len(l) == n {
			return l, true
		}
	}
	return nil, false
}

// ShapeParameters labels the positional Parameters with their symbols.
// It returns nil for free-form shapes.
func (c *CrossSection) ShapeParameters() map[string]float64 {
	l, ok := layoutFor(c.Shape, len(c.Parameters))
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(l))
	for i, sym := range l {
		out[sym] = c.Parameters[i]
	}
	return out
}

func (r *reader) shapeParameters(field, shape string, values []float64) {
	layouts := parameterLayouts[shape]
	if len(layouts) == 0 || values == nil {
		return
	}
	l, ok := layoutFor(shape, len(values))
	if !ok {
		alts := make([]string, len(layouts))
		for i, l := range layouts {
			alts[i] = l.String()
		}
		r.fail(field, "%s takes %s, got %d", shape, strings.Join(alts, " or "), len(values))
		return
	}
	for i, sym := range l {
		if values[i] == 0 && !zeroAllowed[sym] {
			r.fail(field, "%s must be greater than 0", sym)
		}
	}
}
