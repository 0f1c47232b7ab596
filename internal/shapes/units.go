package shapes

import (
	"fmt"
	"math"

	"github.com/aalvaropc/xmigraph/internal/domain"
)

// UnitFamily groups units that convert into one another.
type UnitFamily string

const (
	FamilyLength  UnitFamily = "length"
	FamilyArea    UnitFamily = "area"
	FamilyVolume  UnitFamily = "volume"
	FamilyInertia UnitFamily = "inertia"
	FamilyTime    UnitFamily = "time"
)

type unitInfo struct {
	family UnitFamily
	toSI   float64 // factor to m, m^2, m^3, m^4 or sec
}

var unitTable = map[string]unitInfo{
	"m":  {FamilyLength, 1},
	"cm": {FamilyLength, 0.01},
	"mm": {FamilyLength, 0.001},
	"in": {FamilyLength, 0.0254},
	"ft": {FamilyLength, 0.3048},
	"yd": {FamilyLength, 0.9144},

	"m^2":  {FamilyArea, 1},
	"cm^2": {FamilyArea, 1e-4},
	"mm^2": {FamilyArea, 1e-6},
	"in^2": {FamilyArea, 0.00064516},
	"ft^2": {FamilyArea, 0.09290304},

	"m^3":  {FamilyVolume, 1},
	"cm^3": {FamilyVolume, 1e-6},
	"mm^3": {FamilyVolume, 1e-9},
	"in^3": {FamilyVolume, 0.000016387064},
	"ft^3": {FamilyVolume, 0.028316846592},

	"m^4":  {FamilyInertia, 1},
	"cm^4": {FamilyInertia, 1e-8},
	"mm^4": {FamilyInertia, 1e-12},
	"in^4": {FamilyInertia, 0.00000041623143},

	"sec": {FamilyTime, 1},
}

func resolveUnit(op, name string) (string, unitInfo, error) {
	u, ok := Units.lookup(name)
	if !ok {
		return "", unitInfo{}, &domain.OpError{Op: op, Kind: domain.KindInvalidInput, Err: fmt.Errorf("unknown unit %q", name)}
	}
	return u, unitTable[u], nil
}

// UnitFamilyOf reports the family of a unit such as "mm^2".
func UnitFamilyOf(name string) (UnitFamily, bool) {
	u, ok := Units.lookup(name)
	if !ok {
		return "", false
	}
	return unitTable[u].family, true
}

// ConversionFactor returns the number to multiply by to go from one unit
// to the other. Both units must belong to the same family.
func ConversionFactor(from, to string) (float64, error) {
	const op = "shapes.conversion_factor"
	fu, fi, err := resolveUnit(op, from)
	if err != nil {
		return 0, err
	}
	tu, ti, err := resolveUnit(op, to)
	if err != nil {
		return 0, err
	}
	if fu == tu {
		return 1, nil
	}
	if fi.family != ti.family {
		return 0, &domain.OpError{
			Op:   op,
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("cannot convert %s (%s) to %s (%s)", fu, fi.family, tu, ti.family),
		}
	}
	return fi.toSI / ti.toSI, nil
}

// ConvertValue converts v between two units of the same family.
func ConvertValue(v float64, from, to string) (float64, error) {
	f, err := ConversionFactor(from, to)
	if err != nil {
		return 0, err
	}
	return v * f, nil
}

// ConvertAll converts every value of a symbol map, such as the output of
// CrossSection.ShapeParameters.
func ConvertAll(values map[string]float64, from, to string) (map[string]float64, error) {
	f, err := ConversionFactor(from, to)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(values))
	for k, v := range values {
		out[k] = v * f
	}
	return out, nil
}

var (
	metricLengths   = []string{"mm", "cm", "m"}
	imperialLengths = []string{"in", "ft", "yd"}
)

// DisplayUnit suggests the length unit, metric or imperial, in which v
// (given in unit) reads between 1 and 1000. Non-length units come back
// unchanged.
func DisplayUnit(v float64, unit string, metric bool) string {
	u, ok := Units.lookup(unit)
	if !ok || unitTable[u].family != FamilyLength {
		return unit
	}
	candidates := imperialLengths
	if metric {
		candidates = metricLengths
	}

	best, bestScore := u, math.Inf(1)
	for _, c := range candidates {
		conv, err := ConvertValue(v, u, c)
		if err != nil {
			continue
		}
		a := math.Abs(conv)
		var score float64
		switch {
		case a >= 1 && a <= 1000:
			score = 0
		case a < 1:
			score = 1 / a
		default:
			score = a / 1000
		}
		if score < bestScore {
			best, bestScore = c, score
		}
	}
	return best
}
