package shapes

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/aalvaropc/xmigraph/internal/codec"
)

// Vec3 is a direction vector such as a member's local axis.
type Vec3 [3]float64

var (
	AxisX = Vec3{1, 0, 0}
	AxisY = Vec3{0, 1, 0}
	AxisZ = Vec3{0, 0, 1}
)

// String renders the vector in its wire form, "x,y,z".
func (v Vec3) String() string {
	parts := make([]string, 3)
	for i, f := range v {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// ParseVec3 parses the "x,y,z" wire form. Every part must be a finite number.
func ParseVec3(s string) (Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Vec3{}, errors.New("axis string must contain exactly 3 comma-separated values")
	}
	var v Vec3
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return Vec3{}, errors.New("all axis values must be valid numbers")
		}
		v[i] = f
	}
	return v, nil
}

var pointSchema = codec.NewSchema("Point",
	codec.F("x", "X"),
	codec.F("y", "Y"),
	codec.F("z", "Z"),
)

// Point is a coordinate triple embedded in another record.
type Point struct {
	X, Y, Z float64
}

func (p Point) wire() map[string]any {
	return map[string]any{"X": p.X, "Y": p.Y, "Z": p.Z}
}

func pointValue(p *Point) any {
	if p == nil {
		return nil
	}
	return p.wire()
}
