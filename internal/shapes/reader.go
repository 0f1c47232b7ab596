package shapes

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aalvaropc/xmigraph/internal/codec"
	"github.com/aalvaropc/xmigraph/internal/domain"
)

// reader pulls typed fields out of a decoded record and collects every
// problem instead of stopping at the first one. Problems are reported
// under the field's external name.
type reader struct {
	schema *codec.Schema
	rec    codec.Record
	verr   *domain.ValidationError
}

func newReader(schema *codec.Schema, raw map[string]any) *reader {
	return &reader{
		schema: schema,
		rec:    schema.Decode(raw),
		verr:   &domain.ValidationError{Shape: schema.Name()},
	}
}

func (r *reader) fail(field, format string, args ...any) {
	name, ok := r.schema.ExternalName(field)
	if !ok {
		name = field
	}
	r.verr.Add(name, fmt.Sprintf(format, args...))
}

func (r *reader) err() error { return r.verr.Err() }

func (r *reader) missing(field string) bool {
	v := r.rec[field]
	if v == nil {
		return true
	}
	s, isStr := v.(string)
	return isStr && strings.TrimSpace(s) == ""
}

// str reads a scalar as text. Numbers are accepted since some authoring
// tools write native IDs as integers.
func (r *reader) str(field string) string {
	v := r.rec[field]
	s, ok := codec.Text(v)
	if !ok {
		r.fail(field, "must be a string, got %T", v)
	}
	return s
}

func (r *reader) requiredStr(field string) string {
	if r.missing(field) {
		r.fail(field, "is required")
		return ""
	}
	return r.str(field)
}

func (r *reader) optFloat(field string) *float64 {
	v := r.rec[field]
	if v == nil {
		return nil
	}
	f, ok := toFloat(v)
	if !ok {
		r.fail(field, "must be a number, got %v", v)
		return nil
	}
	return &f
}

func (r *reader) floatOr(field string, def float64) float64 {
	if f := r.optFloat(field); f != nil {
		return *f
	}
	return def
}

func (r *reader) requiredFloat(field string) float64 {
	if r.missing(field) {
		r.fail(field, "is required")
		return 0
	}
	return r.floatOr(field, 0)
}

func (r *reader) nonNegative(field string) *float64 {
	f := r.optFloat(field)
	if f != nil && *f < 0 {
		r.fail(field, "must be non-negative")
	}
	return f
}

func (r *reader) requiredInt(field string) int {
	if r.missing(field) {
		r.fail(field, "is required")
		return 0
	}
	f, ok := toFloat(r.rec[field])
	if !ok || f != math.Trunc(f) {
		r.fail(field, "must be an integer, got %v", r.rec[field])
		return 0
	}
	return int(f)
}

func (r *reader) optBool(field string) *bool {
	switch v := r.rec[field].(type) {
	case nil:
		return nil
	case bool:
		return &v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err == nil {
			return &b
		}
	}
	r.fail(field, "must be a boolean, got %v", r.rec[field])
	return nil
}

// enum reads a value from a closed set. Optional enums return "" when absent.
func (r *reader) enum(field string, e *enum, required bool) string {
	if r.missing(field) {
		if required {
			r.fail(field, "is required")
		}
		return ""
	}
	raw := r.str(field)
	v, ok := e.lookup(raw)
	if !ok {
		r.fail(field, "%q is not a valid %s (want one of: %s)", raw, e.name, strings.Join(e.values, ", "))
		return ""
	}
	return v
}

// axis reads a local axis given either as "x,y,z" or as three numbers.
func (r *reader) axis(field string, def Vec3) Vec3 {
	switch v := r.rec[field].(type) {
	case nil:
		return def
	case string:
		if strings.TrimSpace(v) == "" {
			return def
		}
		out, err := ParseVec3(v)
		if err != nil {
			r.fail(field, "%v", err)
			return def
		}
		return out
	default:
		items, ok := asList(v)
		if !ok {
			r.fail(field, "must be an \"x,y,z\" string or a list of 3 numbers")
			return def
		}
		if len(items) != 3 {
			r.fail(field, "must contain exactly 3 values, got %d", len(items))
			return def
		}
		var out Vec3
		for i, it := range items {
			f, ok := toFloat(it)
			if !ok {
				r.fail(field, "all axis values must be valid numbers")
				return def
			}
			out[i] = f
		}
		return out
	}
}

// point reads a nested {X, Y, Z} object.
func (r *reader) point(field string, required bool) *Point {
	v := r.rec[field]
	if v == nil {
		if required {
			r.fail(field, "is required")
		}
		return nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		r.fail(field, "must be an object with X, Y and Z")
		return nil
	}
	inner := newReader(pointSchema, obj)
	p := Point{
		X: inner.requiredFloat("x"),
		Y: inner.requiredFloat("y"),
		Z: inner.requiredFloat("z"),
	}
	for _, pr := range inner.verr.Problems {
		ext, _ := r.schema.ExternalName(field)
		r.verr.Add(ext+"."+pr.Field, pr.Message)
	}
	return &p
}

// numbers reads a list of non-negative numbers, either as an array or as a
// ';'-separated string.
func (r *reader) numbers(field string, required bool) []float64 {
	v := r.rec[field]
	if v == nil {
		if required {
			r.fail(field, "is required")
		}
		return nil
	}

	var items []any
	if s, ok := v.(string); ok {
		for _, part := range strings.Split(s, ";") {
			if strings.TrimSpace(part) == "" {
				r.fail(field, "contains an empty entry")
				return nil
			}
			items = append(items, part)
		}
	} else if items, ok = asList(v); !ok {
		r.fail(field, "must be a list of numbers")
		return nil
	}

	out := make([]float64, 0, len(items))
	for _, it := range items {
		f, ok := toFloat(it)
		if !ok {
			r.fail(field, "each entry must be a number, got %v", it)
			return nil
		}
		if f < 0 {
			r.fail(field, "values cannot be smaller than 0")
			return nil
		}
		out = append(out, f)
	}
	return out
}

func asList(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []float64:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out, true
	default:
		return nil, false
	}
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func floatPtr(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func boolPtr(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}

func optString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
