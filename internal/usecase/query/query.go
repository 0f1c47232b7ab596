// Package query evaluates JSONPath expressions against exported models.
package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/aalvaropc/xmigraph/internal/codec"
	"github.com/aalvaropc/xmigraph/internal/domain"
)

// Document renders m as the plain JSON value a JSONPath expression sees:
// the same shape as an exported file, numbers as float64.
func Document(m *domain.Model, mode codec.Mode) (any, error) {
	var buf bytes.Buffer
	if err := codec.WritePayload(&buf, m.Export(mode)); err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Get evaluates expr against doc.
func Get(doc any, expr string) (any, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty jsonpath expression")
	}
	v, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("jsonpath %q: %w", expr, err)
	}
	return v, nil
}

// Select evaluates several named expressions. Failing expressions are
// reported by name in errs and left out of values.
func Select(doc any, rules map[string]string) (values map[string]any, errs map[string]error) {
	values = map[string]any{}
	errs = map[string]error{}

	names := make([]string, 0, len(rules))
	for k := range rules {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, name := range names {
		v, err := Get(doc, rules[name])
		if err != nil {
			errs[name] = err
			continue
		}
		values[name] = v
	}
	return values, errs
}

// Check is a set of expectations on one expression. Unset fields are not
// checked.
type Check struct {
	Expr     string
	Exists   bool
	Count    *int
	Eq       *string
	Contains *string
	Matches  *string
	Gt       *float64
	Lt       *float64
}

// Result is the outcome of one expectation.
type Result struct {
	Name    string
	Passed  bool
	Message string
}

// Evaluate runs every expectation of c against doc.
func Evaluate(doc any, c Check) []Result {
	val, getErr := Get(doc, c.Expr)

	var out []Result
	if c.Exists {
		out = append(out, checkExists(c.Expr, val, getErr))
	}
	if c.Count != nil {
		out = append(out, checkCount(c.Expr, val, getErr, *c.Count))
	}
	if c.Eq != nil {
		out = append(out, compareString("eq", c.Expr, val, getErr, *c.Eq,
			func(s, want string) bool { return s == want }))
	}
	if c.Contains != nil {
		out = append(out, compareString("contains", c.Expr, val, getErr, *c.Contains, strings.Contains))
	}
	if c.Matches != nil {
		out = append(out, checkMatches(c.Expr, val, getErr, *c.Matches))
	}
	if c.Gt != nil {
		out = append(out, compareFloat("gt", c.Expr, val, getErr, *c.Gt,
			func(f, t float64) bool { return f > t }))
	}
	if c.Lt != nil {
		out = append(out, compareFloat("lt", c.Expr, val, getErr, *c.Lt,
			func(f, t float64) bool { return f < t }))
	}
	return out
}

// Passed reports whether every result passed.
func Passed(rs []Result) bool {
	for _, r := range rs {
		if !r.Passed {
			return false
		}
	}
	return true
}

func fail(name, format string, args ...any) Result {
	return Result{Name: name, Message: fmt.Sprintf(format, args...)}
}

func pass(name, format string, args ...any) Result {
	return Result{Name: name, Passed: true, Message: fmt.Sprintf(format, args...)}
}

func checkExists(expr string, val any, getErr error) Result {
	const name = "jsonpath.exists"
	if getErr != nil {
		return fail(name, "%v", getErr)
	}
	if isEmpty(val) {
		return fail(name, "jsonpath %q: expected value to exist, got empty", expr)
	}
	return pass(name, "jsonpath %q exists", expr)
}

func checkCount(expr string, val any, getErr error, want int) Result {
	const name = "jsonpath.count"
	if getErr != nil {
		return fail(name, "%v", getErr)
	}
	got := 1
	switch t := val.(type) {
	case nil:
		got = 0
	case []any:
		got = len(t)
	}
	if got != want {
		return fail(name, "jsonpath %q: expected %d match(es), got %d", expr, want, got)
	}
	return pass(name, "jsonpath %q has %d match(es)", expr, got)
}

func compareString(op, expr string, val any, getErr error, want string, ok func(s, want string) bool) Result {
	name := "jsonpath." + op
	if getErr != nil {
		return fail(name, "%v", getErr)
	}
	s, err := toString(val)
	if err != nil {
		return fail(name, "jsonpath %q: %v", expr, err)
	}
	if !ok(s, want) {
		return fail(name, "jsonpath %q: %q is not %s %q", expr, s, op, want)
	}
	return pass(name, "jsonpath %q %s %q", expr, op, want)
}

func checkMatches(expr string, val any, getErr error, pattern string) Result {
	const name = "jsonpath.matches"
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fail(name, "jsonpath %q: invalid regex %q: %v", expr, pattern, err)
	}
	return compareString("matches", expr, val, getErr, pattern,
		func(s, _ string) bool { return re.MatchString(s) })
}

func compareFloat(op, expr string, val any, getErr error, threshold float64, ok func(f, t float64) bool) Result {
	name := "jsonpath." + op
	if getErr != nil {
		return fail(name, "%v", getErr)
	}
	f, err := toFloat64(val)
	if err != nil {
		return fail(name, "jsonpath %q: %v", expr, err)
	}
	if !ok(f, threshold) {
		return fail(name, "jsonpath %q: expected %s %v, got %v", expr, op, threshold, f)
	}
	return pass(name, "jsonpath %q: %v %s %v", expr, f, op, threshold)
}

func toString(val any) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "", fmt.Errorf("value is null")
	case []any:
		if len(v) == 1 {
			return toString(v[0])
		}
		return "", fmt.Errorf("expected a single value, got %d", len(v))
	default:
		return fmt.Sprint(v), nil
	}
}

func toFloat64(val any) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", v)
		}
		return f, nil
	case []any:
		if len(v) == 1 {
			return toFloat64(v[0])
		}
		return 0, fmt.Errorf("expected a single value, got %d", len(v))
	default:
		return 0, fmt.Errorf("value of type %T is not numeric", val)
	}
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
