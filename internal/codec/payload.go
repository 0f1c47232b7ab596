package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidPayload marks documents that are not a usable XMI payload.
var ErrInvalidPayload = errors.New("invalid payload")

// DocumentSchema names the top-level keys of an XMI document.
var DocumentSchema = NewSchema("XmiModel",
	F("name", "Name"),
	F("xmi_version", "XmiVersion"),
	F("application_name", "ApplicationName"),
	F("application_version", "ApplicationVersion"),
	F("entities", "Entities"),
	F("relationships", "Relationships"),
	F("histories", "Histories"),
	F("errors", "Errors"),
)

// Payload is a parsed XMI document. Section elements are kept raw; turning
// them into typed values is the loader's job.
type Payload struct {
	Name               string
	XmiVersion         string
	ApplicationName    string
	ApplicationVersion string

	Entities      []any
	Relationships []any
	Histories     []any
	// Errors is ignored by the loader and filled on export.
	Errors []any
}

// DecodePayload reads a decoded JSON (or msgpack) document.
func DecodePayload(doc map[string]any) (Payload, error) {
	if doc == nil {
		return Payload{}, fmt.Errorf("%w: document is empty", ErrInvalidPayload)
	}
	rec := DocumentSchema.Decode(doc)

	var p Payload
	var err error
	for _, m := range []struct {
		key string
		dst *string
	}{
		{"name", &p.Name},
		{"xmi_version", &p.XmiVersion},
		{"application_name", &p.ApplicationName},
		{"application_version", &p.ApplicationVersion},
	} {
		if *m.dst, err = scalarString(rec[m.key]); err != nil {
			return Payload{}, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, m.key, err)
		}
	}

	for _, m := range []struct {
		key string
		dst *[]any
	}{
		{"entities", &p.Entities},
		{"relationships", &p.Relationships},
		{"histories", &p.Histories},
		{"errors", &p.Errors},
	} {
		if *m.dst, err = section(rec[m.key]); err != nil {
			return Payload{}, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, m.key, err)
		}
	}
	return p, nil
}

// Document renders the payload with external key names. Sections are
// always present, as empty arrays when there is nothing to write.
func (p Payload) Document() map[string]any {
	return DocumentSchema.Encode(Record{
		"name":                p.Name,
		"xmi_version":         p.XmiVersion,
		"application_name":    p.ApplicationName,
		"application_version": p.ApplicationVersion,
		"entities":            nonNil(p.Entities),
		"relationships":       nonNil(p.Relationships),
		"histories":           nonNil(p.Histories),
		"errors":              nonNil(p.Errors),
	}, Verbose)
}

// ReadPayload parses a JSON document. A leading byte-order mark (UTF-8 or
// UTF-16) is accepted and removed. Numbers are kept as json.Number.
func ReadPayload(r io.Reader) (Payload, error) {
	dec := json.NewDecoder(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return DecodePayload(doc)
}

// WritePayload writes the payload as indented JSON, without a byte-order mark.
func WritePayload(w io.Writer, p Payload) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(p.Document())
}

func scalarString(v any) (string, error) {
	if s, ok := Text(v); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected a string, got %T", v)
}

func section(v any) ([]any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return t, nil
	case []map[string]any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected an array, got %T", v)
	}
}

func nonNil(s []any) []any {
	if s == nil {
		return []any{}
	}
	return s
}
