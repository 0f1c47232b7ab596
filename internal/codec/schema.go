package codec

import "fmt"

// Record is an untyped record keyed by field name. Whether the keys are
// canonical or external depends on which side of the codec it sits.
type Record map[string]any

// Clone returns a shallow copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Field declares the two names of a single field.
type Field struct {
	Canonical string
	External  string
}

// F is shorthand for a Field literal.
func F(canonical, external string) Field {
	return Field{Canonical: canonical, External: external}
}

// Schema is the ordered field table of one record shape.
type Schema struct {
	name   string
	fields []Field
	ext    map[string]int
	can    map[string]int
}

// NewSchema builds a schema. It panics when two fields share a name, since
// schemas are declared at init time and a clash is a programming error.
func NewSchema(name string, fields ...Field) *Schema {
	s := &Schema{
		name: name,
		ext:  make(map[string]int, len(fields)),
		can:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		s.add(f)
	}
	return s
}

func (s *Schema) add(f Field) {
	if f.Canonical == "" || f.External == "" {
		panic(fmt.Sprintf("codec: schema %s: field with empty name %+v", s.name, f))
	}
	if _, dup := s.can[f.Canonical]; dup {
		panic(fmt.Sprintf("codec: schema %s: duplicate canonical name %q", s.name, f.Canonical))
	}
	if _, dup := s.ext[f.External]; dup {
		panic(fmt.Sprintf("codec: schema %s: duplicate external name %q", s.name, f.External))
	}
	// A canonical name equal to another field's external name would make
	// lenient decoding ambiguous.
	if i, clash := s.ext[f.Canonical]; clash {
		panic(fmt.Sprintf("codec: schema %s: canonical %q clashes with external name of %q", s.name, f.Canonical, s.fields[i].Canonical))
	}
	if i, clash := s.can[f.External]; clash {
		panic(fmt.Sprintf("codec: schema %s: external %q clashes with canonical name of %q", s.name, f.External, s.fields[i].External))
	}

	idx := len(s.fields)
	s.fields = append(s.fields, f)
	s.can[f.Canonical] = idx
	s.ext[f.External] = idx
}

// Extend returns a new schema with the receiver's fields followed by extra.
func (s *Schema) Extend(name string, extra ...Field) *Schema {
	all := make([]Field, 0, len(s.fields)+len(extra))
	all = append(all, s.fields...)
	all = append(all, extra...)
	return NewSchema(name, all...)
}

func (s *Schema) Name() string { return s.name }

// Fields returns a copy of the declared fields in order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// ExternalName returns the wire name of a canonical field.
func (s *Schema) ExternalName(canonical string) (string, bool) {
	i, ok := s.can[canonical]
	if !ok {
		return "", false
	}
	return s.fields[i].External, true
}

// Lookup reads a single field from a raw record, external name first.
func (s *Schema) Lookup(raw map[string]any, canonical string) (any, bool) {
	i, ok := s.can[canonical]
	if !ok {
		return nil, false
	}
	return lookup(raw, s.fields[i])
}

func lookup(raw map[string]any, f Field) (any, bool) {
	if v, ok := raw[f.External]; ok {
		return v, true
	}
	if v, ok := raw[f.Canonical]; ok {
		return v, true
	}
	return nil, false
}

// Decode converts a raw record to canonical form. Every declared field is
// present in the result; missing ones hold nil. Undeclared keys are dropped.
func (s *Schema) Decode(raw map[string]any) Record {
	out := make(Record, len(s.fields))
	for _, f := range s.fields {
		v, _ := lookup(raw, f)
		out[f.Canonical] = v
	}
	return out
}

// Encode converts a canonical record to its wire form. Compact mode leaves
// out fields whose value is nil.
func (s *Schema) Encode(rec Record, mode Mode) map[string]any {
	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		v := rec[f.Canonical]
		if v == nil && mode == Compact {
			continue
		}
		out[f.External] = v
	}
	return out
}
