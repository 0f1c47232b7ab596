package domain

import (
	"strings"

	"github.com/aalvaropc/xmigraph/internal/codec"
)

// FailureKind classifies a rejected input record.
type FailureKind string

const (
	// UnrecognizedType: the discriminator is missing or not registered.
	UnrecognizedType FailureKind = "UnrecognizedType"
	// ValidationFailure: the shape rejected the field data.
	ValidationFailure FailureKind = "ValidationFailure"
	// UnresolvedReference: a relationship's Source or Target is not a loaded entity.
	UnresolvedReference FailureKind = "UnresolvedReference"
	// ConstructionFailure: the constructor failed for any other reason.
	ConstructionFailure FailureKind = "ConstructionFailure"
)

// Section names the payload section a record came from.
type Section string

const (
	SectionEntities      Section = "Entities"
	SectionRelationships Section = "Relationships"
)

// UnknownEntityType is logged when a record has no usable discriminator.
const UnknownEntityType = "<unknown>"

// ErrorLogEntry describes one rejected record. Index is the zero-based
// position of the record inside Section; Raw is a best-effort snapshot.
type ErrorLogEntry struct {
	EntityType string
	Index      int
	Message    string
	Raw        string
	Kind       FailureKind
	Section    Section
}

// ErrorLogSchema is used when the error log is exported. The raw snapshot is
// written as "Obj".
var ErrorLogSchema = codec.NewSchema("ErrorLog",
	codec.F("entity_type", "EntityType"),
	codec.F("index", "Index"),
	codec.F("message", "Message"),
	codec.F("raw", "Obj"),
	codec.F("kind", "Kind"),
	codec.F("section", "Section"),
)

func (e ErrorLogEntry) Canonical() codec.Record {
	return codec.Record{
		"entity_type": e.EntityType,
		"index":       e.Index,
		"message":     e.Message,
		"raw":         optional(e.Raw),
		"kind":        string(e.Kind),
		"section":     string(e.Section),
	}
}

// ErrorSink receives load failures.
type ErrorSink interface {
	Append(ErrorLogEntry)
}

// ErrorLog is an ordered, append-only list of failures. The zero value is
// ready to use.
type ErrorLog struct {
	entries []ErrorLogEntry
}

var _ ErrorSink = (*ErrorLog)(nil)

func (l *ErrorLog) Append(e ErrorLogEntry) {
	l.entries = append(l.entries, e)
}

func (l *ErrorLog) Len() int { return len(l.entries) }

// Entries returns a copy of all entries in append order.
func (l *ErrorLog) Entries() []ErrorLogEntry {
	out := make([]ErrorLogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Filter returns the entries for which keep is true, in order.
func (l *ErrorLog) Filter(keep func(ErrorLogEntry) bool) []ErrorLogEntry {
	var out []ErrorLogEntry
	for _, e := range l.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (l *ErrorLog) ByKind(k FailureKind) []ErrorLogEntry {
	return l.Filter(func(e ErrorLogEntry) bool { return e.Kind == k })
}

func (l *ErrorLog) BySection(s Section) []ErrorLogEntry {
	return l.Filter(func(e ErrorLogEntry) bool { return e.Section == s })
}

// MatchingMessage filters by substring of Message. Prefer ByKind: message
// texts are for humans and may change.
func (l *ErrorLog) MatchingMessage(substr string) []ErrorLogEntry {
	return l.Filter(func(e ErrorLogEntry) bool { return strings.Contains(e.Message, substr) })
}
