package payloadfile

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/xmigraph/internal/codec"
	"github.com/aalvaropc/xmigraph/internal/domain"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Encoding is the on-disk form of a document.
type Encoding string

const (
	EncodingJSON    Encoding = "json"
	EncodingMsgpack Encoding = "msgpack"
	EncodingYAML    Encoding = "yaml"
)

// EncodingFor picks the encoding from a file extension. Unknown extensions
// are read as JSON.
func EncodingFor(path string) Encoding {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mpk", ".msgp":
		return EncodingMsgpack
	case ".yaml", ".yml":
		return EncodingYAML
	default:
		return EncodingJSON
	}
}

func isModelFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".msgpack", ".mpk", ".msgp", ".yaml", ".yml":
		return true
	}
	return false
}

// Decode parses a document in the given encoding.
func Decode(r io.Reader, enc Encoding) (codec.Payload, error) {
	switch enc {
	case EncodingJSON:
		return codec.ReadPayload(r)
	case EncodingMsgpack:
		var doc map[string]any
		if err := msgpack.NewDecoder(r).Decode(&doc); err != nil {
			return codec.Payload{}, fmt.Errorf("%w: %v", codec.ErrInvalidPayload, err)
		}
		return codec.DecodePayload(doc)
	case EncodingYAML:
		var doc map[string]any
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return codec.Payload{}, fmt.Errorf("%w: %v", codec.ErrInvalidPayload, err)
		}
		return codec.DecodePayload(doc)
	default:
		return codec.Payload{}, fmt.Errorf("unsupported encoding %q", enc)
	}
}

// Encode writes p in the export format.
func Encode(w io.Writer, p codec.Payload, format domain.ExportFormat) error {
	switch format {
	case domain.FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetSortMapKeys(true)
		return enc.Encode(p.Document())
	case domain.FormatJSON, "":
		return codec.WritePayload(w, p)
	default:
		return fmt.Errorf("%w: unknown export format %q", domain.ErrInvalidConfig, format)
	}
}

// Marshal is Encode into a byte slice.
func Marshal(p codec.Payload, format domain.ExportFormat) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, p, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
