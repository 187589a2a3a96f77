package upstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"example.com/octofit/internal/domain"
)

// Shape describes which payload layout a body was recognised as.
type Shape string

const (
	ShapeArray        Shape = "array"
	ShapeEnvelope     Shape = "envelope"
	ShapeUnrecognized Shape = "unrecognized"
)

// Normalized is the record collection extracted from a payload.
type Normalized struct {
	Records []domain.Record
	Shape   Shape
	Kind    string // JSON kind of the top-level value, for diagnostics.
}

// Normalize decodes body and extracts the record collection. A top-level array
// is used as is; an object with a "results" array yields that array; anything
// else yields an empty collection with ShapeUnrecognized. Only a body that is
// not JSON at all is an error.
func Normalize(body []byte) (Normalized, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return Normalized{}, &DecodeError{Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Normalized{}, &DecodeError{Err: errors.New("trailing data after JSON value")}
	}

	switch v := payload.(type) {
	case []any:
		return Normalized{Records: toRecords(v), Shape: ShapeArray, Kind: "array"}, nil
	case map[string]any:
		if results, ok := v["results"].([]any); ok {
			return Normalized{Records: toRecords(results), Shape: ShapeEnvelope, Kind: "object"}, nil
		}
		return unrecognized("object"), nil
	case nil:
		return unrecognized("null"), nil
	case json.Number:
		return unrecognized("number"), nil
	case string:
		return unrecognized("string"), nil
	case bool:
		return unrecognized("boolean"), nil
	default:
		return unrecognized("value"), nil
	}
}

func unrecognized(kind string) Normalized {
	return Normalized{Records: []domain.Record{}, Shape: ShapeUnrecognized, Kind: kind}
}

// toRecords keeps every element in order; non-object elements become nil records.
func toRecords(items []any) []domain.Record {
	records := make([]domain.Record, 0, len(items))
	for _, item := range items {
		obj, _ := item.(map[string]any)
		records = append(records, domain.Record(obj))
	}
	return records
}
