// Package projection filters JSON responses down to an inclusion list of top
// level field names.
package projection

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// FormatError reports a response body that is not valid JSON.
type FormatError struct {
	err error
}

func (e *FormatError) Error() string {
	return e.err.Error()
}

func (e *FormatError) Unwrap() error {
	return e.err
}

// Project parses body as JSON and keeps only the top level keys named in
// fields. Arrays are filtered element by element. Values under a kept key are
// passed through untouched, as are array elements and documents that are not
// objects. The literal body "null" projects to an empty object.
//
// An empty body has nothing to project and is returned empty.
//
// The result is the serialized projection.
func Project(body []byte, fields []string) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return []byte{}, nil
	}
	if string(trimmed) == "null" {
		return []byte("{}"), nil
	}

	if !json.Valid(trimmed) {
		return nil, &FormatError{errors.Errorf("response body is not valid json: %.64q", trimmed)}
	}

	keep := make(map[string]bool, len(fields))
	for _, f := range fields {
		keep[f] = true
	}

	var projected interface{}

	switch trimmed[0] {
	case '[':
		elements := []json.RawMessage{}
		if err := json.Unmarshal(trimmed, &elements); err != nil {
			return nil, &FormatError{errors.Wrap(err, "failed decoding response array")}
		}

		filtered := make([]json.RawMessage, 0, len(elements))
		for _, element := range elements {
			f, err := filter(element, keep)
			if err != nil {
				return nil, err
			}
			filtered = append(filtered, f)
		}
		projected = filtered
	default:
		f, err := filter(trimmed, keep)
		if err != nil {
			return nil, err
		}
		projected = f
	}

	out, err := marshal(projected)
	if err != nil {
		return nil, &FormatError{errors.Wrap(err, "failed encoding projected response")}
	}

	return out, nil
}

// marshal encodes v without escaping html characters so kept values are
// returned as the backend sent them.
func marshal(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func filter(doc json.RawMessage, keep map[string]bool) (json.RawMessage, error) {
	doc = bytes.TrimSpace(doc)
	if len(doc) == 0 || doc[0] != '{' {
		return doc, nil
	}

	object := map[string]json.RawMessage{}
	if err := json.Unmarshal(doc, &object); err != nil {
		return nil, &FormatError{errors.Wrap(err, "failed decoding response object")}
	}

	for k := range object {
		if !keep[k] {
			delete(object, k)
		}
	}

	b, err := marshal(object)
	if err != nil {
		return nil, &FormatError{errors.Wrap(err, "failed encoding response object")}
	}

	return b, nil
}
