package formdata

import (
	"mime"
	"strings"

	"github.com/pkg/errors"
)

// Part is one decoded segment of a multipart/form-data body.
type Part struct {
	Name string
	// Filename is kept exactly as sent, directories included.
	Filename string
	// File is true when the part declared a filename, even an empty one.
	File        bool
	ContentType string
	Data        []byte
}

// IsFile returns true when the part declared a filename.
func (p Part) IsFile() bool {
	return p.File
}

// Boundary extracts the boundary parameter from a multipart content type.
func Boundary(contentType string) (string, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", &FormatError{errors.Wrapf(err, "failed parsing content type '%s'", contentType)}
	}

	if mediaType != "multipart/form-data" {
		return "", &FormatError{errors.Errorf("content type '%s' is not multipart/form-data", mediaType)}
	}

	boundary := params["boundary"]
	if boundary == "" {
		return "", &FormatError{errors.Errorf("content type '%s' has no boundary", contentType)}
	}

	return boundary, nil
}

// IsMultipart returns true when the content type declares multipart/form-data.
// The parameters are not inspected; a malformed boundary surfaces later from
// Boundary.
func IsMultipart(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "multipart/form-data")
}

// FormatError reports a malformed multipart body.
type FormatError struct {
	err error
}

func (e *FormatError) Error() string {
	return e.err.Error()
}

func (e *FormatError) Unwrap() error {
	return e.err
}
