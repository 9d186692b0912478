package formdata

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"

	"github.com/pkg/errors"
)

// Decode splits raw into its parts using boundary. Parts are returned in the
// order they appear in the body. A body that is not terminated by the closing
// boundary, or that contains no boundary at all, is a *FormatError.
func Decode(raw []byte, boundary string) ([]Part, error) {
	if boundary == "" {
		return nil, &FormatError{errors.New("empty multipart boundary")}
	}

	reader := multipart.NewReader(bytes.NewReader(raw), boundary)
	parts := []Part{}

	for {
		p, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &FormatError{errors.Wrapf(err, "failed reading multipart part %d", len(parts))}
		}

		data, err := io.ReadAll(p)
		if err != nil {
			return nil, &FormatError{errors.Wrapf(err, "failed reading multipart part %d '%s'", len(parts), p.FormName())}
		}

		part, err := disposition(p.Header.Get("Content-Disposition"))
		if err != nil {
			return nil, &FormatError{errors.Wrapf(err, "failed reading multipart part %d", len(parts))}
		}

		part.ContentType = p.Header.Get("Content-Type")
		part.Data = data
		parts = append(parts, part)
	}

	return parts, nil
}

// disposition reads the name and filename parameters of a part. The filename is
// returned untouched, unlike multipart.Part.FileName which strips directories
// and drops empty names.
func disposition(header string) (Part, error) {
	if header == "" {
		return Part{}, nil
	}

	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return Part{}, errors.Wrapf(err, "invalid content disposition '%s'", header)
	}

	filename, file := params["filename"]

	return Part{Name: params["name"], Filename: filename, File: file}, nil
}
