package formdata

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/pkg/errors"
)

// Representation selects the outbound encoding of decoded parts.
type Representation string

const (
	MultipartForm   Representation = "multipart-form"
	IndexedMap      Representation = "indexed-map"
	FlattenedFields Representation = "flattened-fields"
)

// Entry is one key of an encoded body. File entries are written as
// attachments carrying Filename.
type Entry struct {
	Key         string
	Filename    string
	File        bool
	ContentType string
	Value       []byte
}

// IsFile returns true when the entry is written as an attachment.
func (e Entry) IsFile() bool {
	return e.File
}

// Body is the outbound representation of a multipart request body.
type Body struct {
	Representation Representation
	Entries        []Entry
}

// Encode builds the outbound body for parts. It never looks at the raw body the
// parts were decoded from. An empty representation means MultipartForm.
func Encode(parts []Part, representation Representation) (*Body, error) {
	switch representation {
	case MultipartForm, "":
		return encodeMultipartForm(parts), nil
	case IndexedMap:
		return encodeIndexedMap(parts), nil
	case FlattenedFields:
		return encodeFlattenedFields(parts), nil
	}

	return nil, errors.Errorf("unknown multipart representation '%s'", representation)
}

func encodeMultipartForm(parts []Part) *Body {
	body := &Body{Representation: MultipartForm}
	fileIndex := 0

	for _, p := range parts {
		if !p.IsFile() {
			body.Entries = append(body.Entries, Entry{Key: p.Name, Value: p.Data})
			continue
		}

		body.Entries = append(body.Entries, Entry{
			Key:         fmt.Sprintf("%s[%d]", p.Name, fileIndex),
			Filename:    p.Filename,
			File:        true,
			ContentType: p.ContentType,
			Value:       p.Data,
		})
		fileIndex++
	}

	return body
}

func encodeIndexedMap(parts []Part) *Body {
	body := &Body{Representation: IndexedMap}

	for i, p := range parts {
		name := p.Name
		if name == "" {
			name = "part"
		}

		body.Entries = append(body.Entries, Entry{Key: fmt.Sprintf("%s[%d]", name, i), Value: p.Data})
	}

	return body
}

// encodeFlattenedFields keys fields by name, so a repeated field name keeps
// the position of its first occurrence and the value of its last.
func encodeFlattenedFields(parts []Part) *Body {
	body := &Body{Representation: FlattenedFields}
	positions := map[string]int{}
	fileCount := 0

	for _, p := range parts {
		if p.IsFile() {
			body.Entries = append(body.Entries, Entry{
				Key:         fmt.Sprintf("%s[%d]", p.Name, fileCount),
				Filename:    p.Filename,
				File:        true,
				ContentType: p.ContentType,
				Value:       p.Data,
			})
			fileCount++
			continue
		}

		name := p.Name
		if name == "" {
			name = "field"
		}

		entry := Entry{Key: name, Value: p.Data}
		if i, ok := positions[name]; ok {
			body.Entries[i] = entry
			continue
		}

		positions[name] = len(body.Entries)
		body.Entries = append(body.Entries, entry)
	}

	return body
}

// Files returns the attachment entries in order.
func (b *Body) Files() []Entry {
	files := []Entry{}
	for _, e := range b.Entries {
		if e.IsFile() {
			files = append(files, e)
		}
	}

	return files
}

// Fields returns the plain value entries in order.
func (b *Body) Fields() []Entry {
	fields := []Entry{}
	for _, e := range b.Entries {
		if !e.IsFile() {
			fields = append(fields, e)
		}
	}

	return fields
}

// Marshal renders the body as multipart/form-data with a fresh boundary and
// returns its content type. Values are written byte for byte; indexed-map
// entries are all plain fields.
func (b *Body) Marshal() (string, []byte, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, e := range b.Entries {
		if err := writeEntry(w, e); err != nil {
			return "", nil, errors.Wrapf(err, "failed writing multipart entry '%s'", e.Key)
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, errors.Wrap(err, "failed closing multipart body")
	}

	return w.FormDataContentType(), buf.Bytes(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeEntry(w *multipart.Writer, e Entry) error {
	if !e.IsFile() {
		return w.WriteField(e.Key, string(e.Value))
	}

	contentType := e.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(e.Key), quoteEscaper.Replace(e.Filename)))
	h.Set("Content-Type", contentType)

	pw, err := w.CreatePart(h)
	if err != nil {
		return err
	}

	_, err = pw.Write(e.Value)
	return err
}
