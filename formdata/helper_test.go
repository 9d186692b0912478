package formdata

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"
)

const testBoundary = "----formdata-test-boundary"

type testPart struct {
	name        string
	filename    string
	file        bool
	contentType string
	data        string
}

func field(name, data string) testPart {
	return testPart{name: name, data: data}
}

func file(name, filename, contentType, data string) testPart {
	return testPart{name: name, filename: filename, file: true, contentType: contentType, data: data}
}

func testBody(t *testing.T, parts ...testPart) []byte {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	require.NoError(t, w.SetBoundary(testBoundary))

	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		disposition := `form-data; name="` + p.name + `"`
		if p.file {
			disposition += `; filename="` + p.filename + `"`
		}
		h.Set("Content-Disposition", disposition)
		if p.contentType != "" {
			h.Set("Content-Type", p.contentType)
		}

		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write([]byte(p.data))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf.Bytes()
}
