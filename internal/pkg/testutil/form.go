package testutil

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// FormFile is a file part of a multipart test request
type FormFile struct {
	Name    string
	Content []byte
}

// NewMultipartRequest builds a multipart/form-data request from form fields and file parts
func NewMultipartRequest(t *testing.T, method, url string, fields map[string]string, files map[string]FormFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}

	for field, file := range files {
		part, err := writer.CreateFormFile(field, file.Name)
		require.NoError(t, err)

		_, err = part.Write(file.Content)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
