package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
)

// MultipartBody builds a multipart/form-data request body. Parts are
// written in the order the Add calls are made, and each builder instance
// carries its own randomly generated boundary. Pass the builder as the
// Body field of a Request, or call Encode directly.
//
// A builder is single-use: Encode finalizes the body by writing the
// closing boundary and must be called at most once.
type MultipartBody struct {
	buf       bytes.Buffer
	writer    *multipart.Writer
	err       error
	finalized bool
}

// NewMultipartBody creates an empty multipart body builder.
func NewMultipartBody() *MultipartBody {
	m := &MultipartBody{}
	m.writer = multipart.NewWriter(&m.buf)
	return m
}

// AddField appends a simple form field. Returns the builder for chaining.
func (m *MultipartBody) AddField(name, value string) *MultipartBody {
	if m.err != nil || m.finalized {
		return m
	}
	m.err = m.writer.WriteField(name, value)
	return m
}

// AddFile appends a file part. If contentType is empty,
// application/octet-stream is used.
func (m *MultipartBody) AddFile(fieldName, fileName string, data []byte, contentType string) *MultipartBody {
	if m.err != nil || m.finalized {
		return m
	}

	var part io.Writer
	if contentType != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="`+escapeQuotes(fieldName)+`"; filename="`+escapeQuotes(fileName)+`"`)
		header.Set("Content-Type", contentType)
		part, m.err = m.writer.CreatePart(header)
	} else {
		part, m.err = m.writer.CreateFormFile(fieldName, fileName)
	}
	if m.err != nil {
		return m
	}
	_, m.err = part.Write(data)
	return m
}

// ContentType returns the Content-Type header value including the boundary.
func (m *MultipartBody) ContentType() string {
	return m.writer.FormDataContentType()
}

// Encode finalizes the body, appending the closing boundary, and returns
// the encoded bytes with the content-type header value. Calling Encode a
// second time is an error.
func (m *MultipartBody) Encode() ([]byte, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	if m.finalized {
		return nil, "", fmt.Errorf("httpclient: multipart body already finalized")
	}
	m.finalized = true
	if err := m.writer.Close(); err != nil {
		return nil, "", err
	}
	return m.buf.Bytes(), m.ContentType(), nil
}

// encode adapts Encode to the body-encoding interface used by the client.
func (m *MultipartBody) encode() (io.Reader, string, error) {
	data, contentType, err := m.Encode()
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), contentType, nil
}

// escapeQuotes replaces special characters in header values.
func escapeQuotes(s string) string {
	var buf bytes.Buffer
	for _, b := range []byte(s) {
		if b == '"' || b == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteByte(b)
	}
	return buf.String()
}
