package httpclient

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"
)

func TestMultipartBody_OrderPreserved(t *testing.T) {
	mp := NewMultipartBody().
		AddField("model", "base").
		AddFile("file", "audio.wav", []byte("wav-bytes"), "audio/wav").
		AddField("language", "en")

	data, contentType, err := mp.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("ParseMediaType error: %v", err)
	}
	if mediaType != "multipart/form-data" {
		t.Errorf("media type = %q, want multipart/form-data", mediaType)
	}

	mr := multipart.NewReader(bytes.NewReader(data), params["boundary"])
	var order []string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextPart error: %v", err)
		}
		order = append(order, part.FormName())
		if part.FormName() == "file" {
			if part.FileName() != "audio.wav" {
				t.Errorf("filename = %q", part.FileName())
			}
			if ct := part.Header.Get("Content-Type"); ct != "audio/wav" {
				t.Errorf("file content-type = %q", ct)
			}
			content, _ := io.ReadAll(part)
			if string(content) != "wav-bytes" {
				t.Errorf("file content = %q", content)
			}
		}
	}

	want := []string{"model", "file", "language"}
	if len(order) != len(want) {
		t.Fatalf("parts = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("part[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestMultipartBody_DefaultFileContentType(t *testing.T) {
	mp := NewMultipartBody().AddFile("file", "blob.bin", []byte{1, 2, 3}, "")
	data, contentType, err := mp.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	_, params, _ := mime.ParseMediaType(contentType)
	mr := multipart.NewReader(bytes.NewReader(data), params["boundary"])
	part, err := mr.NextPart()
	if err != nil {
		t.Fatalf("NextPart error: %v", err)
	}
	if ct := part.Header.Get("Content-Type"); ct != "application/octet-stream" {
		t.Errorf("content-type = %q, want application/octet-stream", ct)
	}
}

func TestMultipartBody_SecondEncodeFails(t *testing.T) {
	mp := NewMultipartBody().AddField("a", "b")
	if _, _, err := mp.Encode(); err != nil {
		t.Fatalf("first Encode() error: %v", err)
	}
	if _, _, err := mp.Encode(); err == nil {
		t.Error("second Encode() should fail")
	}
}

func TestMultipartBody_FreshBoundaryPerInstance(t *testing.T) {
	a := NewMultipartBody()
	b := NewMultipartBody()
	if a.ContentType() == b.ContentType() {
		t.Error("two builders share a boundary")
	}
}

func TestEscapeQuotes(t *testing.T) {
	if got := escapeQuotes(`a"b\c`); got != `a\"b\\c` {
		t.Errorf("escapeQuotes = %q", got)
	}
}
