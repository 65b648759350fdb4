package transcription

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tmm22/speechkit/errors"
)

func TestReadAudio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o600); err != nil {
		t.Fatal(err)
	}
	data, err := ReadAudio(path)
	if err != nil {
		t.Fatalf("ReadAudio: %v", err)
	}
	if string(data) != "RIFF" {
		t.Errorf("data = %q", data)
	}

	_, err = ReadAudio(filepath.Join(t.TempDir(), "missing.wav"))
	if !errors.HasCode(err, ErrCodeAudioFileNotFound) {
		t.Fatalf("err = %v, want AUDIO_FILE_NOT_FOUND", err)
	}
}

func TestAudioContentType(t *testing.T) {
	cases := map[string]string{
		"a.wav":  "audio/wav",
		"a.MP3":  "audio/mpeg",
		"a.m4a":  "audio/mp4",
		"a.flac": "audio/flac",
		"a.ogg":  "audio/ogg",
		"a.webm": "audio/webm",
		"a.bin":  "application/octet-stream",
	}
	for path, want := range cases {
		if got := AudioContentType(path); got != want {
			t.Errorf("AudioContentType(%q) = %q, want %q", path, got, want)
		}
	}
}
