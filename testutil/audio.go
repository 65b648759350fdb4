package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteAudioFile writes a small fake WAV file into a temp directory and
// returns its path. The file is removed when the test ends.
func WriteAudioFile(t *testing.T) string {
	t.Helper()
	return WriteAudioFileNamed(t, "clip.wav")
}

// WriteAudioFileNamed writes a fake audio file with the given name.
func WriteAudioFileNamed(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("RIFF....WAVEfmt fake audio payload"), 0o600); err != nil {
		t.Fatalf("write audio fixture: %v", err)
	}
	return path
}
