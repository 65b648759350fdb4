package transcription

import (
	"os"
	"path/filepath"
	"strings"
)

// ReadAudio loads the audio file referenced by a request. Any read
// failure is reported as AUDIO_FILE_NOT_FOUND; adapters call this before
// touching the network.
func ReadAudio(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, AudioFileNotFound(path, err)
	}
	return data, nil
}

// AudioContentType guesses the MIME type from the file extension.
// Unknown extensions fall back to application/octet-stream.
func AudioContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".m4a", ".mp4":
		return "audio/mp4"
	case ".flac":
		return "audio/flac"
	case ".ogg":
		return "audio/ogg"
	case ".webm":
		return "audio/webm"
	default:
		return "application/octet-stream"
	}
}
