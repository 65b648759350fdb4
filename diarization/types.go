package diarization

// UnknownSpeaker is the label used when a backend returns an utterance
// without speaker attribution.
const UnknownSpeaker = "Unknown"

// Utterance represents a speaker-attributed span of transcribed speech.
type Utterance struct {
	// Speaker is the backend-assigned speaker label (e.g. "A", "0").
	// Empty when the backend could not attribute the span.
	Speaker string `json:"speaker,omitempty"`
	// Text is the transcribed text for this span.
	Text string `json:"text"`
	// Start is the span start time in seconds.
	Start float64 `json:"start,omitempty"`
	// End is the span end time in seconds.
	End float64 `json:"end,omitempty"`
}
