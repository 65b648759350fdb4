package transcription

import "github.com/tmm22/speechkit/diarization"

// Model describes a backend model as selected by the caller. Immutable per
// request; the Provider field is the tag the router dispatches on.
type Model struct {
	// Name is the backend's free-form model identifier (e.g. "whisper-large-v3").
	Name string `json:"name"`
	// Provider is the provider tag the model belongs to.
	Provider string `json:"provider"`
	// IsMultilingual reports whether the model handles more than one language.
	IsMultilingual bool `json:"is_multilingual,omitempty"`
	// SupportedLanguages maps language codes to display names.
	SupportedLanguages map[string]string `json:"supported_languages,omitempty"`
}

// SupportsLanguage reports whether the model accepts the given language
// code. The empty code and "auto" are always accepted; models without a
// language catalog accept everything.
func (m Model) SupportsLanguage(code string) bool {
	if IsAutoLanguage(code) {
		return true
	}
	if len(m.SupportedLanguages) == 0 {
		return true
	}
	_, ok := m.SupportedLanguages[code]
	return ok
}

// Request holds parameters for a single transcription call. Built fresh
// per call; adapters never retain it.
type Request struct {
	// AudioPath is the path to the finalized audio file to transcribe.
	AudioPath string `json:"audio_path"`
	// Model selects the backend model.
	Model Model `json:"model"`
	// Language is the caller's language preference: "auto" (or empty) for
	// detection, otherwise an ISO-like code.
	Language string `json:"language,omitempty"`
	// Vocabulary holds domain terms to bias recognition toward. Adapters
	// that have no vocabulary mechanism ignore it.
	Vocabulary []string `json:"vocabulary,omitempty"`
	// Diarize requests speaker attribution where the backend supports it.
	Diarize bool `json:"diarize,omitempty"`
}

// Response holds the result of a transcription call.
type Response struct {
	// Text is the transcript. When the backend returned diarized
	// utterances this is already the speaker-labelled rendering.
	Text string `json:"text"`
	// Utterances are speaker-attributed spans, present only when the
	// backend performed diarization.
	Utterances []diarization.Utterance `json:"utterances,omitempty"`
	// Language is the detected or requested language, when reported.
	Language string `json:"language,omitempty"`
	// Duration is the audio duration in seconds, when reported.
	Duration float64 `json:"duration,omitempty"`
}
