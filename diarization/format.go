package diarization

import "strings"

// Transcript renders utterances as one "Speaker <label>: <text>" line per
// utterance, joined by newlines. Utterances with no speaker label are
// attributed to UnknownSpeaker. When there are no utterances, fallback is
// returned unchanged so callers can degrade to the plain transcript.
func Transcript(utterances []Utterance, fallback string) string {
	if len(utterances) == 0 {
		return fallback
	}

	lines := make([]string, 0, len(utterances))
	for _, u := range utterances {
		speaker := u.Speaker
		if speaker == "" {
			speaker = UnknownSpeaker
		}
		lines = append(lines, "Speaker "+speaker+": "+strings.TrimSpace(u.Text))
	}
	return strings.Join(lines, "\n")
}
