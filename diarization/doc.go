// Package diarization holds the speaker-attributed utterance type and the
// formatter that renders utterances into a speaker-labelled transcript.
//
// Transcription backends that support diarization return per-speaker
// utterances; Transcript turns them into the canonical
// "Speaker <label>: <text>" line format shared by every backend.
package diarization
