// Package transcription defines the uniform transcription contract and the
// router that dispatches requests to pluggable speech-to-text backends.
//
// Each backend lives in its own sub-package and implements Provider; the
// Router owns a provider.Registry keyed by provider tag and forwards calls
// verbatim. Shared machinery for response validation, job polling, language
// preference handling, and the error taxonomy lives here so every backend
// reports failures the same way.
//
// # Backends
//
//   - transcription/openai       OpenAI speech-to-text
//   - transcription/groq         Groq whisper models
//   - transcription/mistral      Mistral Voxtral models
//   - transcription/deepgram     Deepgram prerecorded audio
//   - transcription/elevenlabs   ElevenLabs Scribe
//   - transcription/sarvam       Sarvam Saarika
//   - transcription/openaicompat custom OpenAI-compatible endpoints
//   - transcription/gladia       Gladia (job polling)
//   - transcription/assemblyai   AssemblyAI (job polling)
//
// # Usage
//
//	reg := transcription.NewRegistry()
//	reg.Register(openai.ProviderName, openai.New(openai.Config{Credentials: creds}))
//	router := transcription.NewRouter(reg)
//	text, err := router.Transcribe(ctx, "clip.wav", model)
package transcription
