package transcription

// LanguageAuto is the preference value asking backends to detect the
// spoken language themselves.
const LanguageAuto = "auto"

// IsAutoLanguage reports whether the preference asks for language
// detection. The empty string is treated as "auto".
func IsAutoLanguage(lang string) bool {
	return lang == "" || lang == LanguageAuto
}

// LanguageParam returns the language code to send to a backend and whether
// it should be sent at all. Backends whose detection mode is "omit the
// parameter" call this; backends with an explicit detect flag check
// IsAutoLanguage directly.
func LanguageParam(lang string) (string, bool) {
	if IsAutoLanguage(lang) {
		return "", false
	}
	return lang, true
}
