package domain

import "time"

// Supported summary languages.
const (
	LangEnglish = "eng"
	LangHebrew  = "heb"
)

const (
	DefaultLang       = LangEnglish
	DefaultWordsLimit = 300

	// MaxWordsLimit bounds the summary length a user may request.
	MaxWordsLimit = 800

	// MaxMessageChars is the Telegram message size cap.
	MaxMessageChars = 4096
)

// UserConfig holds a user's summarization settings. It is created on first
// read, overwritten on every /set, and never deleted.
type UserConfig struct {
	UserID     int64     `json:"user_id" firestore:"user_id"`
	Lang       string    `json:"lang" firestore:"lang"`
	WordsLimit int       `json:"words_limit" firestore:"words_limit"`
	MaxChars   int       `json:"max_chars" firestore:"max_chars"`
	UpdatedAt  time.Time `json:"updated_at" firestore:"updated_at"`
}

// DefaultConfig returns the configuration a user has before their first /set.
func DefaultConfig(userID int64) *UserConfig {
	return &UserConfig{
		UserID:     userID,
		Lang:       DefaultLang,
		WordsLimit: DefaultWordsLimit,
		MaxChars:   MaxMessageChars,
	}
}

// Validate checks the ranges accepted by /set.
func (c *UserConfig) Validate() error {
	if c.Lang != LangEnglish && c.Lang != LangHebrew {
		return &ValidationError{Field: "lang", Message: "must be either 'eng' or 'heb'"}
	}
	if c.WordsLimit < 0 || c.WordsLimit > MaxWordsLimit {
		return &ValidationError{Field: "words_limit", Message: "must be an integer between 0 and 800"}
	}
	if c.MaxChars < 1 || c.MaxChars > MaxMessageChars {
		return &ValidationError{Field: "max_chars", Message: "must be an integer between 1 and 4096"}
	}
	return nil
}
