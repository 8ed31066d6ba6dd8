package domain

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(42)

	if cfg.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", cfg.UserID)
	}
	if cfg.Lang != LangEnglish {
		t.Fatalf("expected default lang eng, got %s", cfg.Lang)
	}
	if cfg.WordsLimit != DefaultWordsLimit {
		t.Fatalf("expected default words limit %d, got %d", DefaultWordsLimit, cfg.WordsLimit)
	}
	if cfg.MaxChars != MaxMessageChars {
		t.Fatalf("expected default max chars %d, got %d", MaxMessageChars, cfg.MaxChars)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestUserConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     UserConfig
		wantErr bool
	}{
		{"valid english", UserConfig{Lang: "eng", WordsLimit: 300, MaxChars: 4096}, false},
		{"valid hebrew", UserConfig{Lang: "heb", WordsLimit: 800, MaxChars: 1}, false},
		{"zero words limit", UserConfig{Lang: "eng", WordsLimit: 0, MaxChars: 100}, false},
		{"unknown language", UserConfig{Lang: "fra", WordsLimit: 300, MaxChars: 4096}, true},
		{"empty language", UserConfig{Lang: "", WordsLimit: 300, MaxChars: 4096}, true},
		{"negative words limit", UserConfig{Lang: "eng", WordsLimit: -1, MaxChars: 4096}, true},
		{"words limit too high", UserConfig{Lang: "eng", WordsLimit: 801, MaxChars: 4096}, true},
		{"zero max chars", UserConfig{Lang: "eng", WordsLimit: 300, MaxChars: 0}, true},
		{"max chars over telegram cap", UserConfig{Lang: "eng", WordsLimit: 300, MaxChars: 4097}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "lang", Message: "must be either 'eng' or 'heb'"}
	if err.Error() != "lang: must be either 'eng' or 'heb'" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}

	err = &ValidationError{Message: "invalid"}
	if err.Error() != "invalid" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
}
