package repository

import (
	"context"
	"errors"
	"testing"

	"summy-bot/internal/domain"
)

func TestEnvSecretSource_Get(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")

	source := NewEnvSecretSource()
	value, err := source.Get(context.Background(), "Telegram_Token")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if value != "123:abc" {
		t.Fatalf("expected secret value 123:abc, got %s", value)
	}
}

func TestEnvSecretSource_Get_Missing(t *testing.T) {
	t.Setenv("OPENAI_TOKEN", "")

	source := NewEnvSecretSource()
	_, err := source.Get(context.Background(), "OpenAI_Token")
	if !errors.Is(err, domain.ErrSecretNotFound) {
		t.Fatalf("expected ErrSecretNotFound, got %v", err)
	}
}

func TestParseAllowedUsers(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []int64
	}{
		{"single", "12345", []int64{12345}},
		{"multiple with spaces", " 12345 , 67890 ", []int64{12345, 67890}},
		{"trailing comma", "12345,", []int64{12345}},
		{"empty", "", nil},
		{"malformed entries skipped", "12345,abc,67890", []int64{12345, 67890}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAllowedUsers(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d users, got %d", len(tt.want), len(got))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("expected user %d at %d, got %d", tt.want[i], i, got[i])
				}
			}
		})
	}
}
