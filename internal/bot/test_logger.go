package bot

import "summy-bot/internal/domain"

// Mock logger used by bot package tests.
type MockBotLogger struct{}

func NewMockBotLogger() domain.Logger {
	return &MockBotLogger{}
}

func (l *MockBotLogger) Info(msg string, fields ...interface{})             {}
func (l *MockBotLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *MockBotLogger) Debug(msg string, fields ...interface{})            {}
func (l *MockBotLogger) Warn(msg string, fields ...interface{})             {}
