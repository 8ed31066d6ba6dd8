package service

import (
	"context"
	"fmt"
	"strings"

	"summy-bot/internal/domain"
)

// Summarizer builds prompts and calls the completion API.
type Summarizer struct {
	completion domain.CompletionClient
	logger     domain.Logger
}

// NewSummarizer creates a new summarizer
func NewSummarizer(completion domain.CompletionClient, logger domain.Logger) *Summarizer {
	return &Summarizer{
		completion: completion,
		logger:     logger,
	}
}

// Summarize generates a summary of the extracted text honoring the user's
// language and word limit.
func (s *Summarizer) Summarize(ctx context.Context, text string, fromWebpage bool, cfg *domain.UserConfig) (string, error) {
	prompt := BuildSummaryPrompt(text, fromWebpage, cfg)
	summary, err := s.completion.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	s.logger.Info("Summarized", "user_id", cfg.UserID, "words", len(strings.Fields(summary)))
	return summary, nil
}

// Respond answers a follow-up question in the context of the last article.
func (s *Summarizer) Respond(ctx context.Context, articleText, question string, cfg *domain.UserConfig) (string, error) {
	prompt := BuildFollowUpPrompt(articleText, question)
	response, err := s.completion.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	s.logger.Info("Follow-up answered", "user_id", cfg.UserID, "words", len(strings.Fields(response)))
	return response, nil
}

// BuildSummaryPrompt assembles the summarization prompt. Hebrew users get a
// translation instruction; full-page extractions get a cleanup instruction.
func BuildSummaryPrompt(text string, fromWebpage bool, cfg *domain.UserConfig) string {
	var b strings.Builder

	if cfg.Lang == domain.LangHebrew {
		b.WriteString("Translate the answer to Hebrew, except Brands or technology terms and definitions. ")
	}

	if fromWebpage {
		b.WriteString("Summarize this text extracted from a webpage.")
		b.WriteString("Remove any non-article elements like ads or navigation links. ")
	} else {
		b.WriteString("Summarize this text extracted from an article.")
	}

	fmt.Fprintf(&b,
		"Please provide a concise summary of the following article, "+
			"focusing on the main points, arguments, and conclusions. "+
			"The summary should be clear, informative, and no longer than %d words. "+
			"Replace bullet points with dashes (-), and use spaces to indicate indentation. ",
		cfg.WordsLimit)

	b.WriteString("\n\n")
	b.WriteString(text)
	return b.String()
}

// BuildFollowUpPrompt places the question after the article text, separated
// by blank lines so the model treats it as the instruction.
func BuildFollowUpPrompt(articleText, question string) string {
	return articleText + "\n\n\n\n\n\n" + question + "\n\n"
}
