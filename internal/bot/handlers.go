package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"summy-bot/internal/domain"
	apperrors "summy-bot/pkg/errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = "Summy is at your service!\n" +
	"- /summ <url>: Summarize the article at the given URL.\n" +
	"- /summ pdf: Summarize an uploaded PDF file.\n" +
	"- /resp <response>: Get a follow-up response to the last summary.\n" +
	"- /set <lang> <word limit> [max chars]: Set configuration.\n" +
	"- /get: Print configuration.\n" +
	"- /shut: Shut down the bot."

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	b.reply(msg.Chat.ID, "Hi! Welcome to summy")
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	b.reply(msg.Chat.ID, helpText)
}

// handleSet updates the user's configuration: /set <lang> <word_limit> [max_chars].
func (b *Bot) handleSet(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) < 2 || len(args) > 3 {
		b.reply(msg.Chat.ID, "Please provide valid configuration, i.e., /set <heb/eng> <word limit> [max chars].")
		return
	}

	lang := args[0]
	wordsLimit, err := strconv.Atoi(args[1])
	if err != nil {
		b.reply(msg.Chat.ID, "Please provide valid configuration, i.e., /set <heb/eng> <word limit> [max chars].")
		return
	}

	maxChars := domain.MaxMessageChars
	if len(args) == 3 {
		maxChars, err = strconv.Atoi(args[2])
		if err != nil {
			b.reply(msg.Chat.ID, "Please provide valid configuration, i.e., /set <heb/eng> <word limit> [max chars].")
			return
		}
	}

	if _, err := b.configs.Update(ctx, msg.From.ID, lang, wordsLimit, maxChars); err != nil {
		b.logger.Error("Config update failed", err, "user_id", msg.From.ID)
		b.reply(msg.Chat.ID, apperrors.UserReply(err))
		return
	}
	b.reply(msg.Chat.ID, "Configuration updated successfully.")
}

// handleGet prints the user's current configuration.
func (b *Bot) handleGet(ctx context.Context, msg *tgbotapi.Message) {
	cfg, err := b.configs.Get(ctx, msg.From.ID)
	if err != nil {
		b.logger.Error("Config read failed", err, "user_id", msg.From.ID)
		b.reply(msg.Chat.ID, "Failed to retrieve configuration.")
		return
	}
	b.reply(msg.Chat.ID, fmt.Sprintf(
		"language: %s\nsummary words limit: %d\nmax message chars: %d",
		cfg.Lang, cfg.WordsLimit, cfg.MaxChars))
}

// handleSumm summarizes the article at the given URL. "/summ pdf" asks the
// user to upload the document instead.
func (b *Bot) handleSumm(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		b.reply(msg.Chat.ID, "Please provide a URL after the command, e.g., /summ <URL>.")
		return
	}

	if strings.EqualFold(args[0], "pdf") {
		b.reply(msg.Chat.ID, "Please upload the PDF file.")
		return
	}

	extraction, err := b.extractor.FromURL(ctx, args[0])
	if err != nil {
		b.logger.Error("URL extraction failed", err, "user_id", msg.From.ID, "url", args[0])
		b.reply(msg.Chat.ID, apperrors.UserReply(err))
		return
	}

	b.summarizeAndReply(ctx, msg, extraction)
}

// handleResp answers a follow-up question about the last summary.
func (b *Bot) handleResp(ctx context.Context, msg *tgbotapi.Message) {
	question := strings.TrimSpace(msg.CommandArguments())
	if question == "" {
		b.reply(msg.Chat.ID, "Please provide a response for the last summary, e.g., /resp <RESPONSE>.")
		return
	}

	summary, err := b.state.LastSummary(ctx, msg.From.ID)
	if err != nil {
		if errors.Is(err, domain.ErrSummaryNotFound) {
			b.reply(msg.Chat.ID, "No summary to follow up on yet. Summarize something with /summ first.")
			return
		}
		b.logger.Error("Summary lookup failed", err, "user_id", msg.From.ID)
		b.reply(msg.Chat.ID, apperrors.UserReply(err))
		return
	}

	// Prefer the full article as context; fall back to the summary when the
	// article blob is gone.
	contextText := summary.Text
	if article, err := b.state.LastArticle(ctx, msg.From.ID); err == nil {
		contextText = article.Text
	}

	cfg, err := b.configs.Get(ctx, msg.From.ID)
	if err != nil {
		b.logger.Error("Config read failed", err, "user_id", msg.From.ID)
		b.reply(msg.Chat.ID, apperrors.UserReply(err))
		return
	}

	response, err := b.summarizer.Respond(ctx, contextText, question, cfg)
	if err != nil {
		b.logger.Error("Follow-up failed", err, "user_id", msg.From.ID)
		b.reply(msg.Chat.ID, apperrors.UserReply(err))
		return
	}

	b.reply(msg.Chat.ID, PrepareMessage(response, cfg.MaxChars))
}

// handleDocument summarizes an uploaded PDF.
func (b *Bot) handleDocument(ctx context.Context, msg *tgbotapi.Message) {
	doc := msg.Document
	if doc.MimeType != "application/pdf" {
		b.reply(msg.Chat.ID, "Please upload a valid PDF file.")
		return
	}

	pdfBytes, err := b.downloadFile(ctx, doc.FileID)
	if err != nil {
		b.logger.Error("PDF download failed", err, "user_id", msg.From.ID, "file", doc.FileName)
		b.reply(msg.Chat.ID, "Failed to download the PDF. Please try again.")
		return
	}

	text, err := b.pdf.ExtractText(pdfBytes)
	if err != nil {
		b.logger.Error("PDF extraction failed", err, "user_id", msg.From.ID, "file", doc.FileName)
		b.reply(msg.Chat.ID, apperrors.UserReply(err))
		return
	}

	b.summarizeAndReply(ctx, msg, &domain.Extraction{
		Text:        text,
		Source:      domain.SourcePDF,
		FromWebpage: false,
	})
}

func (b *Bot) handleShut(msg *tgbotapi.Message) {
	b.reply(msg.Chat.ID, "Shutting down the bot. Goodbye!")
	b.logger.Info("Shutdown requested", "user_id", msg.From.ID)
	b.shutdown()
}

// summarizeAndReply runs the summarize-store-reply tail shared by URL and
// PDF flows. Storage failures are logged but do not suppress the reply.
func (b *Bot) summarizeAndReply(ctx context.Context, msg *tgbotapi.Message, extraction *domain.Extraction) {
	cfg, err := b.configs.Get(ctx, msg.From.ID)
	if err != nil {
		b.logger.Error("Config read failed", err, "user_id", msg.From.ID)
		b.reply(msg.Chat.ID, apperrors.UserReply(err))
		return
	}

	summary, err := b.summarizer.Summarize(ctx, extraction.Text, extraction.FromWebpage, cfg)
	if err != nil {
		b.logger.Error("Summarization failed", err, "user_id", msg.From.ID, "source", extraction.Source)
		b.reply(msg.Chat.ID, apperrors.UserReply(err))
		return
	}

	now := time.Now().UTC()
	if err := b.state.StoreArticle(ctx, &domain.Article{
		UserID:      msg.From.ID,
		Text:        extraction.Text,
		Source:      extraction.Source,
		FromWebpage: extraction.FromWebpage,
		StoredAt:    now,
	}); err != nil {
		b.logger.Error("Failed to store article", err, "user_id", msg.From.ID)
	}
	if err := b.state.StoreSummary(ctx, &domain.Summary{
		UserID:    msg.From.ID,
		Text:      summary,
		CreatedAt: now,
	}); err != nil {
		b.logger.Error("Failed to store summary", err, "user_id", msg.From.ID)
	}

	b.reply(msg.Chat.ID, PrepareMessage(summary, cfg.MaxChars))
}
