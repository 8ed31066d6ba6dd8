package bot

import (
	"context"
	"strings"
	"testing"

	"summy-bot/internal/domain"
	apperrors "summy-bot/pkg/errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	allowedUser  int64 = 100
	strangerUser int64 = 999
	testChat     int64 = 555
)

// fakeAPI records every message the bot sends.
type fakeAPI struct {
	sent []string
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg.Text)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) GetFileDirectURL(fileID string) (string, error) { return "", nil }

func (f *fakeAPI) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	ch := make(chan tgbotapi.Update)
	close(ch)
	return ch
}

func (f *fakeAPI) StopReceivingUpdates() {}

func (f *fakeAPI) last(t *testing.T) string {
	t.Helper()
	if len(f.sent) == 0 {
		t.Fatalf("expected a reply to be sent")
	}
	return f.sent[len(f.sent)-1]
}

type mockConfigService struct {
	configs map[int64]*domain.UserConfig
	updates int
}

func newMockConfigService() *mockConfigService {
	return &mockConfigService{configs: make(map[int64]*domain.UserConfig)}
}

func (m *mockConfigService) Get(ctx context.Context, userID int64) (*domain.UserConfig, error) {
	if cfg, ok := m.configs[userID]; ok {
		return cfg, nil
	}
	return domain.DefaultConfig(userID), nil
}

func (m *mockConfigService) Update(ctx context.Context, userID int64, lang string, wordsLimit, maxChars int) (*domain.UserConfig, error) {
	cfg := &domain.UserConfig{UserID: userID, Lang: lang, WordsLimit: wordsLimit, MaxChars: maxChars}
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	m.updates++
	m.configs[userID] = cfg
	return cfg, nil
}

type mockExtractor struct {
	extraction *domain.Extraction
	err        error
	lastURL    string
}

func (m *mockExtractor) FromURL(ctx context.Context, rawURL string) (*domain.Extraction, error) {
	m.lastURL = rawURL
	if m.err != nil {
		return nil, m.err
	}
	return m.extraction, nil
}

type mockPDF struct {
	text string
	err  error
}

func (m *mockPDF) ExtractText(pdfBytes []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

type mockSummarizer struct {
	summary  string
	response string
	err      error
	calls    int
}

func (m *mockSummarizer) Summarize(ctx context.Context, text string, fromWebpage bool, cfg *domain.UserConfig) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.summary, nil
}

func (m *mockSummarizer) Respond(ctx context.Context, articleText, question string, cfg *domain.UserConfig) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

type mockStateRepo struct {
	articles  map[int64]*domain.Article
	summaries map[int64]*domain.Summary
}

func newMockStateRepo() *mockStateRepo {
	return &mockStateRepo{
		articles:  make(map[int64]*domain.Article),
		summaries: make(map[int64]*domain.Summary),
	}
}

func (m *mockStateRepo) StoreArticle(ctx context.Context, article *domain.Article) error {
	m.articles[article.UserID] = article
	return nil
}

func (m *mockStateRepo) LastArticle(ctx context.Context, userID int64) (*domain.Article, error) {
	article, ok := m.articles[userID]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return article, nil
}

func (m *mockStateRepo) StoreSummary(ctx context.Context, summary *domain.Summary) error {
	m.summaries[summary.UserID] = summary
	return nil
}

func (m *mockStateRepo) LastSummary(ctx context.Context, userID int64) (*domain.Summary, error) {
	summary, ok := m.summaries[userID]
	if !ok {
		return nil, domain.ErrSummaryNotFound
	}
	return summary, nil
}

type fixture struct {
	api        *fakeAPI
	bot        *Bot
	configs    *mockConfigService
	extractor  *mockExtractor
	pdf        *mockPDF
	summarizer *mockSummarizer
	state      *mockStateRepo
	shutdowns  int
}

func newFixture() *fixture {
	f := &fixture{
		api:        &fakeAPI{},
		configs:    newMockConfigService(),
		extractor:  &mockExtractor{extraction: &domain.Extraction{Text: "article text", Source: "https://example.com/a"}},
		pdf:        &mockPDF{text: "pdf text"},
		summarizer: &mockSummarizer{summary: "the summary", response: "the answer"},
		state:      newMockStateRepo(),
	}
	f.bot = New(f.api, Options{
		AllowedUsers: []int64{allowedUser},
		Configs:      f.configs,
		Extractor:    f.extractor,
		PDF:          f.pdf,
		Summarizer:   f.summarizer,
		State:        f.state,
		Logger:       NewMockBotLogger(),
		MaxPDFSize:   1024,
		Shutdown:     func() { f.shutdowns++ },
	})
	return f
}

func commandUpdate(userID int64, text string) tgbotapi.Update {
	cmdLen := len(text)
	if i := strings.Index(text, " "); i > 0 {
		cmdLen = i
	}
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text:     text,
			From:     &tgbotapi.User{ID: userID},
			Chat:     &tgbotapi.Chat{ID: testChat},
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
		},
	}
}

func documentUpdate(userID int64, mimeType string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			From:     &tgbotapi.User{ID: userID},
			Chat:     &tgbotapi.Chat{ID: testChat},
			Document: &tgbotapi.Document{FileID: "file-1", FileName: "doc.pdf", MimeType: mimeType},
		},
	}
}

func TestHandleUpdate_RejectsUnknownUserForEveryCommand(t *testing.T) {
	commands := []string{"/start", "/help", "/set eng 300", "/get", "/summ https://example.com", "/resp why?", "/shut"}

	for _, cmd := range commands {
		f := newFixture()
		f.bot.HandleUpdate(context.Background(), commandUpdate(strangerUser, cmd))

		if got := f.api.last(t); got != "You are not authorized to use this bot." {
			t.Fatalf("command %s: expected rejection, got %q", cmd, got)
		}
		if f.summarizer.calls != 0 {
			t.Fatalf("command %s: stranger must not reach the summarizer", cmd)
		}
		if f.shutdowns != 0 {
			t.Fatalf("command %s: stranger must not shut the bot down", cmd)
		}
	}
}

func TestHandleUpdate_StartAndHelp(t *testing.T) {
	f := newFixture()

	f.bot.HandleUpdate(context.Background(), commandUpdate(allowedUser, "/start"))
	if got := f.api.last(t); got != "Hi! Welcome to summy" {
		t.Fatalf("unexpected start reply: %q", got)
	}

	f.bot.HandleUpdate(context.Background(), commandUpdate(allowedUser, "/help"))
	if got := f.api.last(t); !strings.Contains(got, "/summ <url>") {
		t.Fatalf("expected help text, got %q", got)
	}
}

func TestHandleUpdate_SetThenGetRoundTrips(t *testing.T) {
	f := newFixture()

	f.bot.HandleUpdate(context.Background(), commandUpdate(allowedUser, "/set heb 200 1000"))
	if got := f.api.last(t); got != "Configuration updated successfully." {
		t.Fatalf("unexpected set reply: %q", got)
	}

	f.bot.HandleUpdate(context.Background(), commandUpdate(allowedUser, "/get"))
	got := f.api.last(t)
	if !strings.Contains(got, "language: heb") || !strings.Contains(got, "summary words limit: 200") || !strings.Contains(got, "max message chars: 1000") {
		t.Fatalf("unexpected get reply: %q", got)
	}

	// Repeating the same /set overwrites rather than erroring.
	f.bot.HandleUpdate(context.Background(), commandUpdate(allowedUser, "/set heb 200 1000"))
	if got := f.api.last(t); got != "Configuration updated successfully." {
		t.Fatalf("expected idempotent set, got %q", got)
	}
	if f.configs.updates != 2 {
		t.Fatalf("expected two updates, got %d", f.configs.updates)
	}
}

func TestHandleUpdate_SetValidation(t *testing.T) {
	usage := "Please provide valid configuration, i.e., /set <heb/eng> <word limit> [max chars]."
	badArgs := []string{"/set", "/set eng", "/set eng abc", "/set eng 200 xyz", "/set eng 200 100 extra"}

	for _, cmd := range badArgs {
		f := newFixture()
		f.bot.HandleUpdate(context.Background(), commandUpdate(allowedUser, cmd))
		if got := f.api.last(t); got != usage {
			t.Fatalf("command %q: expected usage reply, got %q", cmd, got)
		}
	}

	// Range errors come from validation, not argument parsing.
	f := newFixture()
	f.bot.HandleUpdate(context.Background(), commandUpdate(allowedUser, "/set fra 300"))
	if got := f.api.last(t); !strings.Contains(got, "eng") {
		t.Fatalf("expected language validation reply, got %q", got)
	}
}

func TestHandleUpdate_SummURL(t *testing.T) {
	f := newFixture()

	f.bot.HandleUpdate(context.Background(), commandUpdate(allowedUser, "/summ https://example.com/a"))

	if f.extractor.lastURL != "https://example.com/a" {
		t.Fatalf("expected extraction of the given URL, got %q", f.extractor.lastURL)
	}
	if got := f.api.last(t); !strings.Contains(got, "the summary") {
		t.Fatalf("expected summary reply, got %q", got)
	}

	article, err := f.state.LastArticle(context.Background(), allowedUser)
	if err != nil {
		t.Fatalf("expected stored article, got %v", err)
	}
	if article.Text != "article text" || article.Source != "https://example.com/a" {
		t.Fatalf("unexpected stored article: %+v", article)
	}
	summary, err := f.state.LastSummary(context.Background(), allowedUser)
	if err != nil {
		t.Fatalf("expected stored summary, got %v", err)
	}
	if summary.Text != "the summary" {
		t.Fatalf("unexpected stored summary: %+v", summary)
	}
}

func TestHandleUpdate_SummOverwritesState(t *testing.T) {
	f := newFixture()

	f.bot.HandleUpdate(context.Background(), commandUpdate(allowedUser, "/summ https://example.com/a"))

	f.extractor.extraction = &domain.Extraction{Text: "second article", Source: "https://example.com/b"}
	f.summarizer.summary = "second summary"
	f.bot.HandleUpdate(context.Background(), commandUpdate(allowedUser, "/summ https://example.com/b"))

	article, _ := f.state.LastArticle(context.Background(), allowedUser)
	if article.Text != "second article" || article.Source != "https://example.com/b" {
		t.Fatalf("expected second summ to overwrite article, got %+v", article)
	}
	summary, _ := f.state.LastSummary(context.Background(), allowedUser)
	if summary.Text != "second summary" {
		t.Fatalf("expected second summ to overwrite summary, got %+v", summary)
	}
	if len(f.state.articles) != 1 || len(f.state.summaries) != 1 {
		t.Fatalf("expected overwrite, not append: %d articles, %d summaries",
			len(f.state.articles), len(f.state.summaries))
	}
}

func TestHandleUpdate_SummNoArgs(t *testing.T) {
	f := newFixture()
	f.bot.HandleUpdate(context.Background(), commandUpdate(allowedUser, "/summ"))
	if got := f.api.last(t); got != "Please provide a URL after the command, e.g., /summ <URL>." {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestHandleUpdate_SummPDFPromptsForUpload(t *testing.T) {
	f := newFixture()
	f.bot.HandleUpdate(context.Background(), commandUpdate(allowedUser, "/summ pdf"))
	if got := f.api.last(t); got != "Please upload the PDF file." {
		t.Fatalf("unexpected reply: %q", got)
	}
	if f.summarizer.calls != 0 {
		t.Fatalf("prompting for upload must not call the summarizer")
	}
}

func TestHandleUpdate_SummExtractionFailure(t *testing.T) {
	f := newFixture()
	f.extractor.err = apperrors.NewExtractionError("fetch failed", nil)

	f.bot.HandleUpdate(context.Background(), commandUpdate(allowedUser, "/summ https://example.com/a"))

	if got := f.api.last(t); got != "Could not extract any text from that. Please try another source." {
		t.Fatalf("unexpected reply: %q", got)
	}
	if f.summarizer.calls != 0 {
		t.Fatalf("failed extraction must not reach the summarizer")
	}
}

func TestHandleUpdate_RespWithoutSummary(t *testing.T) {
	f := newFixture()

	f.bot.HandleUpdate(context.Background(), commandUpdate(allowedUser, "/resp what about costs?"))

	if got := f.api.last(t); got != "No summary to follow up on yet. Summarize something with /summ first." {
		t.Fatalf("unexpected reply: %q", got)
	}
	if f.summarizer.calls != 0 {
		t.Fatalf("missing summary must not reach the completion API")
	}
}

func TestHandleUpdate_RespAfterSumm(t *testing.T) {
	f := newFixture()
	f.bot.HandleUpdate(context.Background(), commandUpdate(allowedUser, "/summ https://example.com/a"))

	f.bot.HandleUpdate(context.Background(), commandUpdate(allowedUser, "/resp what about costs?"))
	if got := f.api.last(t); !strings.Contains(got, "the answer") {
		t.Fatalf("expected follow-up answer, got %q", got)
	}

	// The stored summary is read, not replaced, by /resp.
	summary, err := f.state.LastSummary(context.Background(), allowedUser)
	if err != nil || summary.Text != "the summary" {
		t.Fatalf("expected summary unchanged after /resp, got %+v err %v", summary, err)
	}
}

func TestHandleUpdate_RespNoQuestion(t *testing.T) {
	f := newFixture()
	f.bot.HandleUpdate(context.Background(), commandUpdate(allowedUser, "/resp"))
	if got := f.api.last(t); got != "Please provide a response for the last summary, e.g., /resp <RESPONSE>." {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestHandleUpdate_DocumentWrongMimeType(t *testing.T) {
	f := newFixture()
	f.bot.HandleUpdate(context.Background(), documentUpdate(allowedUser, "image/png"))
	if got := f.api.last(t); got != "Please upload a valid PDF file." {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestHandleUpdate_Shut(t *testing.T) {
	f := newFixture()
	f.bot.HandleUpdate(context.Background(), commandUpdate(allowedUser, "/shut"))
	if got := f.api.last(t); got != "Shutting down the bot. Goodbye!" {
		t.Fatalf("unexpected reply: %q", got)
	}
	if f.shutdowns != 1 {
		t.Fatalf("expected shutdown to be invoked once, got %d", f.shutdowns)
	}
}

func TestHandleUpdate_UnknownCommand(t *testing.T) {
	f := newFixture()
	f.bot.HandleUpdate(context.Background(), commandUpdate(allowedUser, "/bogus"))
	if got := f.api.last(t); got != "Unknown command. Try /help." {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestHandleUpdate_IgnoresPlainText(t *testing.T) {
	f := newFixture()
	update := tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: "hello there",
			From: &tgbotapi.User{ID: allowedUser},
			Chat: &tgbotapi.Chat{ID: testChat},
		},
	}
	f.bot.HandleUpdate(context.Background(), update)
	if len(f.api.sent) != 0 {
		t.Fatalf("plain text without a document should be ignored, got %q", f.api.sent)
	}
}
