package bot

import (
	"context"
	"io"
	"net/http"
	"time"

	"summy-bot/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// API is the slice of the Telegram client the bot uses. *tgbotapi.BotAPI
// satisfies it.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type configService interface {
	Get(ctx context.Context, userID int64) (*domain.UserConfig, error)
	Update(ctx context.Context, userID int64, lang string, wordsLimit, maxChars int) (*domain.UserConfig, error)
}

type urlExtractor interface {
	FromURL(ctx context.Context, rawURL string) (*domain.Extraction, error)
}

type pdfExtractor interface {
	ExtractText(pdfBytes []byte) (string, error)
}

type summarizer interface {
	Summarize(ctx context.Context, text string, fromWebpage bool, cfg *domain.UserConfig) (string, error)
	Respond(ctx context.Context, articleText, question string, cfg *domain.UserConfig) (string, error)
}

// Options holds the collaborators the bot dispatches to.
type Options struct {
	AllowedUsers []int64
	Configs      configService
	Extractor    urlExtractor
	PDF          pdfExtractor
	Summarizer   summarizer
	State        domain.StateRepository
	Logger       domain.Logger
	MaxPDFSize   int64

	// Shutdown is invoked by /shut; in production it cancels the run context.
	Shutdown func()
}

// Bot routes incoming Telegram messages to command handlers.
type Bot struct {
	api        API
	allowed    map[int64]bool
	configs    configService
	extractor  urlExtractor
	pdf        pdfExtractor
	summarizer summarizer
	state      domain.StateRepository
	logger     domain.Logger
	maxPDFSize int64
	shutdown   func()
	files      *http.Client
}

// New creates a bot from its collaborators
func New(api API, opts Options) *Bot {
	allowed := make(map[int64]bool, len(opts.AllowedUsers))
	for _, id := range opts.AllowedUsers {
		allowed[id] = true
	}
	shutdown := opts.Shutdown
	if shutdown == nil {
		shutdown = func() {}
	}
	return &Bot{
		api:        api,
		allowed:    allowed,
		configs:    opts.Configs,
		extractor:  opts.Extractor,
		pdf:        opts.PDF,
		summarizer: opts.Summarizer,
		state:      opts.State,
		logger:     opts.Logger,
		maxPDFSize: opts.MaxPDFSize,
		shutdown:   shutdown,
		files:      &http.Client{Timeout: 60 * time.Second},
	}
}

// Run long-polls Telegram until the context is cancelled. Handler failures
// are replied to the user and never stop the loop.
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.api.GetUpdatesChan(updateConfig)

	b.logger.Info("Bot polling for updates")
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("Bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				b.logger.Info("Update channel closed")
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate dispatches a single update. Exported so transports other than
// long polling (and tests) can feed updates in.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	if !b.allowed[msg.From.ID] {
		b.logger.Warn("Rejected message from unknown user", "user_id", msg.From.ID)
		b.reply(msg.Chat.ID, "You are not authorized to use this bot.")
		return
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.handleStart(msg)
		case "help":
			b.handleHelp(msg)
		case "set":
			b.handleSet(ctx, msg)
		case "get":
			b.handleGet(ctx, msg)
		case "summ":
			b.handleSumm(ctx, msg)
		case "resp":
			b.handleResp(ctx, msg)
		case "shut":
			b.handleShut(msg)
		default:
			b.reply(msg.Chat.ID, "Unknown command. Try /help.")
		}
		return
	}

	if msg.Document != nil {
		b.handleDocument(ctx, msg)
		return
	}
}

// reply sends a plain text message, logging send failures.
func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("Failed to send reply", err, "chat_id", chatID)
	}
}

// downloadFile fetches an uploaded file through the Bot API file endpoint,
// capped at maxPDFSize.
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	fileURL, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.files.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(io.LimitReader(resp.Body, b.maxPDFSize))
}
