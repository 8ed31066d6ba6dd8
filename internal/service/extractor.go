package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"summy-bot/internal/domain"
	apperrors "summy-bot/pkg/errors"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

const (
	// maxFetchBytes caps how much of a page we read before extraction.
	maxFetchBytes = 10 * 1024 * 1024

	// minArticleWords is the smallest readability result we trust before
	// falling back to whole-page text.
	minArticleWords = 25

	fetchUserAgent = "Mozilla/5.0 (compatible; summy-bot/1.0)"
)

// Extractor pulls readable text out of web pages.
type Extractor struct {
	client *http.Client
	logger domain.Logger
}

// NewExtractor creates a new URL text extractor
func NewExtractor(timeout time.Duration, logger domain.Logger) *Extractor {
	return &Extractor{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// FromURL fetches the page and extracts its article body. When no article
// body is found the whole page's visible text is used and the extraction is
// flagged as a full webpage, which changes the summarization prompt.
func (e *Extractor) FromURL(ctx context.Context, rawURL string) (*domain.Extraction, error) {
	pageURL, err := url.ParseRequestURI(rawURL)
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") {
		return nil, apperrors.NewValidationError("Please provide a valid http(s) URL.")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperrors.NewExtractionError("building fetch request failed", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, apperrors.NewExtractionError("fetching URL failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewExtractionError(
			fmt.Sprintf("fetching URL returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, apperrors.NewExtractionError("reading page body failed", err)
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err == nil {
		text := strings.TrimSpace(article.TextContent)
		if len(strings.Fields(text)) >= minArticleWords {
			e.logger.Info("Article body extracted", "url", rawURL, "chars", len(text))
			return &domain.Extraction{Text: text, Source: rawURL, FromWebpage: false}, nil
		}
	}

	text := visibleText(body)
	if text == "" {
		return nil, apperrors.NewExtractionError("no text found on page", domain.ErrEmptyExtraction)
	}
	e.logger.Info("Falling back to full page text", "url", rawURL, "chars", len(text))
	return &domain.Extraction{Text: text, Source: rawURL, FromWebpage: true}, nil
}

// visibleText collects the text nodes of an HTML document, skipping script
// and style content, with whitespace collapsed.
func visibleText(page []byte) string {
	root, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return strings.Join(strings.Fields(sb.String()), " ")
}
