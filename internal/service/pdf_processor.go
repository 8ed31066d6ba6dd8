package service

import (
	"fmt"
	"strings"
	"time"

	"summy-bot/internal/domain"
	apperrors "summy-bot/pkg/errors"

	"github.com/gen2brain/go-fitz"
)

// PDFProcessor extracts plain text from uploaded PDF documents.
type PDFProcessor struct {
	logger domain.Logger
}

// NewPDFProcessor creates a new PDF processor
func NewPDFProcessor(logger domain.Logger) *PDFProcessor {
	return &PDFProcessor{
		logger: logger,
	}
}

// pageTimeout bounds extraction of a single page; malformed pages can make
// MuPDF spin.
const pageTimeout = 60 * time.Second

// ExtractText returns the concatenated plain text of every page.
func (p *PDFProcessor) ExtractText(pdfBytes []byte) (string, error) {
	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return "", apperrors.NewExtractionError("failed to open PDF", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	p.logger.Debug("PDF opened", "pages", numPages)

	type pageResult struct {
		text string
		err  error
	}

	var sb strings.Builder
	for pageNum := 0; pageNum < numPages; pageNum++ {
		resultCh := make(chan pageResult, 1)
		go func(idx int) {
			t, e := doc.Text(idx)
			resultCh <- pageResult{text: t, err: e}
		}(pageNum)

		select {
		case res := <-resultCh:
			if res.err != nil {
				p.logger.Warn("PDF page extraction failed; skipping", "page", pageNum+1, "error", res.err)
				continue
			}
			sb.WriteString(res.text)
			sb.WriteString("\n")
		case <-time.After(pageTimeout):
			p.logger.Warn("PDF page extraction timeout; skipping", "page", pageNum+1, "total", numPages)
			go func() { <-resultCh }() // drain so the goroutine can exit
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", apperrors.NewExtractionError(
			fmt.Sprintf("no text in %d-page PDF, it may be scanned or image-based", numPages),
			domain.ErrEmptyExtraction)
	}
	return text, nil
}
