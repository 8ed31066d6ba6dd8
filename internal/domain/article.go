package domain

import "time"

// SourcePDF marks an article extracted from an uploaded PDF rather than a URL.
const SourcePDF = "pdf"

// Article is the last extracted text stored for a user. Overwritten on every
// successful /summ.
type Article struct {
	UserID      int64     `json:"user_id"`
	Text        string    `json:"text"`
	Source      string    `json:"source"`
	FromWebpage bool      `json:"from_webpage"`
	StoredAt    time.Time `json:"stored_at"`
}

// Summary is the last generated summary stored for a user. Overwritten on
// every successful /summ, read (not mutated) by /resp.
type Summary struct {
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Extraction is the result of pulling text out of a URL or PDF. FromWebpage
// is true when the whole page was used because no article body was found.
type Extraction struct {
	Text        string
	Source      string
	FromWebpage bool
}
