package model

// Question is a user-submitted question.
//
// Title and Content pass through the content moderator before they are
// persisted, so the stored values may be the classifier's censored variants
// of what the client sent.
//
// Tags is nil when the client supplied none; the repository stores it as a
// nullable JSON-encoded column.
type Question struct {
	ID      int      `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

// NewQuestion is the payload for creating or replacing a question. The ID is
// assigned by the store.
type NewQuestion struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags,omitempty"`
}
