package model

// Answer is a reply to a question. Content is moderated before persistence,
// same as question text.
type Answer struct {
	ID         int    `json:"id"`
	Content    string `json:"content"`
	QuestionID int    `json:"question_id"`
}

// NewAnswer is the payload for posting an answer to an existing question.
type NewAnswer struct {
	Content    string `json:"content" validate:"required"`
	QuestionID int    `json:"question_id" validate:"required"`
}
