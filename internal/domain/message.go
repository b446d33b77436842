package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type Message struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
}

func NewMessage(text, username string, at time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Text:      text,
		Username:  username,
		Timestamp: at.UTC().Format(TimestampLayout),
	}
}
