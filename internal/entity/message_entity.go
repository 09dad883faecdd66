package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is one turn of a conversation. Model-authored messages carry the
// identifier of the model that produced them.
type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Role           string // user | model
	Model          string // empty for user-authored messages
	Content        string
	CreatedAt      time.Time
}
