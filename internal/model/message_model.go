package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConversationId uuid.UUID `gorm:"type:uuid;index"`
	Role           string
	Model          string
	Content        string
	CreatedAt      time.Time
}

func (Message) TableName() string {
	return "messages"
}
