package model

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserEmail string    `gorm:"index"`
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func (Conversation) TableName() string {
	return "conversations"
}
