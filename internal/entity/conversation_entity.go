package entity

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id        uuid.UUID
	UserEmail string
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
