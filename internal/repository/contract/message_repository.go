package contract

import (
	"context"

	"ai-multichat-be/internal/entity"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// FindByConversationID returns all messages ordered by creation time.
	FindByConversationID(ctx context.Context, conversationId uuid.UUID) ([]*entity.Message, error)
	// FindRecentByConversationID returns the last limit messages, oldest of
	// them first.
	FindRecentByConversationID(ctx context.Context, conversationId uuid.UUID, limit int) ([]*entity.Message, error)
}
