package contract

import (
	"context"

	"ai-multichat-be/internal/entity"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	Update(ctx context.Context, conversation *entity.Conversation) error
	// FindByID returns nil, nil when the conversation does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error)
	// FindFirstByUserEmail returns the user's most recent conversation, or
	// nil, nil when the user has none.
	FindFirstByUserEmail(ctx context.Context, email string) (*entity.Conversation, error)
	// FindAllByUserEmail returns the user's conversations, newest first.
	FindAllByUserEmail(ctx context.Context, email string) ([]*entity.Conversation, error)
}
