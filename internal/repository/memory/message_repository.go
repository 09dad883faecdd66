package memory

import (
	"context"
	"sort"
	"sync"

	"ai-multichat-be/internal/entity"
	"ai-multichat-be/internal/repository/contract"

	"github.com/google/uuid"
)

// MessageRepository is the in-memory counterpart of the message contract.
type MessageRepository struct {
	mu       sync.RWMutex
	messages []*entity.Message
}

var _ contract.MessageRepository = &MessageRepository{}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

func (r *MessageRepository) Create(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *message
	r.messages = append(r.messages, &stored)
	return nil
}

func (r *MessageRepository) FindByConversationID(ctx context.Context, conversationId uuid.UUID) ([]*entity.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*entity.Message
	for _, m := range r.messages {
		if m.ConversationId == conversationId {
			found := *m
			result = append(result, &found)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MessageRepository) FindRecentByConversationID(ctx context.Context, conversationId uuid.UUID, limit int) ([]*entity.Message, error) {
	all, err := r.FindByConversationID(ctx, conversationId)
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}
