package memory

import (
	"context"
	"sort"
	"sync"

	"ai-multichat-be/internal/entity"
	"ai-multichat-be/internal/repository/contract"

	"github.com/google/uuid"
)

// ConversationRepository is an in-memory implementation of the conversation
// contract. It backs tests and credential-less local runs without Postgres.
type ConversationRepository struct {
	mu            sync.RWMutex
	conversations map[uuid.UUID]*entity.Conversation
}

var _ contract.ConversationRepository = &ConversationRepository{}

func NewConversationRepository() *ConversationRepository {
	return &ConversationRepository{
		conversations: make(map[uuid.UUID]*entity.Conversation),
	}
}

func (r *ConversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *conversation
	r.conversations[conversation.Id] = &stored
	return nil
}

func (r *ConversationRepository) Update(ctx context.Context, conversation *entity.Conversation) error {
	return r.Create(ctx, conversation)
}

func (r *ConversationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conversations[id]
	if !ok {
		return nil, nil
	}
	found := *c
	return &found, nil
}

func (r *ConversationRepository) FindFirstByUserEmail(ctx context.Context, email string) (*entity.Conversation, error) {
	all, err := r.FindAllByUserEmail(ctx, email)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *ConversationRepository) FindAllByUserEmail(ctx context.Context, email string) ([]*entity.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*entity.Conversation
	for _, c := range r.conversations {
		if c.UserEmail == email {
			found := *c
			result = append(result, &found)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
