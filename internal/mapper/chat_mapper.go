package mapper

import (
	"ai-multichat-be/internal/entity"
	"ai-multichat-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ConversationToModel(e *entity.Conversation) *model.Conversation {
	return &model.Conversation{
		Id:        e.Id,
		UserEmail: e.UserEmail,
		Title:     e.Title,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *ChatMapper) ConversationToEntity(mo *model.Conversation) *entity.Conversation {
	return &entity.Conversation{
		Id:        mo.Id,
		UserEmail: mo.UserEmail,
		Title:     mo.Title,
		CreatedAt: mo.CreatedAt,
		UpdatedAt: mo.UpdatedAt,
	}
}

func (m *ChatMapper) MessageToModel(e *entity.Message) *model.Message {
	return &model.Message{
		Id:             e.Id,
		ConversationId: e.ConversationId,
		Role:           e.Role,
		Model:          e.Model,
		Content:        e.Content,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *ChatMapper) MessageToEntity(mo *model.Message) *entity.Message {
	return &entity.Message{
		Id:             mo.Id,
		ConversationId: mo.ConversationId,
		Role:           mo.Role,
		Model:          mo.Model,
		Content:        mo.Content,
		CreatedAt:      mo.CreatedAt,
	}
}
