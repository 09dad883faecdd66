package dto

import (
	"time"

	"ai-multichat-be/pkg/chain"
)

// ChatRequest is the inbound body of the chat endpoint. Query is typed as
// any so that a non-string value can be rejected with a precise validation
// message instead of a generic JSON parse failure.
type ChatRequest struct {
	Query             any    `json:"query"`
	Model             string `json:"model"`
	FirstModel        string `json:"firstModel,omitempty"`
	SecondModel       string `json:"secondModel,omitempty"`
	Image             string `json:"image,omitempty"`
	ConversationId    string `json:"conversationId,omitempty"`
	UserEmail         string `json:"userEmail" validate:"omitempty,email"`
	ContextMode       bool   `json:"contextMode,omitempty"`
	FileName          string `json:"fileName,omitempty"`
	FileType          string `json:"fileType,omitempty"`
	FileUrl           string `json:"fileUrl,omitempty" validate:"omitempty,url"`
	ListConversations bool   `json:"listConversations,omitempty"`
}

// ChatResponse is the success payload of the chat endpoint.
type ChatResponse struct {
	Responses      []chain.ModelResponse `json:"responses"`
	FinalOutput    string                `json:"finalOutput"`
	TotalTime      int64                 `json:"totalTime"`
	ConversationId string                `json:"conversationId"`
	Messages       []MessageDTO          `json:"messages"`
}

type MessageDTO struct {
	Id        string    `json:"id"`
	Role      string    `json:"role"`
	Model     string    `json:"model,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type ConversationSummaryDTO struct {
	Id        string     `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// ListConversationsResponse answers requests with listConversations set.
type ListConversationsResponse struct {
	Conversations []ConversationSummaryDTO `json:"conversations"`
}
