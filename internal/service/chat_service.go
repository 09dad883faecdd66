package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ai-multichat-be/internal/constant"
	"ai-multichat-be/internal/dto"
	"ai-multichat-be/internal/entity"
	"ai-multichat-be/internal/pkg/logger"
	"ai-multichat-be/internal/pkg/serverutils"
	"ai-multichat-be/internal/repository/contract"
	"ai-multichat-be/pkg/chain"
	"ai-multichat-be/pkg/llm/dispatch"

	"github.com/google/uuid"
)

// IChatService is the orchestration entry point behind the chat endpoint.
type IChatService interface {
	ProcessChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	ListConversations(ctx context.Context, userEmail string) (*dto.ListConversationsResponse, error)
}

type chatService struct {
	conversationRepo contract.ConversationRepository
	messageRepo      contract.MessageRepository
	dispatcher       *dispatch.Dispatcher
	orchestrator     *chain.Orchestrator
	hasHostedKey     bool
	contextTurns     int
	fileClient       *http.Client
	log              logger.ILogger
}

func NewChatService(
	conversationRepo contract.ConversationRepository,
	messageRepo contract.MessageRepository,
	dispatcher *dispatch.Dispatcher,
	orchestrator *chain.Orchestrator,
	hasHostedKey bool,
	contextTurns int,
	log logger.ILogger,
) IChatService {
	if contextTurns <= 0 {
		contextTurns = 10
	}
	return &chatService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		dispatcher:       dispatcher,
		orchestrator:     orchestrator,
		hasHostedKey:     hasHostedKey,
		contextTurns:     contextTurns,
		fileClient:       &http.Client{Timeout: 10 * time.Second},
		log:              log,
	}
}

// ProcessChat validates the request, augments the prompt, runs the single or
// chained execution and persists the exchange.
func (cs *chatService) ProcessChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	query, err := cs.validate(req)
	if err != nil {
		return nil, err
	}

	conversation, created, err := cs.resolveConversation(ctx, req, query)
	if err != nil {
		return nil, err
	}

	prompt, err := cs.augmentPrompt(ctx, req, conversation, query)
	if err != nil {
		return nil, err
	}

	chained := req.Model == constant.ChainedModeToken
	var result *chain.Result
	if chained {
		result, err = cs.orchestrator.Run(ctx, prompt, req.FirstModel, req.SecondModel)
	} else {
		result, err = cs.orchestrator.Single(ctx, prompt, req.Model)
	}
	if err != nil {
		cs.log.Error("chat", "model execution failed", map[string]interface{}{
			"error": err.Error(), "model": req.Model, "chained": chained,
		})
		return nil, serverutils.NewUpstreamError("Model execution failed", err)
	}

	if err := cs.persistExchange(ctx, conversation, query, result); err != nil {
		return nil, err
	}
	if created {
		cs.log.Info("chat", "conversation created", map[string]interface{}{
			"conversation_id": conversation.Id.String(), "user": req.UserEmail,
		})
	}

	messages, err := cs.messageRepo.FindByConversationID(ctx, conversation.Id)
	if err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		Responses:      result.Steps,
		FinalOutput:    result.FinalText,
		TotalTime:      result.TotalLatencyMs,
		ConversationId: conversation.Id.String(),
		Messages:       toMessageDTOs(messages),
	}, nil
}

// ListConversations answers requests carrying the listConversations flag.
func (cs *chatService) ListConversations(ctx context.Context, userEmail string) (*dto.ListConversationsResponse, error) {
	if strings.TrimSpace(userEmail) == "" {
		return nil, serverutils.NewValidationError("User email is required")
	}

	conversations, err := cs.conversationRepo.FindAllByUserEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.ConversationSummaryDTO, 0, len(conversations))
	for _, c := range conversations {
		summaries = append(summaries, dto.ConversationSummaryDTO{
			Id:        c.Id.String(),
			Title:     c.Title,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return &dto.ListConversationsResponse{Conversations: summaries}, nil
}

// validate applies the ordered request checks. Model resolution happens
// before any conversation or network work: an unresolvable identifier never
// triggers a call, and the hosted credential is checked exactly once per
// request.
func (cs *chatService) validate(req *dto.ChatRequest) (string, error) {
	query, ok := req.Query.(string)
	if !ok || strings.TrimSpace(query) == "" {
		return "", serverutils.NewValidationError("Query is required and must be a string")
	}

	if strings.TrimSpace(req.UserEmail) == "" {
		return "", serverutils.NewValidationError("User email is required")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return "", err
	}

	var targets []dispatch.Target
	if req.Model == constant.ChainedModeToken {
		first, err := cs.dispatcher.Resolve(req.FirstModel)
		if err != nil {
			return "", serverutils.NewValidationError("Valid model selection is required")
		}
		second, err := cs.dispatcher.Resolve(req.SecondModel)
		if err != nil {
			return "", serverutils.NewValidationError("Valid model selection is required")
		}
		targets = []dispatch.Target{first, second}
	} else {
		target, err := cs.dispatcher.Resolve(req.Model)
		if err != nil {
			return "", serverutils.NewValidationError("Valid model selection is required")
		}
		targets = []dispatch.Target{target}
	}

	for _, t := range targets {
		if t.NeedsHostedCredential() && !cs.hasHostedKey {
			return "", serverutils.NewConfigurationError("Together API key not configured")
		}
	}

	return query, nil
}

// resolveConversation finds the referenced conversation or falls back to
// find-or-create by user email.
func (cs *chatService) resolveConversation(ctx context.Context, req *dto.ChatRequest, query string) (*entity.Conversation, bool, error) {
	if req.ConversationId != "" {
		id, err := uuid.Parse(req.ConversationId)
		if err != nil {
			return nil, false, serverutils.NewNotFoundError("Conversation not found")
		}
		conversation, err := cs.conversationRepo.FindByID(ctx, id)
		if err != nil {
			return nil, false, err
		}
		if conversation == nil {
			return nil, false, serverutils.NewNotFoundError("Conversation not found")
		}
		return conversation, false, nil
	}

	conversation, err := cs.conversationRepo.FindFirstByUserEmail(ctx, req.UserEmail)
	if err != nil {
		return nil, false, err
	}
	if conversation != nil {
		return conversation, false, nil
	}

	conversation = &entity.Conversation{
		Id:        uuid.New(),
		UserEmail: req.UserEmail,
		Title:     truncateTitle(query),
		CreatedAt: time.Now(),
	}
	if err := cs.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, false, err
	}
	return conversation, true, nil
}

// augmentPrompt applies the optional image, file and context preambles.
// Augmentation is plain text concatenation: no binary data reaches a model.
func (cs *chatService) augmentPrompt(ctx context.Context, req *dto.ChatRequest, conversation *entity.Conversation, query string) (string, error) {
	prompt := query

	if req.ContextMode {
		history, err := cs.messageRepo.FindRecentByConversationID(ctx, conversation.Id, cs.contextTurns)
		if err != nil {
			return "", err
		}
		if len(history) > 0 {
			lines := make([]string, 0, len(history))
			for _, m := range history {
				prefix := "User"
				if m.Role == constant.ChatMessageRoleModel {
					prefix = "AI"
				}
				lines = append(lines, prefix+": "+m.Content)
			}
			prompt = "Previous conversation:\n" + strings.Join(lines, "\n") + "\n\n" + prompt
		}
	}

	if req.FileUrl != "" {
		content := cs.fetchFileContent(ctx, req.FileUrl, req.FileType)
		name := req.FileName
		if name == "" {
			name = "uploaded file"
		}
		if content != "" {
			prompt = fmt.Sprintf("The user uploaded a file named %q with this content:\n\n%s\n\n%s", name, content, prompt)
		} else {
			prompt = fmt.Sprintf("The user uploaded a file named %q whose content could not be read.\n\n%s", name, prompt)
		}
	}

	if req.Image != "" {
		prompt = "The user attached an image to this message. Visual analysis is not available; answer from the text of the question and mention the image only if relevant.\n\n" + prompt
	}

	return prompt, nil
}

const maxFileContentBytes = 8 * 1024

// fetchFileContent retrieves a textual uploaded file. Failures degrade to an
// empty string, the chat must not break because an attachment was
// unreadable.
func (cs *chatService) fetchFileContent(ctx context.Context, fileUrl, fileType string) string {
	if !isTextualFileType(fileType) {
		return ""
	}

	httpReq, err := http.NewRequestWithContext(ctx, "GET", fileUrl, nil)
	if err != nil {
		return ""
	}
	resp, err := cs.fileClient.Do(httpReq)
	if err != nil {
		cs.log.Warn("chat", "file fetch failed", map[string]interface{}{"url": fileUrl, "error": err.Error()})
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxFileContentBytes))
	if err != nil {
		return ""
	}
	return string(content)
}

func isTextualFileType(fileType string) bool {
	if strings.HasPrefix(fileType, "text/") {
		return true
	}
	switch fileType {
	case "application/json", "application/xml", "application/csv", "application/x-yaml":
		return true
	}
	return false
}

// persistExchange appends the user's query and one model-tagged message per
// step. Step timestamps are offset so ordered reads replay the exchange.
func (cs *chatService) persistExchange(ctx context.Context, conversation *entity.Conversation, query string, result *chain.Result) error {
	now := time.Now()

	userMessage := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Role:           constant.ChatMessageRoleUser,
		Content:        query,
		CreatedAt:      now,
	}
	if err := cs.messageRepo.Create(ctx, userMessage); err != nil {
		return err
	}

	for i, step := range result.Steps {
		modelMessage := &entity.Message{
			Id:             uuid.New(),
			ConversationId: conversation.Id,
			Role:           constant.ChatMessageRoleModel,
			Model:          step.Model,
			Content:        step.Text,
			CreatedAt:      now.Add(time.Duration(i+1) * time.Millisecond),
		}
		if err := cs.messageRepo.Create(ctx, modelMessage); err != nil {
			return err
		}
	}

	updated := time.Now()
	conversation.UpdatedAt = &updated
	return cs.conversationRepo.Update(ctx, conversation)
}

func toMessageDTOs(messages []*entity.Message) []dto.MessageDTO {
	out := make([]dto.MessageDTO, 0, len(messages))
	for _, m := range messages {
		out = append(out, dto.MessageDTO{
			Id:        m.Id.String(),
			Role:      m.Role,
			Model:     m.Model,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}

func truncateTitle(query string) string {
	const maxTitle = 60
	title := strings.TrimSpace(query)
	if len(title) > maxTitle {
		title = title[:maxTitle] + "…"
	}
	return title
}
