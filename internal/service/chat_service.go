package service

import (
	"context"
	"strings"
	"time"

	"ai-chatbot-be/internal/constant"
	"ai-chatbot-be/internal/dto"
	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/pkg/apperror"
	"ai-chatbot-be/internal/pkg/logger"
	"ai-chatbot-be/internal/repository/memory"
	"ai-chatbot-be/internal/repository/specification"
	"ai-chatbot-be/internal/repository/unitofwork"
	"ai-chatbot-be/pkg/llm"
	"ai-chatbot-be/pkg/store"

	"github.com/google/uuid"
)

type IChatService interface {
	CreateChat(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error)
	CreateChatStream(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (<-chan dto.ChatStreamEvent, error)
	GetThreads(ctx context.Context, userId uuid.UUID, role entity.UserRole, req *dto.ThreadListRequest) (*dto.PageResponse[dto.ThreadWithChatsResponse], error)
	DeleteThread(ctx context.Context, userId uuid.UUID, role entity.UserRole, threadId uuid.UUID) error
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	llmProvider      llm.LLMProvider
	publisherService IPublisherService
	streamRepo       *memory.StreamRepository
	llmLogger        logger.ILogger
	defaultModel     string
	streamTimeout    time.Duration
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	publisherService IPublisherService,
	streamRepo *memory.StreamRepository,
	llmLogger logger.ILogger,
	defaultModel string,
	streamTimeout time.Duration,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		llmProvider:      llmProvider,
		publisherService: publisherService,
		streamRepo:       streamRepo,
		llmLogger:        llmLogger,
		defaultModel:     defaultModel,
		streamTimeout:    streamTimeout,
	}
}

// resolveThread returns the thread the next chat belongs to. The owner's
// latest thread is reused while its last chat is fresh; otherwise a new
// thread is created. Exactly the timeout elapsed counts as expired.
func (s *chatService) resolveThread(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, now time.Time) (*entity.Thread, error) {
	latest, err := uow.ThreadRepository().FindOne(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "last_chat_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	if latest != nil && now.Sub(latest.LastChatAt) < constant.ThreadTimeout {
		return latest, nil
	}

	thread := &entity.Thread{
		Id:         uuid.New(),
		UserId:     userId,
		CreatedAt:  now,
		LastChatAt: now,
	}
	if err := uow.ThreadRepository().Create(ctx, thread); err != nil {
		return nil, err
	}
	return thread, nil
}

// buildMessages assembles the provider payload: system prompt, then one
// user/assistant pair per prior chat in chronological order, then the new
// question. Prior chats contribute both sides even when the answer is short.
func buildMessages(chats []*entity.Chat, question string) []llm.Message {
	messages := make([]llm.Message, 0, 2*len(chats)+2)
	messages = append(messages, llm.Message{
		Role:    constant.MessageRoleSystem,
		Content: constant.SystemPrompt,
	})
	for _, chat := range chats {
		messages = append(messages,
			llm.Message{Role: constant.MessageRoleUser, Content: chat.Question},
			llm.Message{Role: constant.MessageRoleAssistant, Content: chat.Answer},
		)
	}
	messages = append(messages, llm.Message{
		Role:    constant.MessageRoleUser,
		Content: question,
	})
	return messages
}

func (s *chatService) loadHistory(ctx context.Context, uow unitofwork.UnitOfWork, threadId uuid.UUID) ([]*entity.Chat, error) {
	return uow.ChatRepository().FindAll(ctx,
		specification.ByThreadID{ThreadID: threadId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
}

func (s *chatService) modelFor(req *dto.CreateChatRequest) string {
	if req.Model != "" {
		return req.Model
	}
	return s.defaultModel
}

// CreateChat runs a full synchronous completion. Thread resolution, the
// provider call, and persistence share one transaction: a provider failure
// leaves no trace, not even a freshly created thread.
func (s *chatService) CreateChat(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error) {
	now := time.Now()
	model := s.modelFor(req)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	thread, err := s.resolveThread(ctx, uow, userId, now)
	if err != nil {
		return nil, err
	}

	history, err := s.loadHistory(ctx, uow, thread.Id)
	if err != nil {
		return nil, err
	}

	messages := buildMessages(history, req.Question)

	started := time.Now()
	answer, err := s.llmProvider.Chat(ctx, messages, llm.WithModel(model))
	if err != nil {
		s.llmLogger.Error("llm", "completion failed", map[string]interface{}{
			"user_id":   userId.String(),
			"thread_id": thread.Id.String(),
			"model":     model,
			"error":     err.Error(),
		})
		return nil, apperror.ExternalService(err.Error())
	}
	if answer == "" {
		return nil, apperror.ExternalService("provider returned an empty answer")
	}

	s.llmLogger.Info("llm", "completion ok", map[string]interface{}{
		"user_id":     userId.String(),
		"thread_id":   thread.Id.String(),
		"model":       model,
		"messages":    len(messages),
		"answer_len":  len(answer),
		"duration_ms": time.Since(started).Milliseconds(),
	})

	chat := &entity.Chat{
		Id:        uuid.New(),
		ThreadId:  thread.Id,
		UserId:    userId,
		Question:  req.Question,
		Answer:    answer,
		Model:     model,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatRepository().Create(ctx, chat); err != nil {
		return nil, err
	}

	thread.LastChatAt = chat.CreatedAt
	if err := uow.ThreadRepository().Update(ctx, thread); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	publishActivitySignal(ctx, s.publisherService, dto.ActivitySignal{
		UserId:    userId,
		EventType: string(entity.EventTypeChat),
		ThreadId:  &chat.ThreadId,
		ChatId:    &chat.Id,
		Model:     model,
	})

	return &dto.ChatResponse{
		Id:        chat.Id,
		ThreadId:  chat.ThreadId,
		Question:  chat.Question,
		Answer:    chat.Answer,
		Model:     chat.Model,
		CreatedAt: chat.CreatedAt,
	}, nil
}

// CreateChatStream starts a streamed completion and returns the event
// channel. Thread resolution commits before streaming begins, so a new
// thread survives a failed stream. The chat row is written only after the
// stream completes naturally with a non-empty answer.
func (s *chatService) CreateChatStream(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (<-chan dto.ChatStreamEvent, error) {
	now := time.Now()
	model := s.modelFor(req)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	thread, err := s.resolveThread(ctx, uow, userId, now)
	if err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	history, err := s.loadHistory(ctx, s.uowFactory.NewUnitOfWork(ctx), thread.Id)
	if err != nil {
		return nil, err
	}
	messages := buildMessages(history, req.Question)

	streamID := uuid.NewString()
	s.streamRepo.Save(&store.ActiveStream{
		ID:        streamID,
		UserID:    userId.String(),
		ThreadID:  thread.Id.String(),
		Model:     model,
		StartedAt: now,
	})

	events := make(chan dto.ChatStreamEvent)

	go func() {
		defer close(events)
		defer s.streamRepo.Delete(streamID)

		// The stream outlives the request context; only the timeout
		// bounds it.
		streamCtx, cancel := context.WithTimeout(context.Background(), s.streamTimeout)
		defer cancel()

		fragments := make(chan string)
		errCh := make(chan error, 1)
		go func() {
			errCh <- s.llmProvider.ChatStream(streamCtx, messages, fragments, llm.WithModel(model))
		}()

		var builder strings.Builder
		for fragment := range fragments {
			builder.WriteString(fragment)
			events <- dto.ChatStreamEvent{Content: fragment}
		}

		if err := <-errCh; err != nil {
			s.llmLogger.Error("llm", "stream failed", map[string]interface{}{
				"user_id":   userId.String(),
				"thread_id": thread.Id.String(),
				"model":     model,
				"received":  builder.Len(),
				"error":     err.Error(),
			})
			events <- dto.ChatStreamEvent{Err: apperror.ExternalService(err.Error())}
			return
		}

		answer := builder.String()
		if answer == "" {
			events <- dto.ChatStreamEvent{Err: apperror.ExternalService("provider returned an empty answer")}
			return
		}

		chat, err := s.persistStreamedChat(thread, userId, req.Question, answer, model)
		if err != nil {
			s.llmLogger.Error("llm", "stream persistence failed", map[string]interface{}{
				"user_id":   userId.String(),
				"thread_id": thread.Id.String(),
				"error":     err.Error(),
			})
			events <- dto.ChatStreamEvent{Err: apperror.Internal()}
			return
		}

		s.llmLogger.Info("llm", "stream ok", map[string]interface{}{
			"user_id":    userId.String(),
			"thread_id":  thread.Id.String(),
			"model":      model,
			"answer_len": len(answer),
		})

		publishActivitySignal(context.Background(), s.publisherService, dto.ActivitySignal{
			UserId:    userId,
			EventType: string(entity.EventTypeChat),
			ThreadId:  &chat.ThreadId,
			ChatId:    &chat.Id,
			Model:     model,
		})
	}()

	return events, nil
}

func (s *chatService) persistStreamedChat(thread *entity.Thread, userId uuid.UUID, question, answer, model string) (*entity.Chat, error) {
	ctx := context.Background()
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	chat := &entity.Chat{
		Id:        uuid.New(),
		ThreadId:  thread.Id,
		UserId:    userId,
		Question:  question,
		Answer:    answer,
		Model:     model,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatRepository().Create(ctx, chat); err != nil {
		return nil, err
	}

	thread.LastChatAt = chat.CreatedAt
	if err := uow.ThreadRepository().Update(ctx, thread); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *chatService) GetThreads(ctx context.Context, userId uuid.UUID, role entity.UserRole, req *dto.ThreadListRequest) (*dto.PageResponse[dto.ThreadWithChatsResponse], error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.Size
	if size < 1 || size > 100 {
		size = 20
	}

	// Members always see their own threads. Admins see everything unless
	// they filter by owner.
	owner := &userId
	if role == entity.UserRoleAdmin {
		owner = nil
		if req.UserId != "" {
			filtered, err := uuid.Parse(req.UserId)
			if err != nil {
				return nil, apperror.Validation("invalid user_id filter", map[string]string{"user_id": "must be a UUID"})
			}
			owner = &filtered
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.ThreadRepository().Count(ctx, specification.OptionallyOwnedBy{UserID: owner})
	if err != nil {
		return nil, err
	}

	threads, err := uow.ThreadRepository().FindAll(ctx,
		specification.OptionallyOwnedBy{UserID: owner},
		specification.OrderBy{Field: "created_at", Desc: req.Sort != "asc"},
		specification.Pagination{Limit: size, Offset: (page - 1) * size},
	)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ThreadWithChatsResponse, 0, len(threads))
	if len(threads) == 0 {
		resp := dto.NewPageResponse(result, page, size, total)
		return &resp, nil
	}

	threadIds := make([]uuid.UUID, 0, len(threads))
	for _, thread := range threads {
		threadIds = append(threadIds, thread.Id)
	}

	chats, err := uow.ChatRepository().FindAll(ctx,
		specification.ByThreadIDs{ThreadIDs: threadIds},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	byThread := make(map[uuid.UUID][]dto.ChatSummary, len(threads))
	for _, chat := range chats {
		byThread[chat.ThreadId] = append(byThread[chat.ThreadId], dto.ChatSummary{
			Id:        chat.Id,
			Question:  chat.Question,
			Answer:    chat.Answer,
			Model:     chat.Model,
			CreatedAt: chat.CreatedAt,
		})
	}

	for _, thread := range threads {
		summaries := byThread[thread.Id]
		if summaries == nil {
			summaries = []dto.ChatSummary{}
		}
		result = append(result, dto.ThreadWithChatsResponse{
			Id:         thread.Id,
			UserId:     thread.UserId,
			CreatedAt:  thread.CreatedAt,
			LastChatAt: thread.LastChatAt,
			Chats:      summaries,
		})
	}

	resp := dto.NewPageResponse(result, page, size, total)
	return &resp, nil
}

func (s *chatService) DeleteThread(ctx context.Context, userId uuid.UUID, role entity.UserRole, threadId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	thread, err := uow.ThreadRepository().FindOne(ctx, specification.ByID{ID: threadId})
	if err != nil {
		return err
	}
	if thread == nil {
		return apperror.ThreadNotFound()
	}
	if role != entity.UserRoleAdmin && thread.UserId != userId {
		return apperror.Forbidden()
	}

	if err := uow.ChatRepository().DeleteByThreadId(ctx, threadId); err != nil {
		return err
	}
	if err := uow.ThreadRepository().Delete(ctx, threadId); err != nil {
		return err
	}

	return uow.Commit()
}
