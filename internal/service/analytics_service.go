package service

import (
	"context"
	"strings"
	"time"

	"ai-chatbot-be/internal/dto"
	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/repository/memory"
	"ai-chatbot-be/internal/repository/specification"
	"ai-chatbot-be/internal/repository/unitofwork"
)

type IAnalyticsService interface {
	GetStats(ctx context.Context) (*dto.ActivityStatsResponse, error)
	GenerateChatReport(ctx context.Context, from, to time.Time) (string, error)
}

type analyticsService struct {
	uowFactory unitofwork.RepositoryFactory
	streamRepo *memory.StreamRepository
}

func NewAnalyticsService(uowFactory unitofwork.RepositoryFactory, streamRepo *memory.StreamRepository) IAnalyticsService {
	return &analyticsService{
		uowFactory: uowFactory,
		streamRepo: streamRepo,
	}
}

// GetStats counts activity over the trailing 24 hours.
func (s *analyticsService) GetStats(ctx context.Context) (*dto.ActivityStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	window := specification.CreatedBetween{From: now.Add(-24 * time.Hour), To: now}

	signups, err := uow.ActivityLogRepository().Count(ctx, window,
		specification.ByEventType{EventType: string(entity.EventTypeSignup)})
	if err != nil {
		return nil, err
	}
	logins, err := uow.ActivityLogRepository().Count(ctx, window,
		specification.ByEventType{EventType: string(entity.EventTypeLogin)})
	if err != nil {
		return nil, err
	}
	chats, err := uow.ActivityLogRepository().Count(ctx, window,
		specification.ByEventType{EventType: string(entity.EventTypeChat)})
	if err != nil {
		return nil, err
	}

	return &dto.ActivityStatsResponse{
		Signups:       signups,
		Logins:        logins,
		Chats:         chats,
		ActiveStreams: s.streamRepo.Count(),
	}, nil
}

// GenerateChatReport renders all chats in [from, to) as CSV, joined with
// the author's email and name.
func (s *analyticsService) GenerateChatReport(ctx context.Context, from, to time.Time) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chats, err := uow.ChatRepository().FindAllWithAuthor(ctx,
		specification.CreatedBetween{From: from, To: to},
		specification.OrderBy{Field: "chats.created_at", Desc: false},
	)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("chat_id,thread_id,user_email,user_name,model,question,answer,created_at\n")
	for _, chat := range chats {
		sb.WriteString(strings.Join([]string{
			chat.Id.String(),
			chat.ThreadId.String(),
			escapeCsv(chat.UserEmail),
			escapeCsv(chat.UserName),
			escapeCsv(chat.Model),
			escapeCsv(chat.Question),
			escapeCsv(chat.Answer),
			chat.CreatedAt.Format(time.RFC3339),
		}, ","))
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func escapeCsv(value string) string {
	if !strings.ContainsAny(value, ",\"\n") {
		return value
	}
	return "\"" + strings.ReplaceAll(value, "\"", "\"\"") + "\""
}
