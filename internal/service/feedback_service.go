package service

import (
	"context"
	"time"

	"ai-chatbot-be/internal/dto"
	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/pkg/apperror"
	"ai-chatbot-be/internal/repository/specification"
	"ai-chatbot-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IFeedbackService interface {
	CreateFeedback(ctx context.Context, userId uuid.UUID, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error)
	GetFeedbacks(ctx context.Context, userId uuid.UUID, role entity.UserRole, req *dto.FeedbackListRequest) (*dto.PageResponse[dto.FeedbackResponse], error)
	UpdateStatus(ctx context.Context, feedbackId uuid.UUID, req *dto.UpdateFeedbackStatusRequest) (*dto.FeedbackResponse, error)
}

type feedbackService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewFeedbackService(uowFactory unitofwork.RepositoryFactory) IFeedbackService {
	return &feedbackService{uowFactory: uowFactory}
}

func toFeedbackResponse(feedback *entity.Feedback) dto.FeedbackResponse {
	return dto.FeedbackResponse{
		Id:         feedback.Id,
		UserId:     feedback.UserId,
		ChatId:     feedback.ChatId,
		IsPositive: feedback.IsPositive,
		Status:     string(feedback.Status),
		CreatedAt:  feedback.CreatedAt,
	}
}

func (s *feedbackService) CreateFeedback(ctx context.Context, userId uuid.UUID, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Feedback is only valid on the author's own chat.
	chat, err := uow.ChatRepository().FindOne(ctx,
		specification.ByID{ID: req.ChatId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperror.ChatNotFound()
	}

	existing, err := uow.FeedbackRepository().FindOne(ctx,
		specification.ByChatID{ChatID: req.ChatId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.FeedbackDuplicated()
	}

	feedback := &entity.Feedback{
		Id:         uuid.New(),
		UserId:     userId,
		ChatId:     req.ChatId,
		IsPositive: req.IsPositive,
		Status:     entity.FeedbackStatusPending,
		CreatedAt:  time.Now(),
	}
	if err := uow.FeedbackRepository().Create(ctx, feedback); err != nil {
		return nil, err
	}

	resp := toFeedbackResponse(feedback)
	return &resp, nil
}

func (s *feedbackService) GetFeedbacks(ctx context.Context, userId uuid.UUID, role entity.UserRole, req *dto.FeedbackListRequest) (*dto.PageResponse[dto.FeedbackResponse], error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.Size
	if size < 1 || size > 100 {
		size = 20
	}

	owner := &userId
	if role == entity.UserRoleAdmin {
		owner = nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.FeedbackRepository().Count(ctx,
		specification.OptionallyOwnedBy{UserID: owner},
		specification.OptionallyPositive{IsPositive: req.IsPositive},
	)
	if err != nil {
		return nil, err
	}

	feedbacks, err := uow.FeedbackRepository().FindAll(ctx,
		specification.OptionallyOwnedBy{UserID: owner},
		specification.OptionallyPositive{IsPositive: req.IsPositive},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: size, Offset: (page - 1) * size},
	)
	if err != nil {
		return nil, err
	}

	result := make([]dto.FeedbackResponse, 0, len(feedbacks))
	for _, feedback := range feedbacks {
		result = append(result, toFeedbackResponse(feedback))
	}

	resp := dto.NewPageResponse(result, page, size, total)
	return &resp, nil
}

func (s *feedbackService) UpdateStatus(ctx context.Context, feedbackId uuid.UUID, req *dto.UpdateFeedbackStatusRequest) (*dto.FeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	feedback, err := uow.FeedbackRepository().FindOne(ctx, specification.ByID{ID: feedbackId})
	if err != nil {
		return nil, err
	}
	if feedback == nil {
		return nil, apperror.FeedbackNotFound()
	}

	feedback.Status = entity.FeedbackStatus(req.Status)
	if err := uow.FeedbackRepository().Update(ctx, feedback); err != nil {
		return nil, err
	}

	resp := toFeedbackResponse(feedback)
	return &resp, nil
}
