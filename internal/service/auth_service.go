package service

import (
	"context"
	"time"

	"ai-chatbot-be/internal/dto"
	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/pkg/apperror"
	"ai-chatbot-be/internal/repository/specification"
	"ai-chatbot-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	jwtSecret        string
	jwtExpiresIn     time.Duration
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	jwtSecret string,
	jwtExpiresIn time.Duration,
) IAuthService {
	return &authService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		jwtSecret:        jwtSecret,
		jwtExpiresIn:     jwtExpiresIn,
	}
}

func (s *authService) signToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.jwtExpiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Id:        user.Id,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.EmailDuplicated()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         entity.UserRoleMember,
		CreatedAt:    time.Now(),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	publishActivitySignal(ctx, s.publisherService, dto.ActivitySignal{
		UserId:    user.Id,
		EventType: string(entity.EventTypeSignup),
		Email:     user.Email,
	})

	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.InvalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.InvalidCredentials()
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	publishActivitySignal(ctx, s.publisherService, dto.ActivitySignal{
		UserId:    user.Id,
		EventType: string(entity.EventTypeLogin),
	})

	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}
