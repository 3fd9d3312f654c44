package implementation

import (
	"context"
	"errors"

	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/mapper"
	"ai-chatbot-be/internal/model"
	"ai-chatbot-be/internal/repository/contract"
	"ai-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatRepository(db *gorm.DB) contract.ChatRepository {
	return &ChatRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatRepositoryImpl) Create(ctx context.Context, chat *entity.Chat) error {
	m := r.mapper.ChatToModel(chat)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chat = *r.mapper.ChatToEntity(m)
	return nil
}

func (r *ChatRepositoryImpl) DeleteByThreadId(ctx context.Context, threadId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("thread_id = ?", threadId).Delete(&model.Chat{}).Error
}

func (r *ChatRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	var m model.Chat
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ChatToEntity(&m), nil
}

func (r *ChatRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error) {
	var models []*model.Chat
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ChatsToEntities(models), nil
}

// chatWithAuthorRow is the scan target for the author join.
type chatWithAuthorRow struct {
	model.Chat
	UserEmail string
	UserName  string
}

func (r *ChatRepositoryImpl) FindAllWithAuthor(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatWithAuthor, error) {
	var rows []chatWithAuthorRow
	query := r.db.WithContext(ctx).Model(&model.Chat{}).
		Select("chats.*, users.email AS user_email, users.name AS user_name").
		Joins("JOIN users ON users.id = chats.user_id")
	query = r.applySpecifications(query, specs...)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]*entity.ChatWithAuthor, len(rows))
	for i, row := range rows {
		result[i] = &entity.ChatWithAuthor{
			Chat:      *r.mapper.ChatToEntity(&row.Chat),
			UserEmail: row.UserEmail,
			UserName:  row.UserName,
		}
	}
	return result, nil
}

func (r *ChatRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Chat{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
