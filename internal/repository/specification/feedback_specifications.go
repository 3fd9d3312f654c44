package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatID struct {
	ChatID uuid.UUID
}

func (s ByChatID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_id = ?", s.ChatID)
}

// OptionallyPositive filters by sentiment only when one is requested.
type OptionallyPositive struct {
	IsPositive *bool
}

func (s OptionallyPositive) Apply(db *gorm.DB) *gorm.DB {
	if s.IsPositive == nil {
		return db
	}
	return db.Where("is_positive = ?", *s.IsPositive)
}
