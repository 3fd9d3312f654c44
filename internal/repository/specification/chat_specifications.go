package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByThreadID struct {
	ThreadID uuid.UUID
}

func (s ByThreadID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("thread_id = ?", s.ThreadID)
}

type ByThreadIDs struct {
	ThreadIDs []uuid.UUID
}

func (s ByThreadIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("thread_id IN ?", s.ThreadIDs)
}
