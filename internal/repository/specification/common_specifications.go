package specification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByID filters by ID
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// OwnedBy filters by owning user
type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// OptionallyOwnedBy scopes to an owner only when one is given. A nil owner
// means unrestricted; role-based branching resolves to this value once,
// before the query runs.
type OptionallyOwnedBy struct {
	UserID *uuid.UUID
}

func (s OptionallyOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	if s.UserID == nil {
		return db
	}
	return db.Where("user_id = ?", *s.UserID)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}

// CreatedBetween filters rows created inside [From, To)
type CreatedBetween struct {
	From time.Time
	To   time.Time
}

func (s CreatedBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ? AND created_at < ?", s.From, s.To)
}
