package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleMember UserRole = "MEMBER"
	UserRoleAdmin  UserRole = "ADMIN"
)

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Role         UserRole
	CreatedAt    time.Time
}
