package domain

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        int
	UUID      uuid.UUID
	Name      string
	PostCount int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PostStatus string

const (
	PostDraft     PostStatus = "DRAFT"
	PostPublished PostStatus = "PUBLISHED"
)
