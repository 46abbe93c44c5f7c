package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"posts-backend/internal/entity"
)

type Post interface {
	// AddPost сохраняет пост и возвращает его перечитанным из базы (с id и created_at)
	AddPost(ctx context.Context, post *entity.Post) (*entity.Post, error)
	// GetPost возвращает пост по ID
	GetPost(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	// GetPosts возвращает посты от новых к старым, limit <= 0 - все посты
	GetPosts(ctx context.Context, limit int) ([]*entity.Post, error)
}

var (
	ErrPostNotFound = errors.New("post not found")
)
