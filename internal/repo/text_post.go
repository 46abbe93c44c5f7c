package repo

import (
	"errors"

	"posts-backend/internal/entity"
)

type TextPost interface {
	// AddTextPost добавляет текстовый пост и присваивает ему ID
	AddTextPost(post *entity.TextPost) (*entity.TextPost, error)
	// GetTextPost возвращает текстовый пост по ID
	GetTextPost(id int) (*entity.TextPost, error)
	// GetTextPosts возвращает посты от новых к старым, limit <= 0 - все посты
	GetTextPosts(limit int) ([]*entity.TextPost, error)
}

var (
	ErrTextPostNotFound = errors.New("text post not found")
)
