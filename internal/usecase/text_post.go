package usecase

import "posts-backend/internal/entity"

type TextPost interface {
	// AddTextPost добавляет текстовый пост
	AddTextPost(request *entity.AddTextPostRequest) (*entity.TextPost, error)
	// GetTextPost возвращает текстовый пост по ID
	GetTextPost(id string) (*entity.TextPost, error)
	// GetTextPosts возвращает текстовые посты от новых к старым
	GetTextPosts(request *entity.GetPostsRequest) ([]*entity.TextPost, error)
}
