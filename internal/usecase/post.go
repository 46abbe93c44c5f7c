package usecase

import (
	"context"

	"posts-backend/internal/entity"
)

type Post interface {
	// UploadPost загружает файл в медиа-хранилище и сохраняет пост с его метаданными
	UploadPost(ctx context.Context, request *entity.UploadPostRequest) (*entity.Post, error)
	// GetPost возвращает пост по ID
	GetPost(ctx context.Context, id string) (*entity.Post, error)
	// GetPosts возвращает ленту постов от новых к старым
	GetPosts(ctx context.Context, request *entity.GetPostsRequest) ([]*entity.Post, error)
}
