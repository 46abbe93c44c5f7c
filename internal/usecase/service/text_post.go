package service

import (
	"errors"
	"fmt"
	"strconv"

	"posts-backend/internal/entity"
	"posts-backend/internal/repo"
	"posts-backend/internal/usecase"
)

type TextPost struct {
	textPostRepo repo.TextPost
}

func NewTextPost(textPostRepo repo.TextPost) usecase.TextPost {
	return &TextPost{textPostRepo: textPostRepo}
}

func (t *TextPost) AddTextPost(request *entity.AddTextPostRequest) (*entity.TextPost, error) {
	if err := request.IsValid(); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrValidation, err)
	}
	post, err := t.textPostRepo.AddTextPost(&entity.TextPost{
		Title:   request.Title,
		Content: request.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrPersistence, err)
	}
	return post, nil
}

func (t *TextPost) GetTextPost(id string) (*entity.TextPost, error) {
	postID, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrNotFound, repo.ErrTextPostNotFound)
	}
	post, err := t.textPostRepo.GetTextPost(postID)
	if err != nil {
		if errors.Is(err, repo.ErrTextPostNotFound) {
			return nil, fmt.Errorf("%w: %w", entity.ErrNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", entity.ErrPersistence, err)
	}
	return post, nil
}

func (t *TextPost) GetTextPosts(request *entity.GetPostsRequest) ([]*entity.TextPost, error) {
	if err := request.IsValid(); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrValidation, err)
	}
	posts, err := t.textPostRepo.GetTextPosts(request.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrPersistence, err)
	}
	return posts, nil
}
