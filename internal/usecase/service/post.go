package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"posts-backend/internal/entity"
	"posts-backend/internal/repo"
	"posts-backend/internal/usecase"
)

const (
	DefaultOriginTag    = "backend-upload"
	eventPublishTimeout = 5 * time.Second
	discardMediaTimeout = 10 * time.Second
)

type Post struct {
	postRepo   repo.Post
	mediaHost  repo.MediaHost
	eventRepo  repo.PostEventRepository
	stagingDir string
	originTag  string
}

// NewPost собирает пайплайн загрузки постов. eventRepo может быть nil - тогда события не публикуются.
// Пустой stagingDir означает системную временную директорию.
func NewPost(postRepo repo.Post, mediaHost repo.MediaHost, eventRepo repo.PostEventRepository, stagingDir string, originTag string) usecase.Post {
	if originTag == "" {
		originTag = DefaultOriginTag
	}
	return &Post{
		postRepo:   postRepo,
		mediaHost:  mediaHost,
		eventRepo:  eventRepo,
		stagingDir: stagingDir,
		originTag:  originTag,
	}
}

func (p *Post) UploadPost(ctx context.Context, request *entity.UploadPostRequest) (*entity.Post, error) {
	// входящий поток закрывается при любом исходе
	if request.File != nil {
		defer func() { _ = request.File.Close() }()
	}
	if err := request.IsValid(); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrValidation, err)
	}

	staged, err := stageUpload(p.stagingDir, request.File, request.FileName)
	if err != nil {
		return nil, fmt.Errorf("%w: staging upload: %w", entity.ErrPersistence, err)
	}
	defer func() {
		if err := staged.Close(); err != nil {
			log.Errorf("Не удалось удалить временный файл %s: %v", staged.Path(), err)
		}
	}()

	object, err := p.mediaHost.UploadFile(ctx, &entity.MediaFile{
		Reader:         staged.file,
		Size:           staged.size,
		FileName:       request.FileName,
		ContentType:    request.ContentType,
		Origin:         p.originTag,
		UniqueFileName: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrUpstream, err)
	}
	if object == nil || object.URL == "" || object.FileName == "" {
		return nil, fmt.Errorf("%w: media host returned incomplete result", entity.ErrUpstream)
	}

	post := &entity.Post{
		Caption:  request.Caption,
		URL:      object.URL,
		FileType: entity.FileTypeFromContentType(request.ContentType),
		FileName: object.FileName,
	}
	stored, err := p.postRepo.AddPost(ctx, post)
	if err != nil {
		p.discardMedia(ctx, object.FileName)
		return nil, fmt.Errorf("%w: %w", entity.ErrPersistence, err)
	}

	log.Infof("Создан пост %s (%s, %s)", stored.ID, stored.FileType, stored.FileName)
	p.publishCreated(ctx, stored)
	return stored, nil
}

// discardMedia удаляет уже загруженный файл, если пост сохранить не удалось.
// Запрос клиента к этому моменту может быть отменён, поэтому контекст отвязывается от него.
func (p *Post) discardMedia(ctx context.Context, fileName string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), discardMediaTimeout)
	defer cancel()
	if err := p.mediaHost.DeleteFile(ctx, fileName); err != nil {
		log.Errorf("Не удалось удалить файл %s из медиа-хранилища: %v", fileName, err)
	}
}

func (p *Post) publishCreated(ctx context.Context, post *entity.Post) {
	if p.eventRepo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, eventPublishTimeout)
	defer cancel()
	err := p.eventRepo.PublishPostEvent(ctx, &entity.PostEvent{
		EventID:    uuid.New().String(),
		Type:       entity.PostCreated,
		PostID:     post.ID.String(),
		FileType:   post.FileType,
		URL:        post.URL,
		OccurredAt: post.CreatedAt,
	})
	if err != nil {
		log.Errorf("Не удалось опубликовать событие о посте %s: %v", post.ID, err)
	}
}

func (p *Post) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	postID, err := uuid.Parse(id)
	if err != nil {
		// такой ID не мог быть выдан, значит и поста нет
		return nil, fmt.Errorf("%w: %w", entity.ErrNotFound, repo.ErrPostNotFound)
	}
	post, err := p.postRepo.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, repo.ErrPostNotFound) {
			return nil, fmt.Errorf("%w: %w", entity.ErrNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", entity.ErrPersistence, err)
	}
	return post, nil
}

func (p *Post) GetPosts(ctx context.Context, request *entity.GetPostsRequest) ([]*entity.Post, error) {
	if err := request.IsValid(); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrValidation, err)
	}
	posts, err := p.postRepo.GetPosts(ctx, request.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrPersistence, err)
	}
	return posts, nil
}
