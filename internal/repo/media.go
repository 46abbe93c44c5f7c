package repo

import (
	"context"

	"posts-backend/internal/entity"
)

type MediaHost interface {
	// UploadFile загружает файл во внешнее хранилище и возвращает публичную ссылку и итоговое имя
	UploadFile(ctx context.Context, file *entity.MediaFile) (*entity.MediaObject, error)
	// DeleteFile удаляет ранее загруженный файл
	DeleteFile(ctx context.Context, fileName string) error
}
