package entity

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypeVideo FileType = "video"
)

// FileTypeFromContentType определяет тип файла только по заявленному Content-Type, без анализа содержимого
func FileTypeFromContentType(contentType string) FileType {
	if strings.HasPrefix(contentType, "video/") {
		return FileTypeVideo
	}
	return FileTypeImage
}

type Post struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Caption   string    `json:"caption" db:"caption"`
	URL       string    `json:"url" db:"url"`
	FileType  FileType  `json:"file_type" db:"file_type"`
	FileName  string    `json:"file_name" db:"file_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsValid проверяет поля, которые обязаны быть заполнены перед сохранением
func (p *Post) IsValid() error {
	if p.URL == "" {
		return errors.New("url is empty")
	}
	if p.FileType != FileTypeImage && p.FileType != FileTypeVideo {
		return errors.New("file_type must be image or video")
	}
	if p.FileName == "" {
		return errors.New("file_name is empty")
	}
	return nil
}

type UploadPostRequest struct {
	File        io.ReadCloser
	FileName    string
	ContentType string
	Caption     string
}

func (r *UploadPostRequest) IsValid() error {
	if r.File == nil {
		return errors.New("file is required")
	}
	if r.FileName == "" {
		return errors.New("file name is empty")
	}
	return nil
}

type GetPostsRequest struct {
	// Limit <= 0 означает "без ограничения"
	Limit int `query:"limit"`
}

func (r *GetPostsRequest) IsValid() error {
	if r.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	return nil
}

type PostList struct {
	Posts []*Post `json:"posts"`
}
