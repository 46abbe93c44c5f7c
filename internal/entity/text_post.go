package entity

import (
	"errors"
	"strings"
	"time"
)

// TextPost - текстовый пост без вложений, хранится только в памяти процесса
type TextPost struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type AddTextPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r *AddTextPostRequest) IsValid() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is empty")
	}
	if strings.TrimSpace(r.Content) == "" {
		return errors.New("content is empty")
	}
	return nil
}
