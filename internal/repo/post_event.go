package repo

import (
	"context"

	"posts-backend/internal/entity"
)

type PostEventRepository interface {
	PublishPostEvent(ctx context.Context, event *entity.PostEvent) error
}
