package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"posts-backend/internal/entity"
	"posts-backend/internal/repo"
	"posts-backend/pkg/connector"
)

var postColumns = []string{"id", "caption", "url", "file_type", "file_name", "created_at"}

type PostDB struct {
	db      *sqlx.DB
	builder sq.StatementBuilderType
	clock   *clock
}

func NewPost(db *sqlx.DB) repo.Post {
	return &PostDB{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholderFormat(db.DriverName())),
		clock:   newClock(time.Now),
	}
}

func placeholderFormat(driver string) sq.PlaceholderFormat {
	if driver == connector.DriverSQLite {
		return sq.Question
	}
	return sq.Dollar
}

// session открывает транзакцию на время одной операции и гарантированно освобождает её.
// Rollback после успешного Commit ничего не делает.
func (p *PostDB) session(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (p *PostDB) AddPost(ctx context.Context, post *entity.Post) (*entity.Post, error) {
	if err := post.IsValid(); err != nil {
		return nil, err
	}
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	// created_at выставляет только хранилище, значение вызывающего игнорируется
	post.CreatedAt = p.clock.Next()

	query, args, err := p.builder.
		Insert("posts").
		Columns(postColumns...).
		Values(post.ID.String(), post.Caption, post.URL, string(post.FileType), post.FileName, post.CreatedAt).
		ToSql()
	if err != nil {
		return nil, err
	}

	stored := &entity.Post{}
	err = p.session(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
		// перечитываем строку, чтобы вернуть ровно то, что лежит в базе
		return p.getPost(ctx, tx, post.ID, stored)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (p *PostDB) GetPost(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	post := &entity.Post{}
	err := p.session(ctx, func(tx *sqlx.Tx) error {
		return p.getPost(ctx, tx, id, post)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (p *PostDB) getPost(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, dest *entity.Post) error {
	query, args, err := p.builder.
		Select(postColumns...).
		From("posts").
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return err
	}
	return tx.GetContext(ctx, dest, query, args...)
}

func (p *PostDB) GetPosts(ctx context.Context, limit int) ([]*entity.Post, error) {
	builder := p.builder.
		Select(postColumns...).
		From("posts").
		OrderBy("created_at DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, 0)
	err = p.session(ctx, func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, &posts, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}
