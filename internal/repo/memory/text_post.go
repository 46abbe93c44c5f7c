package memory

import (
	"sync"
	"time"

	"posts-backend/internal/entity"
	"posts-backend/internal/repo"
)

type TextPost struct {
	mu     sync.RWMutex
	posts  map[int]*entity.TextPost
	order  []int
	nextID int
	now    func() time.Time
}

// DefaultTextPosts - посты, с которыми сервис стартует
var DefaultTextPosts = []entity.TextPost{
	{Title: "New Post", Content: "Cool test post"},
	{Title: "Getting Started with AI", Content: "A beginner-friendly guide to understanding how AI works and where to start learning."},
	{Title: "Why RAG Matters", Content: "Retrieval-Augmented Generation helps LLMs stay factual by grounding responses in external knowledge."},
}

// NewTextPost создаёт хранилище и добавляет в него seed в переданном порядке
func NewTextPost(seed ...entity.TextPost) repo.TextPost {
	t := &TextPost{
		posts:  make(map[int]*entity.TextPost),
		nextID: 1,
		now:    time.Now,
	}
	for i := range seed {
		_, _ = t.AddTextPost(&seed[i])
	}
	return t
}

func (t *TextPost) AddTextPost(post *entity.TextPost) (*entity.TextPost, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stored := *post
	stored.ID = t.nextID
	stored.CreatedAt = t.now().UTC()
	t.nextID++
	t.posts[stored.ID] = &stored
	t.order = append(t.order, stored.ID)

	result := stored
	return &result, nil
}

func (t *TextPost) GetTextPost(id int) (*entity.TextPost, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	post, ok := t.posts[id]
	if !ok {
		return nil, repo.ErrTextPostNotFound
	}
	result := *post
	return &result, nil
}

func (t *TextPost) GetTextPosts(limit int) ([]*entity.TextPost, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := len(t.order)
	if limit > 0 && limit < count {
		count = limit
	}
	posts := make([]*entity.TextPost, 0, count)
	// order хранит порядок вставки, отдаём от новых к старым
	for i := len(t.order) - 1; i >= 0 && len(posts) < count; i-- {
		post := *t.posts[t.order[i]]
		posts = append(posts, &post)
	}
	return posts, nil
}
