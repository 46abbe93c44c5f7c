package entity

import "time"

type PostEventType string

const (
	PostCreated PostEventType = "post_created"
)

type PostEvent struct {
	EventID    string        `msgpack:"event_id"`
	Type       PostEventType `msgpack:"type"`
	PostID     string        `msgpack:"post_id"`
	FileType   FileType      `msgpack:"file_type"`
	URL        string        `msgpack:"url"`
	OccurredAt time.Time     `msgpack:"occurred_at"`
}
