package models

import (
	"time"

	"github.com/google/uuid"
)

// Author is the public projection of a forum user embedded in topics and posts.
type Author struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// Category groups forum topics.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Topic is a forum thread.
type Topic struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Type       string    `json:"type,omitempty"` // bug, question, discussion
	UserID     uint      `json:"user_id"`
	User       Author    `json:"user"`
	CategoryID uuid.UUID `json:"category_id"`
	Category   Category  `json:"category"`
	Views      int       `json:"views"`
	IsPinned   bool      `json:"is_pinned"`
	IsLocked   bool      `json:"is_locked"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Posts      []Post    `json:"posts,omitempty"`
	Tags       []Tag     `json:"tags,omitempty"`
}

// Post is a single message within a topic.
type Post struct {
	ID        uuid.UUID  `json:"id"`
	TopicID   uuid.UUID  `json:"topic_id"`
	UserID    uint       `json:"user_id"`
	User      Author     `json:"user"`
	Content   string     `json:"content"`
	ReplyToID *uuid.UUID `json:"reply_to_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Likes     []Like     `json:"likes,omitempty"`
}

// Like records a user liking a post.
type Like struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Tag labels a topic.
type Tag struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// NewTopic is the payload for creating a topic with its opening post.
type NewTopic struct {
	Title      string   `json:"title"`
	CategoryID string   `json:"category_id"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags,omitempty"`
}

// CreatedTopic is returned when a topic is created.
type CreatedTopic struct {
	Topic Topic `json:"topic"`
	Post  Post  `json:"post"`
}
