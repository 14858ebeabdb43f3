package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/tealinux/teasite/pkg/models"
)

// Categories lists forum categories.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	for _, cat := range categories {
		if cat.ID == uuid.Nil {
			return nil, malformed("category id")
		}
	}
	return categories, nil
}

// Category fetches one category.
func (c *Client) Category(ctx context.Context, id string) (models.Category, error) {
	var cat models.Category
	if err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(id), nil, &cat); err != nil {
		return models.Category{}, fmt.Errorf("failed to get category: %w", err)
	}
	if cat.ID == uuid.Nil {
		return models.Category{}, malformed("category id")
	}
	return cat, nil
}

// Topics lists topics, optionally restricted to one category.
func (c *Client) Topics(ctx context.Context, categoryID string) ([]models.Topic, error) {
	endpoint := "/topics"
	if categoryID != "" {
		endpoint += "?category_id=" + url.QueryEscape(categoryID)
	}
	var topics []models.Topic
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &topics); err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	if err := checkTopics(topics); err != nil {
		return nil, err
	}
	return topics, nil
}

// Topic fetches a topic with its posts.
func (c *Client) Topic(ctx context.Context, id string) (models.Topic, error) {
	var topic models.Topic
	if err := c.do(ctx, http.MethodGet, "/topics/"+url.PathEscape(id), nil, &topic); err != nil {
		return models.Topic{}, fmt.Errorf("failed to get topic: %w", err)
	}
	if topic.ID == uuid.Nil {
		return models.Topic{}, malformed("topic id")
	}
	return topic, nil
}

// CreateTopic opens a topic together with its first post.
func (c *Client) CreateTopic(ctx context.Context, in models.NewTopic) (models.CreatedTopic, error) {
	var created models.CreatedTopic
	if err := c.do(ctx, http.MethodPost, "/api/topics", in, &created); err != nil {
		return models.CreatedTopic{}, fmt.Errorf("failed to create topic: %w", err)
	}
	if created.Topic.ID == uuid.Nil {
		return models.CreatedTopic{}, malformed("topic id")
	}
	return created, nil
}

// UpdateTopic renames a topic.
func (c *Client) UpdateTopic(ctx context.Context, id, title string) (models.Topic, error) {
	var topic models.Topic
	in := map[string]string{"title": title}
	if err := c.do(ctx, http.MethodPut, "/api/topics/"+url.PathEscape(id), in, &topic); err != nil {
		return models.Topic{}, fmt.Errorf("failed to update topic: %w", err)
	}
	if topic.ID == uuid.Nil {
		return models.Topic{}, malformed("topic id")
	}
	return topic, nil
}

// DeleteTopic removes a topic and returns the backend's message.
func (c *Client) DeleteTopic(ctx context.Context, id string) (string, error) {
	var msg messageBody
	if err := c.do(ctx, http.MethodDelete, "/api/topics/"+url.PathEscape(id), nil, &msg); err != nil {
		return "", fmt.Errorf("failed to delete topic: %w", err)
	}
	return msg.Message, nil
}

// TopicPosts lists the posts of a topic.
func (c *Client) TopicPosts(ctx context.Context, topicID string) ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(ctx, http.MethodGet, "/topics/"+url.PathEscape(topicID)+"/posts", nil, &posts); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	for _, p := range posts {
		if p.ID == uuid.Nil {
			return nil, malformed("post id")
		}
	}
	return posts, nil
}

type newPost struct {
	Content   string `json:"content"`
	ReplyToID string `json:"reply_to_id,omitempty"`
}

// CreatePost replies to a topic. replyToID may be empty.
func (c *Client) CreatePost(ctx context.Context, topicID, content, replyToID string) (models.Post, error) {
	var post models.Post
	in := newPost{Content: content, ReplyToID: replyToID}
	if err := c.do(ctx, http.MethodPost, "/api/topics/"+url.PathEscape(topicID)+"/posts", in, &post); err != nil {
		return models.Post{}, fmt.Errorf("failed to create post: %w", err)
	}
	if post.ID == uuid.Nil {
		return models.Post{}, malformed("post id")
	}
	return post, nil
}

// UpdatePost edits the content of a post.
func (c *Client) UpdatePost(ctx context.Context, id, content string) (models.Post, error) {
	var post models.Post
	in := map[string]string{"content": content}
	if err := c.do(ctx, http.MethodPut, "/api/posts/"+url.PathEscape(id), in, &post); err != nil {
		return models.Post{}, fmt.Errorf("failed to update post: %w", err)
	}
	if post.ID == uuid.Nil {
		return models.Post{}, malformed("post id")
	}
	return post, nil
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, id string) (string, error) {
	var msg messageBody
	if err := c.do(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(id), nil, &msg); err != nil {
		return "", fmt.Errorf("failed to delete post: %w", err)
	}
	return msg.Message, nil
}

// LikePost likes a post.
func (c *Client) LikePost(ctx context.Context, id string) (string, error) {
	var msg messageBody
	if err := c.do(ctx, http.MethodPost, "/api/posts/"+url.PathEscape(id)+"/like", nil, &msg); err != nil {
		return "", fmt.Errorf("failed to like post: %w", err)
	}
	return msg.Message, nil
}

// UnlikePost withdraws a like.
func (c *Client) UnlikePost(ctx context.Context, id string) (string, error) {
	var msg messageBody
	if err := c.do(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(id)+"/like", nil, &msg); err != nil {
		return "", fmt.Errorf("failed to unlike post: %w", err)
	}
	return msg.Message, nil
}

// SearchTopics runs a forum search.
func (c *Client) SearchTopics(ctx context.Context, query string) ([]models.Topic, error) {
	var resp struct {
		Topics *[]models.Topic `json:"topics"`
	}
	if err := c.do(ctx, http.MethodGet, "/search?q="+url.QueryEscape(query), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to search topics: %w", err)
	}
	if resp.Topics == nil {
		return nil, malformed("topics")
	}
	if err := checkTopics(*resp.Topics); err != nil {
		return nil, err
	}
	return *resp.Topics, nil
}

func checkTopics(topics []models.Topic) error {
	for _, t := range topics {
		if t.ID == uuid.Nil {
			return malformed("topic id")
		}
	}
	return nil
}
