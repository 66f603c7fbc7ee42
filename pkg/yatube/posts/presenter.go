package posts

import (
	"time"

	"github.com/mikepea/yatube/pkg/yatube/media"
	"github.com/mikepea/yatube/pkg/yatube/models"
	"github.com/mikepea/yatube/pkg/yatube/urls"
)

// AuthorResponse is the public view of a user
type AuthorResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	URL      string `json:"url"`
}

// GroupResponse is the public view of a group
type GroupResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// PostResponse represents a post in API responses
type PostResponse struct {
	ID      uint           `json:"id"`
	Text    string         `json:"text"`
	PubDate string         `json:"pub_date"`
	Author  AuthorResponse `json:"author"`
	Group   *GroupResponse `json:"group,omitempty"`
	Image   string         `json:"image,omitempty"`
	URL     string         `json:"url"`
}

// CommentResponse represents a comment in API responses
type CommentResponse struct {
	ID      uint           `json:"id"`
	Text    string         `json:"text"`
	Created string         `json:"created"`
	Author  AuthorResponse `json:"author"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// AuthorToResponse converts a user for public display
func AuthorToResponse(user models.User) AuthorResponse {
	return AuthorResponse{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		URL:      urls.Profile(user.Username),
	}
}

// GroupToResponse converts a group for public display
func GroupToResponse(group models.Group) GroupResponse {
	return GroupResponse{
		ID:          group.ID,
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
		URL:         urls.Group(group.Slug),
	}
}

// ToResponse converts a post loaded with WithRelations
func ToResponse(post models.Post) PostResponse {
	resp := PostResponse{
		ID:      post.ID,
		Text:    post.Text,
		PubDate: formatTime(post.PubDate),
		Author:  AuthorToResponse(post.Author),
		Image:   media.URL(post.Image),
		URL:     urls.PostDetail(post.ID),
	}
	if post.Group != nil {
		group := GroupToResponse(*post.Group)
		resp.Group = &group
	}
	return resp
}

// ToResponses converts a slice of posts, never returning nil
func ToResponses(posts []models.Post) []PostResponse {
	out := make([]PostResponse, len(posts))
	for i, post := range posts {
		out[i] = ToResponse(post)
	}
	return out
}

func commentToResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:      comment.ID,
		Text:    comment.Text,
		Created: formatTime(comment.Created),
		Author:  AuthorToResponse(comment.Author),
	}
}
