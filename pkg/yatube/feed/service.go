// Package feed composes the paginated post lists: the global index, group
// feeds, author profiles and the following feed.
package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikepea/yatube/pkg/yatube/apperrors"
	"github.com/mikepea/yatube/pkg/yatube/auth"
	"github.com/mikepea/yatube/pkg/yatube/follow"
	"github.com/mikepea/yatube/pkg/yatube/models"
	"github.com/mikepea/yatube/pkg/yatube/pagination"
	"github.com/mikepea/yatube/pkg/yatube/posts"
	"gorm.io/gorm"
)

// PostPage is one page of a feed
type PostPage = pagination.Page[models.Post]

// Profile is an author's page as seen by a viewer
type Profile struct {
	Author     models.User
	PostsCount int64
	Following  bool
	Page       *PostPage
}

// Service builds feeds
type Service struct {
	db      *gorm.DB
	follows *follow.Service
}

// NewService creates a feed service
func NewService(db *gorm.DB, follows *follow.Service) *Service {
	return &Service{db: db, follows: follows}
}

func (s *Service) paginate(query *gorm.DB, rawPage string) (*PostPage, error) {
	return pagination.Paginate[models.Post](query, rawPage, pagination.PageSize, posts.WithRelations, posts.Ordered)
}

func (s *Service) postsQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Post{})
}

// Global returns a page of every post, newest first
func (s *Service) Global(ctx context.Context, rawPage string) (*PostPage, error) {
	return s.paginate(s.postsQuery(ctx), rawPage)
}

// Group returns the group with slug and a page of its posts
func (s *Service) Group(ctx context.Context, slug, rawPage string) (*models.Group, *PostPage, error) {
	var group models.Group
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: group %q", apperrors.ErrNotFound, slug)
		}
		return nil, nil, err
	}

	page, err := s.paginate(s.postsQuery(ctx).Where("posts.group_id = ?", group.ID), rawPage)
	if err != nil {
		return nil, nil, err
	}
	return &group, page, nil
}

// Profile returns the author's posts, their total and whether viewer
// follows the author
func (s *Service) Profile(ctx context.Context, username string, viewer auth.Viewer, rawPage string) (*Profile, error) {
	author, err := s.follows.Author(ctx, username)
	if err != nil {
		return nil, err
	}

	page, err := s.paginate(s.postsQuery(ctx).Where("posts.author_id = ?", author.ID), rawPage)
	if err != nil {
		return nil, err
	}

	following, err := s.follows.IsFollowing(ctx, viewer, author.ID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		Author:     *author,
		PostsCount: page.Count,
		Following:  following,
		Page:       page,
	}, nil
}

// Following returns posts by every author viewerID follows. Following
// nobody yields an empty page.
func (s *Service) Following(ctx context.Context, viewerID uint, rawPage string) (*PostPage, error) {
	query := s.postsQuery(ctx).Where("posts.author_id IN (?)", s.follows.FollowedAuthorIDs(viewerID))
	return s.paginate(query, rawPage)
}
