// Package posts handles publishing, editing and commenting on posts.
package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mikepea/yatube/pkg/yatube/apperrors"
	"github.com/mikepea/yatube/pkg/yatube/auth"
	"github.com/mikepea/yatube/pkg/yatube/media"
	"github.com/mikepea/yatube/pkg/yatube/models"
	"github.com/mikepea/yatube/pkg/yatube/urls"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Input is a submitted post form
type Input struct {
	Text    string
	GroupID uint
	Image   []byte
}

// Decision is the outcome of an ownership check. A denied request is sent
// to RedirectTo instead of failing.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Detail is everything the post page shows
type Detail struct {
	Post       models.Post
	PostsCount int64
	Comments   []models.Comment
}

// Service implements post and comment operations
type Service struct {
	db     *gorm.DB
	store  media.Store
	logger *zap.Logger
}

// NewService creates a posts service. store may be nil when uploads are disabled.
func NewService(db *gorm.DB, store media.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, store: store, logger: logger}
}

// WithRelations preloads the author and group of every post
func WithRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Group")
}

// Ordered applies the feed ordering
func Ordered(db *gorm.DB) *gorm.DB {
	return db.Order(models.PostOrder)
}

// CanEdit decides whether viewer may change post. Anyone but the author is
// sent back to the post page.
func CanEdit(viewer auth.Viewer, post *models.Post) Decision {
	if viewer.Authenticated && viewer.ID == post.AuthorID {
		return Decision{Allowed: true}
	}
	return Decision{RedirectTo: urls.PostDetail(post.ID)}
}

// Get loads a post with its author and group
func (s *Service) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Scopes(WithRelations).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &post, nil
}

// CountByAuthor returns how many posts authorID has published
func (s *Service) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// Detail loads a post, its author's post count and its comments, newest first
func (s *Service) Detail(ctx context.Context, id uint) (*Detail, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}

	var comments []models.Comment
	err = s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", post.ID).
		Order(models.CommentOrder).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	return &Detail{Post: *post, PostsCount: count, Comments: comments}, nil
}

// Groups lists the groups a post can be filed under
func (s *Service) Groups(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.WithContext(ctx).Order("title").Find(&groups).Error
	return groups, err
}

// validate checks in and returns the cleaned text
func (s *Service) validate(ctx context.Context, in Input) (string, error) {
	verr := apperrors.NewValidationError()

	text := strings.TrimSpace(in.Text)
	if text == "" {
		verr.Add("text", "This field is required.")
	}

	if in.GroupID != 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Group{}).Where("id = ?", in.GroupID).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			verr.Add("group", "Select a valid choice.")
		}
	}

	if len(in.Image) > 0 {
		if _, err := media.DetectImage(in.Image); err != nil {
			verr.Add("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
		} else if s.store == nil {
			verr.Add("image", "Image uploads are disabled.")
		}
	}

	if verr.HasErrors() {
		return "", verr
	}
	return text, nil
}

// saveImage stores the upload, if any, and returns its relative path
func (s *Service) saveImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	return s.store.Save(media.PostsDir, data)
}

// discardImage removes an image whose post row was never written
func (s *Service) discardImage(rel string) {
	if rel == "" {
		return
	}
	if err := s.store.Remove(rel); err != nil {
		s.logger.Warn("failed to remove orphaned image", zap.String("image", rel), zap.Error(err))
	}
}

func groupRef(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}

// Create publishes a post by authorID. Invalid input returns a
// *apperrors.ValidationError and stores nothing.
func (s *Service) Create(ctx context.Context, authorID uint, in Input) (*models.Post, error) {
	text, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	image, err := s.saveImage(in.Image)
	if err != nil {
		return nil, err
	}

	post := models.Post{
		Text:     text,
		AuthorID: authorID,
		GroupID:  groupRef(in.GroupID),
		Image:    image,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&post).Error; err != nil {
		s.discardImage(image)
		return nil, err
	}

	s.logger.Info("post created", zap.Uint("post_id", post.ID), zap.Uint("author_id", authorID))
	return s.Get(ctx, post.ID)
}

// Update replaces the text, group and (when given) image of post. The
// publication date never changes.
func (s *Service) Update(ctx context.Context, post *models.Post, in Input) (*models.Post, error) {
	text, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	image, err := s.saveImage(in.Image)
	if err != nil {
		return nil, err
	}

	post.Text = text
	post.GroupID = groupRef(in.GroupID)
	post.Group = nil
	if image != "" {
		post.Image = image
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error; err != nil {
		s.discardImage(image)
		return nil, err
	}

	s.logger.Info("post updated", zap.Uint("post_id", post.ID))
	return s.Get(ctx, post.ID)
}

// Delete removes post together with its comments
func (s *Service) Delete(ctx context.Context, post *models.Post) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, post.ID).Error
	})
	if err != nil {
		return err
	}

	s.logger.Info("post deleted", zap.Uint("post_id", post.ID))
	return nil
}

// AddComment stores a comment by authorID under postID
func (s *Service) AddComment(ctx context.Context, authorID, postID uint, text string) (*models.Comment, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: post %d", apperrors.ErrNotFound, postID)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		verr := apperrors.NewValidationError()
		verr.Add("text", "This field is required.")
		return nil, verr
	}

	comment := models.Comment{Text: text, AuthorID: authorID, PostID: postID}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&comment).Error; err != nil {
		return nil, err
	}

	s.logger.Debug("comment added", zap.Uint("comment_id", comment.ID), zap.Uint("post_id", postID))
	return &comment, nil
}
