// Package groups manages the communities posts are filed under.
package groups

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mikepea/yatube/pkg/yatube/apperrors"
	"github.com/mikepea/yatube/pkg/yatube/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var slugRegex = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// ErrSlugTaken is returned when another group already uses the slug
var ErrSlugTaken = errors.New("slug already taken")

// Input holds the editable fields of a group
type Input struct {
	Title       string
	Slug        string
	Description string
}

// Service creates, updates and deletes groups
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a groups service
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, logger: logger}
}

func validate(in Input) error {
	verr := apperrors.NewValidationError()

	if strings.TrimSpace(in.Title) == "" {
		verr.Add("title", "This field is required.")
	} else if len([]rune(in.Title)) > 200 {
		verr.Add("title", "Ensure this value has at most 200 characters.")
	}

	switch {
	case in.Slug == "":
		verr.Add("slug", "This field is required.")
	case len(in.Slug) > 200:
		verr.Add("slug", "Ensure this value has at most 200 characters.")
	case !slugRegex.MatchString(in.Slug):
		verr.Add("slug", "Slug must contain only letters, numbers, hyphens, and underscores.")
	}

	return verr.OrNil()
}

// List returns every group ordered by title
func (s *Service) List(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.WithContext(ctx).Order("title").Find(&groups).Error
	return groups, err
}

// Get returns the group with slug
func (s *Service) Get(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: group %q", apperrors.ErrNotFound, slug)
		}
		return nil, err
	}
	return &group, nil
}

// PostCount returns how many posts are filed under the group
func (s *Service) PostCount(ctx context.Context, groupID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Post{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}

// Create stores a new group
func (s *Service) Create(ctx context.Context, in Input) (*models.Group, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	group := models.Group{
		Title:       strings.TrimSpace(in.Title),
		Slug:        in.Slug,
		Description: in.Description,
	}
	if err := s.db.WithContext(ctx).Create(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrSlugTaken, in.Slug)
		}
		return nil, err
	}

	s.logger.Info("group created", zap.String("slug", group.Slug))
	return &group, nil
}

// Update replaces the fields of the group with slug
func (s *Service) Update(ctx context.Context, slug string, in Input) (*models.Group, error) {
	group, err := s.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	group.Title = strings.TrimSpace(in.Title)
	group.Slug = in.Slug
	group.Description = in.Description
	if err := s.db.WithContext(ctx).Save(group).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrSlugTaken, in.Slug)
		}
		return nil, err
	}

	s.logger.Info("group updated", zap.String("slug", group.Slug))
	return group, nil
}

// Delete removes the group with slug. Its posts survive without a group.
func (s *Service) Delete(ctx context.Context, slug string) error {
	group, err := s.Get(ctx, slug)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("group_id = ?", group.ID).Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(group).Error
	})
	if err != nil {
		return err
	}

	s.logger.Info("group deleted", zap.String("slug", slug))
	return nil
}
