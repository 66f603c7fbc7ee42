// Package follow manages the directed follow graph between users.
package follow

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikepea/yatube/pkg/yatube/apperrors"
	"github.com/mikepea/yatube/pkg/yatube/auth"
	"github.com/mikepea/yatube/pkg/yatube/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service creates, removes and queries follow edges
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a follow service
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, logger: logger}
}

// Author resolves username to a user
func (s *Service) Author(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", apperrors.ErrNotFound, username)
		}
		return nil, err
	}
	return &user, nil
}

// Follow makes followerID follow authorID. Following yourself and following
// twice are no-ops; created reports whether a new edge was stored.
func (s *Service) Follow(ctx context.Context, followerID, authorID uint) (bool, error) {
	if followerID == authorID {
		return false, nil
	}

	edge := models.Follow{UserID: followerID, AuthorID: authorID}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "author_id"}},
			DoNothing: true,
		}).
		Create(&edge)
	if result.Error != nil {
		return false, result.Error
	}

	created := result.RowsAffected > 0
	if created {
		s.logger.Debug("follow created",
			zap.Uint("user_id", followerID),
			zap.Uint("author_id", authorID))
	}
	return created, nil
}

// Unfollow removes the edge if present; removed reports whether one existed
func (s *Service) Unfollow(ctx context.Context, followerID, authorID uint) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", followerID, authorID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, result.Error
	}

	removed := result.RowsAffected > 0
	if removed {
		s.logger.Debug("follow removed",
			zap.Uint("user_id", followerID),
			zap.Uint("author_id", authorID))
	}
	return removed, nil
}

// IsFollowing reports whether viewer follows authorID. Anonymous viewers
// follow nobody.
func (s *Service) IsFollowing(ctx context.Context, viewer auth.Viewer, authorID uint) (bool, error) {
	if !viewer.Authenticated {
		return false, nil
	}

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", viewer.ID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FollowedAuthorIDs returns a subquery selecting every author viewerID follows
func (s *Service) FollowedAuthorIDs(viewerID uint) *gorm.DB {
	return s.db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", viewerID)
}
