// Package admin implements user management and site statistics for
// administrators.
package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikepea/yatube/pkg/yatube/apperrors"
	"github.com/mikepea/yatube/pkg/yatube/auth"
	"github.com/mikepea/yatube/pkg/yatube/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrUserExists is returned when the username or email is already registered
var ErrUserExists = errors.New("user already exists")

// Stats counts the rows of every table
type Stats struct {
	TotalUsers    int64 `json:"total_users"`
	AdminUsers    int64 `json:"admin_users"`
	TotalPosts    int64 `json:"total_posts"`
	TotalGroups   int64 `json:"total_groups"`
	TotalComments int64 `json:"total_comments"`
	TotalFollows  int64 `json:"total_follows"`
	PostsInGroups int64 `json:"posts_in_groups"`
}

// NewUser describes an account created by an administrator
type NewUser struct {
	Username string
	Email    string
	Password string
	Name     string
	Role     models.SystemRole
}

// Service manages users on behalf of administrators
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates an admin service
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, logger: logger}
}

// ListUsers returns users newest first, optionally filtered by a search
// over username and email and by role
func (s *Service) ListUsers(ctx context.Context, search, role string) ([]models.User, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if search != "" {
		query = query.Where("username LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if role != "" {
		query = query.Where("system_role = ?", role)
	}

	var users []models.User
	err := query.Find(&users).Error
	return users, err
}

// GetUser returns the user with id
func (s *Service) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}

// CountPosts returns how many posts userID has published
func (s *Service) CountPosts(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", userID).Count(&count).Error
	return count, err
}

// CreateUser registers an account with a hashed password
func (s *Service) CreateUser(ctx context.Context, in NewUser) (*models.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = models.SystemRoleUser
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		SystemRole:   role,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrUserExists, in.Username)
		}
		return nil, err
	}

	s.logger.Info("user created", zap.String("username", user.Username), zap.String("role", string(role)))
	return &user, nil
}

// CountAdmins returns the number of administrators
func (s *Service) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("system_role = ?", models.SystemRoleAdmin).Count(&count).Error
	return count, err
}

// UpdateUser applies the given name and role changes
func (s *Service) UpdateUser(ctx context.Context, id uint, name *string, role *models.SystemRole) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil {
		updates["name"] = *name
	}
	if role != nil {
		if *role != models.SystemRoleAdmin && *role != models.SystemRoleUser {
			verr := apperrors.NewValidationError()
			verr.Add("system_role", "Invalid system role")
			return nil, verr
		}
		updates["system_role"] = *role
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes a user with their posts, the comments on those posts,
// their own comments and every follow edge they take part in
func (s *Service) DeleteUser(ctx context.Context, id uint) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		authored := tx.Model(&models.Post{}).Select("id").Where("author_id = ?", user.ID)
		if err := tx.Where("post_id IN (?) OR author_id = ?", authored, user.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", user.ID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR author_id = ?", user.ID, user.ID).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
	if err != nil {
		return err
	}

	s.logger.Info("user deleted", zap.Uint("user_id", id), zap.String("username", user.Username))
	return nil
}

// Stats counts users, posts, groups, comments and follows
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	db := s.db.WithContext(ctx)
	var stats Stats

	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{db.Model(&models.User{}), &stats.TotalUsers},
		{db.Model(&models.User{}).Where("system_role = ?", models.SystemRoleAdmin), &stats.AdminUsers},
		{db.Model(&models.Post{}), &stats.TotalPosts},
		{db.Model(&models.Post{}).Where("group_id IS NOT NULL"), &stats.PostsInGroups},
		{db.Model(&models.Group{}), &stats.TotalGroups},
		{db.Model(&models.Comment{}), &stats.TotalComments},
		{db.Model(&models.Follow{}), &stats.TotalFollows},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return &stats, nil
}
