package follow

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/yatube/pkg/yatube/apperrors"
	"github.com/mikepea/yatube/pkg/yatube/auth"
	"github.com/mikepea/yatube/pkg/yatube/urls"
	"go.uber.org/zap"
)

// Handler serves the follow and unfollow endpoints
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new follow handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// FollowAuthor subscribes the viewer to an author
// @Summary Follow an author
// @Description Subscribe to an author's posts. Following yourself or following twice changes nothing.
// @Tags follow
// @Param username path string true "Author username"
// @Success 302 "Redirect to the author's profile"
// @Failure 404 {object} map[string]string "User not found"
// @Router /profile/{username}/follow/ [get]
func (h *Handler) FollowAuthor(c *gin.Context) {
	h.change(c, h.service.Follow)
}

// UnfollowAuthor removes the viewer's subscription to an author
// @Summary Unfollow an author
// @Description Remove the subscription to an author. Unfollowing an author you do not follow changes nothing.
// @Tags follow
// @Param username path string true "Author username"
// @Success 302 "Redirect to the author's profile"
// @Failure 404 {object} map[string]string "User not found"
// @Router /profile/{username}/unfollow/ [get]
func (h *Handler) UnfollowAuthor(c *gin.Context) {
	h.change(c, h.service.Unfollow)
}

func (h *Handler) change(c *gin.Context, apply func(ctx context.Context, followerID, authorID uint) (bool, error)) {
	viewer := auth.CurrentViewer(c)
	ctx := c.Request.Context()

	author, err := h.service.Author(ctx, c.Param("username"))
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("failed to load author", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	if _, err := apply(ctx, viewer.ID, author.ID); err != nil {
		h.logger.Error("failed to update follow",
			zap.Error(err),
			zap.Uint("user_id", viewer.ID),
			zap.Uint("author_id", author.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscription"})
		return
	}

	c.Redirect(http.StatusFound, urls.Profile(author.Username))
}

// RegisterRoutes registers follow routes. The router must run auth.OptionalAuth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile/:username")
	profile.Use(auth.LoginRequired())
	profile.GET("/follow/", h.FollowAuthor)
	profile.GET("/unfollow/", h.UnfollowAuthor)
}
