package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/yatube/pkg/yatube/apperrors"
	"github.com/mikepea/yatube/pkg/yatube/auth"
	"github.com/mikepea/yatube/pkg/yatube/cache"
	"github.com/mikepea/yatube/pkg/yatube/models"
	"go.uber.org/zap"
)

// Handler handles admin requests
type Handler struct {
	service *Service
	pages   *cache.PageCache
	logger  *zap.Logger
}

// NewHandler creates a new admin handler. pages is the page cache the
// invalidate endpoint clears and may be nil.
func NewHandler(service *Service, pages *cache.PageCache, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, pages: pages, logger: logger}
}

// UserResponse represents user data in admin responses
type UserResponse struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	SystemRole string `json:"system_role"`
	CreatedAt  string `json:"created_at"`
	PostCount  int64  `json:"post_count"`
}

// UpdateUserRequest represents the request to update a user
type UpdateUserRequest struct {
	Name       *string `json:"name"`
	SystemRole *string `json:"system_role"`
}

func (h *Handler) respondError(c *gin.Context, err error) {
	if apperrors.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if verr, ok := apperrors.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "fields": verr.Fields})
		return
	}
	h.logger.Error("admin request failed", zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func (h *Handler) userResponse(c *gin.Context, user models.User) (UserResponse, error) {
	count, err := h.service.CountPosts(c.Request.Context(), user.ID)
	if err != nil {
		return UserResponse{}, err
	}
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		Name:       user.Name,
		SystemRole: string(user.SystemRole),
		CreatedAt:  user.CreatedAt.Format("2006-01-02T15:04:05Z"),
		PostCount:  count,
	}, nil
}

func parseUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	return uint(id), true
}

// ListUsers returns all users (admin only)
// @Summary List users
// @Description List users, optionally searching username and email or filtering by role (admin only)
// @Tags admin
// @Produce json
// @Param q query string false "Search username or email"
// @Param role query string false "Filter by system role"
// @Success 200 {array} UserResponse
// @Security BearerAuth
// @Router /api/admin/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context(), c.Query("q"), c.Query("role"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	responses := make([]UserResponse, len(users))
	for i, user := range users {
		resp, err := h.userResponse(c, user)
		if err != nil {
			h.respondError(c, err)
			return
		}
		responses[i] = resp
	}

	c.JSON(http.StatusOK, responses)
}

// GetUser returns a single user by ID (admin only)
// @Summary Get a user
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /api/admin/users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp, err := h.userResponse(c, *user)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateUser updates a user's profile (admin only)
// @Summary Update a user
// @Description Change a user's name or system role (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Changes"
// @Success 200 {object} UserResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /api/admin/users/{id} [put]
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Prevent admin from demoting themselves
	currentUserID, _ := auth.GetUserID(c)
	if id == currentUserID && req.SystemRole != nil && *req.SystemRole != string(models.SystemRoleAdmin) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot demote yourself"})
		return
	}

	var role *models.SystemRole
	if req.SystemRole != nil {
		r := models.SystemRole(*req.SystemRole)
		role = &r
	}

	user, err := h.service.UpdateUser(c.Request.Context(), id, req.Name, role)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp, err := h.userResponse(c, *user)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteUser deletes a user and everything they wrote (admin only)
// @Summary Delete a user
// @Description Delete a user with their posts, comments and follow edges (admin only)
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string "User deleted"
// @Failure 400 {object} map[string]string "Cannot delete yourself"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /api/admin/users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	// Prevent admin from deleting themselves
	currentUserID, _ := auth.GetUserID(c)
	if id == currentUserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete yourself"})
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// GetStats returns site-wide statistics (admin only)
// @Summary Site statistics
// @Tags admin
// @Produce json
// @Success 200 {object} Stats
// @Security BearerAuth
// @Router /api/admin/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// InvalidateCache drops every cached page (admin only)
// @Summary Invalidate the page cache
// @Description Drop every cached page so the next request recomputes it (admin only)
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]int "Number of entries dropped"
// @Security BearerAuth
// @Router /api/admin/cache/invalidate [post]
func (h *Handler) InvalidateCache(c *gin.Context) {
	dropped := 0
	if h.pages != nil {
		dropped = h.pages.Len()
		h.pages.InvalidateAll()
	}

	h.logger.Info("page cache invalidated", zap.Int("entries", dropped))
	c.JSON(http.StatusOK, gin.H{"invalidated": dropped})
}

// RegisterRoutes registers admin routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.GetStats)
	rg.GET("/users", h.ListUsers)
	rg.GET("/users/:id", h.GetUser)
	rg.PUT("/users/:id", h.UpdateUser)
	rg.DELETE("/users/:id", h.DeleteUser)
	rg.POST("/cache/invalidate", h.InvalidateCache)
}
