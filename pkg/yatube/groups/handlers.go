package groups

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/yatube/pkg/yatube/apperrors"
	"go.uber.org/zap"
)

// Handler serves the group administration API
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new groups handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// GroupRequest represents the request to create or update a group
type GroupRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Slug        string `json:"slug" binding:"required,max=200"`
	Description string `json:"description"`
}

// GroupResponse represents a group in admin responses
type GroupResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	PostCount   int64  `json:"post_count"`
}

func (r GroupRequest) input() Input {
	return Input{Title: r.Title, Slug: r.Slug, Description: r.Description}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
	case errors.Is(err, ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "This slug is already taken"})
	default:
		if verr, ok := apperrors.AsValidation(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group", "fields": verr.Fields})
			return
		}
		h.logger.Error("group request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// List returns every group
// @Summary List groups
// @Description Get all groups with their post counts (admin only)
// @Tags admin
// @Produce json
// @Success 200 {array} GroupResponse
// @Security BearerAuth
// @Router /api/admin/groups [get]
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()
	groups, err := h.service.List(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	responses := make([]GroupResponse, len(groups))
	for i, group := range groups {
		count, err := h.service.PostCount(ctx, group.ID)
		if err != nil {
			h.respondError(c, err)
			return
		}
		responses[i] = GroupResponse{
			ID:          group.ID,
			Title:       group.Title,
			Slug:        group.Slug,
			Description: group.Description,
			PostCount:   count,
		}
	}

	c.JSON(http.StatusOK, responses)
}

// Create creates a new group
// @Summary Create a group
// @Description Create a group (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Param request body GroupRequest true "Group details"
// @Success 201 {object} GroupResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Slug already taken"
// @Security BearerAuth
// @Router /api/admin/groups [post]
func (h *Handler) Create(c *gin.Context) {
	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.service.Create(c.Request.Context(), req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, GroupResponse{
		ID:          group.ID,
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
	})
}

// Get returns a group by slug
// @Summary Get a group
// @Description Get a group by slug (admin only)
// @Tags admin
// @Produce json
// @Param slug path string true "Group slug"
// @Success 200 {object} GroupResponse
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /api/admin/groups/{slug} [get]
func (h *Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	group, err := h.service.Get(ctx, c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	count, err := h.service.PostCount(ctx, group.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, GroupResponse{
		ID:          group.ID,
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
		PostCount:   count,
	})
}

// Update updates a group
// @Summary Update a group
// @Description Update a group's title, slug or description (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Param slug path string true "Group slug"
// @Param request body GroupRequest true "Group details"
// @Success 200 {object} GroupResponse
// @Failure 404 {object} map[string]string "Group not found"
// @Failure 409 {object} map[string]string "Slug already taken"
// @Security BearerAuth
// @Router /api/admin/groups/{slug} [put]
func (h *Handler) Update(c *gin.Context) {
	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.service.Update(c.Request.Context(), c.Param("slug"), req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, GroupResponse{
		ID:          group.ID,
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
	})
}

// Delete deletes a group
// @Summary Delete a group
// @Description Delete a group. Its posts are kept without a group. (admin only)
// @Tags admin
// @Produce json
// @Param slug path string true "Group slug"
// @Success 200 {object} map[string]string "Group deleted"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /api/admin/groups/{slug} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group deleted successfully"})
}

// RegisterRoutes registers group admin routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/groups", h.List)
	rg.POST("/groups", h.Create)
	rg.GET("/groups/:slug", h.Get)
	rg.PUT("/groups/:slug", h.Update)
	rg.DELETE("/groups/:slug", h.Delete)
}
