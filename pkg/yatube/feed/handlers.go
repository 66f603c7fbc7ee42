package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/yatube/pkg/yatube/apperrors"
	"github.com/mikepea/yatube/pkg/yatube/auth"
	"github.com/mikepea/yatube/pkg/yatube/cache"
	"github.com/mikepea/yatube/pkg/yatube/posts"
	"go.uber.org/zap"
)

// IndexCachePrefix prefixes the cache keys of the global feed
const IndexCachePrefix = "index_page:"

// Handler serves the feed pages
type Handler struct {
	service *Service
	cache   *cache.PageCache
	logger  *zap.Logger
}

// NewHandler creates a feed handler. The index page is served through pages.
func NewHandler(service *Service, pages *cache.PageCache, logger *zap.Logger) *Handler {
	if pages == nil {
		pages = cache.New(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, cache: pages, logger: logger}
}

// PageResponse represents a page of posts
type PageResponse struct {
	Items        []posts.PostResponse `json:"items"`
	Number       int                  `json:"number"`
	NumPages     int                  `json:"num_pages"`
	Count        int64                `json:"count"`
	HasPrevious  bool                 `json:"has_previous"`
	HasNext      bool                 `json:"has_next"`
	PreviousPage *int                 `json:"previous_page_number,omitempty"`
	NextPage     *int                 `json:"next_page_number,omitempty"`
}

// IndexResponse is the global feed
type IndexResponse struct {
	Page PageResponse `json:"page"`
}

// GroupResponse is a group feed
type GroupResponse struct {
	Group posts.GroupResponse `json:"group"`
	Page  PageResponse        `json:"page"`
}

// ProfileResponse is an author's page
type ProfileResponse struct {
	Author     posts.AuthorResponse `json:"author"`
	PostsCount int64                `json:"posts_count"`
	Following  bool                 `json:"following"`
	Page       PageResponse         `json:"page"`
}

// FollowResponse is the following feed
type FollowResponse struct {
	Page PageResponse `json:"page"`
}

// NewPageResponse converts a page for the API
func NewPageResponse(page *PostPage) PageResponse {
	resp := PageResponse{
		Items:       posts.ToResponses(page.Items),
		Number:      page.Number,
		NumPages:    page.NumPages,
		Count:       page.Count,
		HasPrevious: page.HasPrevious(),
		HasNext:     page.HasNext(),
	}
	if resp.HasPrevious {
		prev := page.Number - 1
		resp.PreviousPage = &prev
	}
	if resp.HasNext {
		next := page.Number + 1
		resp.NextPage = &next
	}
	return resp
}

// IndexCacheKey returns the cache key of the index page for query. Every
// distinct combination of query parameters gets its own entry.
func IndexCacheKey(query url.Values) string {
	return IndexCachePrefix + query.Encode()
}

func (h *Handler) respondError(c *gin.Context, err error, what string) {
	if apperrors.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
		return
	}
	h.logger.Error("failed to build feed", zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
}

// Index returns the global feed
// @Summary Global feed
// @Description Every post, newest first, ten per page. Responses are cached per query string.
// @Tags feed
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} IndexResponse
// @Router / [get]
func (h *Handler) Index(c *gin.Context) {
	rawPage := c.Query("page")
	// the computation is shared with concurrent requests for the same key
	ctx := context.WithoutCancel(c.Request.Context())

	body, err := h.cache.GetOrCompute(IndexCacheKey(c.Request.URL.Query()), func() ([]byte, error) {
		page, err := h.service.Global(ctx, rawPage)
		if err != nil {
			return nil, err
		}
		return json.Marshal(IndexResponse{Page: NewPageResponse(page)})
	})
	if err != nil {
		h.respondError(c, err, "Page")
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// GroupPosts returns the feed of one group
// @Summary Group feed
// @Description Posts filed under a group, newest first, ten per page
// @Tags feed
// @Produce json
// @Param slug path string true "Group slug"
// @Param page query int false "Page number"
// @Success 200 {object} GroupResponse
// @Failure 404 {object} map[string]string "Group not found"
// @Router /group/{slug}/ [get]
func (h *Handler) GroupPosts(c *gin.Context) {
	group, page, err := h.service.Group(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		h.respondError(c, err, "Group")
		return
	}

	c.JSON(http.StatusOK, GroupResponse{
		Group: posts.GroupToResponse(*group),
		Page:  NewPageResponse(page),
	})
}

// Profile returns an author's page
// @Summary Author profile
// @Description An author's posts, their total and whether the current user follows them
// @Tags feed
// @Produce json
// @Param username path string true "Username"
// @Param page query int false "Page number"
// @Success 200 {object} ProfileResponse
// @Failure 404 {object} map[string]string "User not found"
// @Router /profile/{username}/ [get]
func (h *Handler) Profile(c *gin.Context) {
	profile, err := h.service.Profile(c.Request.Context(), c.Param("username"), auth.CurrentViewer(c), c.Query("page"))
	if err != nil {
		h.respondError(c, err, "User")
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Author:     posts.AuthorToResponse(profile.Author),
		PostsCount: profile.PostsCount,
		Following:  profile.Following,
		Page:       NewPageResponse(profile.Page),
	})
}

// FollowIndex returns posts by the authors the current user follows
// @Summary Following feed
// @Description Posts by every followed author, newest first, ten per page
// @Tags feed
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} FollowResponse
// @Success 302 "Redirect to login"
// @Router /follow/ [get]
func (h *Handler) FollowIndex(c *gin.Context) {
	page, err := h.service.Following(c.Request.Context(), auth.CurrentViewer(c).ID, c.Query("page"))
	if err != nil {
		h.respondError(c, err, "Page")
		return
	}

	c.JSON(http.StatusOK, FollowResponse{Page: NewPageResponse(page)})
}

// RegisterRoutes registers feed routes. The router must run auth.OptionalAuth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.Index)
	rg.GET("/group/:slug/", h.GroupPosts)
	rg.GET("/profile/:username/", h.Profile)
	rg.GET("/follow/", auth.LoginRequired(), h.FollowIndex)
}
