package posts

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/yatube/pkg/yatube/apperrors"
	"github.com/mikepea/yatube/pkg/yatube/auth"
	"github.com/mikepea/yatube/pkg/yatube/models"
	"github.com/mikepea/yatube/pkg/yatube/urls"
	"go.uber.org/zap"
)

// MaxImageSize caps the size of an uploaded image
const MaxImageSize = 10 << 20

var formFields = []string{"text", "group", "image"}

// Handler serves post pages and forms
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new posts handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// PostRequest is the post form. The image travels as a multipart file.
type PostRequest struct {
	Text  string `json:"text" form:"text"`
	Group uint   `json:"group" form:"group"`
}

// CommentRequest is the comment form
type CommentRequest struct {
	Text string `json:"text" form:"text"`
}

// DetailResponse is the post page
type DetailResponse struct {
	Post        PostResponse      `json:"post"`
	PostsCount  int64             `json:"posts_count"`
	Comments    []CommentResponse `json:"comments"`
	CommentForm string            `json:"comment_form"`
	CanEdit     bool              `json:"can_edit"`
}

// FormResponse describes the create and edit forms
type FormResponse struct {
	Fields []string        `json:"fields"`
	Groups []GroupResponse `json:"groups"`
	IsEdit bool            `json:"is_edit"`
	Post   *PostResponse   `json:"post,omitempty"`
}

// ValidationResponse is returned for a rejected form
type ValidationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors onto responses
func (h *Handler) respondError(c *gin.Context, err error, what string) {
	if apperrors.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
		return
	}
	if verr, ok := apperrors.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, ValidationResponse{Error: "Invalid form", Fields: verr.Fields})
		return
	}
	h.logger.Error("request failed", zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// bindInput reads the post form, including an optional image upload
func bindInput(c *gin.Context) (Input, error) {
	var req PostRequest
	if err := c.ShouldBind(&req); err != nil {
		verr := apperrors.NewValidationError()
		verr.Add("group", "Select a valid choice.")
		return Input{}, verr
	}

	in := Input{Text: req.Text, GroupID: req.Group}

	file, err := c.FormFile("image")
	if err != nil {
		// no upload
		return in, nil
	}
	if file.Size > MaxImageSize {
		verr := apperrors.NewValidationError()
		verr.Add("image", "Image is too large.")
		return in, verr
	}

	f, err := file.Open()
	if err != nil {
		return in, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize))
	if err != nil {
		return in, err
	}
	in.Image = data
	return in, nil
}

func (h *Handler) formResponse(c *gin.Context, post *models.Post) (*FormResponse, error) {
	groups, err := h.service.Groups(c.Request.Context())
	if err != nil {
		return nil, err
	}

	resp := &FormResponse{Fields: formFields, Groups: make([]GroupResponse, len(groups))}
	for i, group := range groups {
		resp.Groups[i] = GroupToResponse(group)
	}
	if post != nil {
		p := ToResponse(*post)
		resp.Post = &p
		resp.IsEdit = true
	}
	return resp, nil
}

// GetPost returns the post page
// @Summary Get a post
// @Description Get a post with its author's post count and comments, newest first
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} DetailResponse
// @Failure 404 {object} map[string]string "Post not found"
// @Router /posts/{id}/ [get]
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Post")
		return
	}

	comments := make([]CommentResponse, len(detail.Comments))
	for i, comment := range detail.Comments {
		comments[i] = commentToResponse(comment)
	}

	c.JSON(http.StatusOK, DetailResponse{
		Post:        ToResponse(detail.Post),
		PostsCount:  detail.PostsCount,
		Comments:    comments,
		CommentForm: urls.AddComment(detail.Post.ID),
		CanEdit:     CanEdit(auth.CurrentViewer(c), &detail.Post).Allowed,
	})
}

// CreateForm describes the new post form
// @Summary New post form
// @Description Describe the post form and the groups a post can be filed under
// @Tags posts
// @Produce json
// @Success 200 {object} FormResponse
// @Success 302 "Redirect to login"
// @Router /create/ [get]
func (h *Handler) CreateForm(c *gin.Context) {
	resp, err := h.formResponse(c, nil)
	if err != nil {
		h.respondError(c, err, "Form")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreatePost publishes a post
// @Summary Create a post
// @Description Publish a post as the current user
// @Tags posts
// @Accept json,mpfd
// @Produce json
// @Param request body PostRequest true "Post details"
// @Success 302 "Redirect to the author's profile"
// @Failure 400 {object} ValidationResponse
// @Router /create/ [post]
func (h *Handler) CreatePost(c *gin.Context) {
	viewer := auth.CurrentViewer(c)

	in, err := bindInput(c)
	if err != nil {
		h.respondError(c, err, "Post")
		return
	}

	if _, err := h.service.Create(c.Request.Context(), viewer.ID, in); err != nil {
		h.respondError(c, err, "Post")
		return
	}

	c.Redirect(http.StatusFound, urls.Profile(viewer.Username))
}

// loadEditable loads the post and answers the soft deny itself. ok is false
// when a response has been written.
func (h *Handler) loadEditable(c *gin.Context) (*models.Post, bool) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return nil, false
	}

	post, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Post")
		return nil, false
	}

	if decision := CanEdit(auth.CurrentViewer(c), post); !decision.Allowed {
		c.Redirect(http.StatusFound, decision.RedirectTo)
		return nil, false
	}
	return post, true
}

// EditForm describes the edit form of a post
// @Summary Edit post form
// @Description Describe the edit form. Anyone but the author is redirected to the post.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} FormResponse
// @Success 302 "Redirect to the post"
// @Failure 404 {object} map[string]string "Post not found"
// @Router /posts/{id}/edit/ [get]
func (h *Handler) EditForm(c *gin.Context) {
	post, ok := h.loadEditable(c)
	if !ok {
		return
	}

	resp, err := h.formResponse(c, post)
	if err != nil {
		h.respondError(c, err, "Form")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EditPost saves changes to a post
// @Summary Edit a post
// @Description Change a post's text, group or image. Anyone but the author is redirected to the post.
// @Tags posts
// @Accept json,mpfd
// @Produce json
// @Param id path int true "Post ID"
// @Param request body PostRequest true "Post details"
// @Success 302 "Redirect to the post"
// @Failure 400 {object} ValidationResponse
// @Failure 404 {object} map[string]string "Post not found"
// @Router /posts/{id}/edit/ [post]
func (h *Handler) EditPost(c *gin.Context) {
	post, ok := h.loadEditable(c)
	if !ok {
		return
	}

	in, err := bindInput(c)
	if err != nil {
		h.respondError(c, err, "Post")
		return
	}

	if _, err := h.service.Update(c.Request.Context(), post, in); err != nil {
		h.respondError(c, err, "Post")
		return
	}

	c.Redirect(http.StatusFound, urls.PostDetail(post.ID))
}

// DeletePost removes a post
// @Summary Delete a post
// @Description Delete a post and its comments. Anyone but the author is redirected to the post.
// @Tags posts
// @Param id path int true "Post ID"
// @Success 302 "Redirect to the author's profile"
// @Failure 404 {object} map[string]string "Post not found"
// @Router /posts/{id}/delete/ [post]
func (h *Handler) DeletePost(c *gin.Context) {
	post, ok := h.loadEditable(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), post); err != nil {
		h.respondError(c, err, "Post")
		return
	}

	c.Redirect(http.StatusFound, urls.Profile(post.Author.Username))
}

// AddComment leaves a comment under a post
// @Summary Comment on a post
// @Description Add a comment as the current user
// @Tags posts
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "Post ID"
// @Param request body CommentRequest true "Comment"
// @Success 302 "Redirect to the post"
// @Failure 400 {object} ValidationResponse
// @Failure 404 {object} map[string]string "Post not found"
// @Router /posts/{id}/comment/ [post]
func (h *Handler) AddComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var req CommentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	viewer := auth.CurrentViewer(c)
	if _, err := h.service.AddComment(c.Request.Context(), viewer.ID, id, req.Text); err != nil {
		h.respondError(c, err, "Post")
		return
	}

	c.Redirect(http.StatusFound, urls.PostDetail(id))
}

// RegisterRoutes registers post routes. The router must run auth.OptionalAuth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/posts/:id/", h.GetPost)

	protected := rg.Group("")
	protected.Use(auth.LoginRequired())
	protected.GET("/create/", h.CreateForm)
	protected.POST("/create/", h.CreatePost)
	protected.GET("/posts/:id/edit/", h.EditForm)
	protected.POST("/posts/:id/edit/", h.EditPost)
	protected.POST("/posts/:id/delete/", h.DeletePost)
	protected.POST("/posts/:id/comment/", h.AddComment)
}
