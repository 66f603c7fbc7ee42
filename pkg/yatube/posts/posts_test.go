package posts

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/yatube/pkg/yatube/apperrors"
	"github.com/mikepea/yatube/pkg/yatube/auth"
	"github.com/mikepea/yatube/pkg/yatube/media"
	"github.com/mikepea/yatube/pkg/yatube/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// smallGIF is a 1x1 transparent gif
var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00,
	0x01, 0x00, 0x00, 0x00, 0x00, 0x21, 0xf9, 0x04,
	0x01, 0x0a, 0x00, 0x01, 0x00, 0x2c, 0x00, 0x00,
	0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x02,
	0x02, 0x4c, 0x01, 0x00, 0x3b,
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		SystemRole:   models.SystemRoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func createTestGroup(t *testing.T, db *gorm.DB, slug string) models.Group {
	group := models.Group{Title: "Тестовая группа", Slug: slug, Description: "Тестовое описание"}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("Failed to create test group: %v", err)
	}
	return group
}

func createTestPost(t *testing.T, db *gorm.DB, author models.User, text string) models.Post {
	post := models.Post{Text: text, AuthorID: author.ID}
	if err := db.Omit("Author", "Group").Create(&post).Error; err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}
	return post
}

func countPosts(t *testing.T, db *gorm.DB) int64 {
	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	return count
}

func viewerOf(user models.User) auth.Viewer {
	return auth.Viewer{ID: user.ID, Username: user.Username, Authenticated: true}
}

func TestCreatePostService(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil, nil)
	author := createTestUser(t, db, "author")
	group := createTestGroup(t, db, "test-slug")

	post, err := service.Create(context.Background(), author.ID, Input{Text: "  Тестовый пост  ", GroupID: group.ID})
	require.NoError(t, err)

	assert.Equal(t, "Тестовый пост", post.Text)
	assert.Equal(t, "author", post.Author.Username)
	require.NotNil(t, post.Group)
	assert.Equal(t, "test-slug", post.Group.Slug)
	assert.False(t, post.PubDate.IsZero())
}

func TestCreatePostValidation(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil, nil)
	author := createTestUser(t, db, "author")

	_, err := service.Create(context.Background(), author.ID, Input{Text: "   ", GroupID: 999})
	verr, ok := apperrors.AsValidation(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	assert.Contains(t, verr.Fields, "text")
	assert.Contains(t, verr.Fields, "group")
	assert.Equal(t, int64(0), countPosts(t, db))
}

func TestCreatePostWithImage(t *testing.T) {
	db := setupTestDB(t)
	root := t.TempDir()
	service := NewService(db, media.NewFileStore(root), nil)
	author := createTestUser(t, db, "author")

	post, err := service.Create(context.Background(), author.ID, Input{Text: "with image", Image: smallGIF})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(post.Image, "posts/"))

	_, err = service.Create(context.Background(), author.ID, Input{Text: "bad image", Image: []byte("not an image")})
	verr, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "image")
	assert.Equal(t, int64(1), countPosts(t, db))
}

func storedFiles(t *testing.T, root string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(root, media.PostsDir))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestCreateFailureRemovesImage(t *testing.T) {
	db := setupTestDB(t)
	root := t.TempDir()
	service := NewService(db, media.NewFileStore(root), nil)
	author := createTestUser(t, db, "author")
	require.NoError(t, db.Migrator().DropTable(&models.Post{}))

	_, err := service.Create(context.Background(), author.ID, Input{Text: "with image", Image: smallGIF})
	require.Error(t, err)
	assert.Empty(t, storedFiles(t, root))
}

func TestUpdateFailureRemovesNewImage(t *testing.T) {
	db := setupTestDB(t)
	root := t.TempDir()
	service := NewService(db, media.NewFileStore(root), nil)
	author := createTestUser(t, db, "author")
	created := createTestPost(t, db, author, "text")

	post, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NoError(t, db.Migrator().DropTable(&models.Post{}))

	_, err = service.Update(context.Background(), post, Input{Text: "new text", Image: smallGIF})
	require.Error(t, err)
	assert.Empty(t, storedFiles(t, root))
}

func TestUpdateKeepsPubDate(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil, nil)
	author := createTestUser(t, db, "author")
	group := createTestGroup(t, db, "test-slug")
	created := createTestPost(t, db, author, "original")

	post, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	originalDate := post.PubDate

	post.PubDate = originalDate.Add(-48 * time.Hour)
	updated, err := service.Update(context.Background(), post, Input{Text: "edited", GroupID: group.ID})
	require.NoError(t, err)

	assert.Equal(t, "edited", updated.Text)
	require.NotNil(t, updated.Group)
	assert.True(t, updated.PubDate.Equal(originalDate), "pub_date changed from %v to %v", originalDate, updated.PubDate)

	cleared, err := service.Update(context.Background(), updated, Input{Text: "edited again"})
	require.NoError(t, err)
	assert.Nil(t, cleared.GroupID)
}

func TestDeleteRemovesComments(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil, nil)
	ctx := context.Background()
	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author, "doomed")

	_, err := service.AddComment(ctx, author.ID, post.ID, "first")
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, &post))

	var comments int64
	db.Model(&models.Comment{}).Count(&comments)
	assert.Equal(t, int64(0), comments)
	assert.Equal(t, int64(0), countPosts(t, db))
}

func TestAddCommentService(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil, nil)
	ctx := context.Background()
	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author, "post")

	_, err := service.AddComment(ctx, author.ID, 999, "text")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = service.AddComment(ctx, author.ID, post.ID, "  ")
	_, ok := apperrors.AsValidation(err)
	assert.True(t, ok)

	_, err = service.AddComment(ctx, author.ID, post.ID, "older")
	require.NoError(t, err)
	_, err = service.AddComment(ctx, author.ID, post.ID, "newer")
	require.NoError(t, err)

	detail, err := service.Detail(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "newer", detail.Comments[0].Text)
	assert.Equal(t, int64(1), detail.PostsCount)
}

func TestCanEdit(t *testing.T) {
	author := models.User{ID: 1, Username: "author"}
	other := models.User{ID: 2, Username: "other"}
	post := &models.Post{ID: 5, AuthorID: author.ID}

	assert.Equal(t, Decision{Allowed: true}, CanEdit(viewerOf(author), post))
	assert.Equal(t, Decision{RedirectTo: "/posts/5/"}, CanEdit(viewerOf(other), post))
	assert.Equal(t, Decision{RedirectTo: "/posts/5/"}, CanEdit(auth.Anonymous, post))
}

func setupTestRouter(db *gorm.DB, store media.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(auth.OptionalAuth())
	handler := NewHandler(NewService(db, store, nil), nil)
	handler.RegisterRoutes(&r.RouterGroup)
	return r
}

func getAuthHeader(user models.User) string {
	token, _ := auth.GenerateToken(user.ID, user.Username, string(user.SystemRole))
	return "Bearer " + token
}

func postForm(router *gin.Engine, path string, form url.Values, user *models.User) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if user != nil {
		req.Header.Set("Authorization", getAuthHeader(*user))
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCreatePostEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db, nil)
	author := createTestUser(t, db, "author")
	group := createTestGroup(t, db, "test-slug")

	resp := postForm(router, "/create/", url.Values{
		"text":  {"Тестовый пост"},
		"group": {"1"},
	}, &author)

	if resp.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d: %s", resp.Code, resp.Body.String())
	}
	if location := resp.Header().Get("Location"); location != "/profile/author/" {
		t.Errorf("Expected redirect to /profile/author/, got %s", location)
	}

	var post models.Post
	if err := db.First(&post).Error; err != nil {
		t.Fatalf("Expected post to be saved: %v", err)
	}
	if post.Text != "Тестовый пост" || post.GroupID == nil || *post.GroupID != group.ID {
		t.Errorf("Unexpected post saved: %+v", post)
	}
}

func TestCreatePostWithImageEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db, media.NewFileStore(t.TempDir()))
	author := createTestUser(t, db, "author")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.WriteField("text", "with picture")
	part, _ := writer.CreateFormFile("image", "small.gif")
	part.Write(smallGIF)
	writer.Close()

	req, _ := http.NewRequest("POST", "/create/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", getAuthHeader(author))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d: %s", resp.Code, resp.Body.String())
	}

	var post models.Post
	db.First(&post)
	if !strings.HasPrefix(post.Image, "posts/") {
		t.Errorf("Expected stored image path, got %q", post.Image)
	}
}

func TestCreateInvalidPostEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db, nil)
	author := createTestUser(t, db, "author")

	resp := postForm(router, "/create/", url.Values{"text": {""}}, &author)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", resp.Code)
	}

	var body ValidationResponse
	json.Unmarshal(resp.Body.Bytes(), &body)
	if _, ok := body.Fields["text"]; !ok {
		t.Errorf("Expected text field error, got %v", body.Fields)
	}
	if count := countPosts(t, db); count != 0 {
		t.Errorf("Expected no posts, got %d", count)
	}
}

func TestCreateRequiresLogin(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db, nil)

	resp := postForm(router, "/create/", url.Values{"text": {"anon"}}, nil)

	if resp.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d", resp.Code)
	}
	if location := resp.Header().Get("Location"); location != auth.LoginURL("/create/") {
		t.Errorf("Expected login redirect, got %s", location)
	}
	if count := countPosts(t, db); count != 0 {
		t.Errorf("Expected no posts, got %d", count)
	}
}

func TestCreateForm(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db, nil)
	author := createTestUser(t, db, "author")
	createTestGroup(t, db, "test-slug")

	req, _ := http.NewRequest("GET", "/create/", nil)
	req.Header.Set("Authorization", getAuthHeader(author))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	var form FormResponse
	json.Unmarshal(resp.Body.Bytes(), &form)
	if form.IsEdit {
		t.Error("Expected is_edit false for the create form")
	}
	if len(form.Groups) != 1 || form.Groups[0].Slug != "test-slug" {
		t.Errorf("Unexpected groups: %+v", form.Groups)
	}
}

func TestGetPostEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db, nil)
	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author, "Тестовый пост")
	db.Create(&models.Comment{Text: "Тестовый комментарий", AuthorID: author.ID, PostID: post.ID})

	req, _ := http.NewRequest("GET", "/posts/1/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	var detail DetailResponse
	json.Unmarshal(resp.Body.Bytes(), &detail)
	if detail.Post.Text != "Тестовый пост" {
		t.Errorf("Expected post text, got %q", detail.Post.Text)
	}
	if detail.PostsCount != 1 {
		t.Errorf("Expected posts_count 1, got %d", detail.PostsCount)
	}
	if len(detail.Comments) != 1 || detail.Comments[0].Text != "Тестовый комментарий" {
		t.Errorf("Unexpected comments: %+v", detail.Comments)
	}
	if detail.CommentForm != "/posts/1/comment/" {
		t.Errorf("Expected comment form target, got %s", detail.CommentForm)
	}
}

func TestGetPostNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db, nil)

	for _, path := range []string{"/posts/999/", "/posts/abc/"} {
		req, _ := http.NewRequest("GET", path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusNotFound {
			t.Errorf("%s: expected status 404, got %d", path, resp.Code)
		}
	}
}

func TestEditFormAuthor(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db, nil)
	author := createTestUser(t, db, "author")
	createTestPost(t, db, author, "mine")

	req, _ := http.NewRequest("GET", "/posts/1/edit/", nil)
	req.Header.Set("Authorization", getAuthHeader(author))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	var form FormResponse
	json.Unmarshal(resp.Body.Bytes(), &form)
	if !form.IsEdit {
		t.Error("Expected is_edit true")
	}
	if form.Post == nil || form.Post.Text != "mine" {
		t.Errorf("Expected the post in the form, got %+v", form.Post)
	}
}

func TestEditNonAuthorRedirects(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db, nil)
	author := createTestUser(t, db, "author")
	other := createTestUser(t, db, "other")
	createTestPost(t, db, author, "mine")

	req, _ := http.NewRequest("GET", "/posts/1/edit/", nil)
	req.Header.Set("Authorization", getAuthHeader(other))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d", resp.Code)
	}
	if location := resp.Header().Get("Location"); location != "/posts/1/" {
		t.Errorf("Expected redirect to /posts/1/, got %s", location)
	}

	resp = postForm(router, "/posts/1/edit/", url.Values{"text": {"hijacked"}}, &other)
	if resp.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d", resp.Code)
	}

	var post models.Post
	db.First(&post, 1)
	if post.Text != "mine" {
		t.Errorf("Expected text unchanged, got %q", post.Text)
	}
}

func TestEditPostEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db, nil)
	author := createTestUser(t, db, "author")
	createTestPost(t, db, author, "mine")

	resp := postForm(router, "/posts/1/edit/", url.Values{"text": {"edited"}}, &author)

	if resp.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d: %s", resp.Code, resp.Body.String())
	}
	if location := resp.Header().Get("Location"); location != "/posts/1/" {
		t.Errorf("Expected redirect to /posts/1/, got %s", location)
	}

	var post models.Post
	db.First(&post, 1)
	if post.Text != "edited" {
		t.Errorf("Expected text edited, got %q", post.Text)
	}
}

func TestDeletePostEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db, nil)
	author := createTestUser(t, db, "author")
	other := createTestUser(t, db, "other")
	createTestPost(t, db, author, "mine")

	resp := postForm(router, "/posts/1/delete/", nil, &other)
	if resp.Code != http.StatusFound || resp.Header().Get("Location") != "/posts/1/" {
		t.Fatalf("Expected soft deny redirect, got %d %s", resp.Code, resp.Header().Get("Location"))
	}
	if count := countPosts(t, db); count != 1 {
		t.Fatalf("Expected post to survive, got %d posts", count)
	}

	resp = postForm(router, "/posts/1/delete/", nil, &author)
	if resp.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d", resp.Code)
	}
	if location := resp.Header().Get("Location"); location != "/profile/author/" {
		t.Errorf("Expected redirect to /profile/author/, got %s", location)
	}
	if count := countPosts(t, db); count != 0 {
		t.Errorf("Expected post deleted, got %d posts", count)
	}
}

func TestAddCommentEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db, nil)
	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")
	createTestPost(t, db, author, "post")

	resp := postForm(router, "/posts/1/comment/", url.Values{"text": {"Тестовый комментарий"}}, &reader)
	if resp.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d: %s", resp.Code, resp.Body.String())
	}
	if location := resp.Header().Get("Location"); location != "/posts/1/" {
		t.Errorf("Expected redirect to /posts/1/, got %s", location)
	}

	var comment models.Comment
	if err := db.First(&comment).Error; err != nil {
		t.Fatalf("Expected comment saved: %v", err)
	}
	if comment.AuthorID != reader.ID {
		t.Errorf("Expected comment by reader, got author %d", comment.AuthorID)
	}

	resp = postForm(router, "/posts/1/comment/", url.Values{"text": {""}}, &reader)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for empty comment, got %d", resp.Code)
	}

	resp = postForm(router, "/posts/999/comment/", url.Values{"text": {"lost"}}, &reader)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown post, got %d", resp.Code)
	}
}

func TestAddCommentRequiresLogin(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db, nil)
	author := createTestUser(t, db, "author")
	createTestPost(t, db, author, "post")

	resp := postForm(router, "/posts/1/comment/", url.Values{"text": {"anon"}}, nil)
	if resp.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d", resp.Code)
	}

	var count int64
	db.Model(&models.Comment{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no comments, got %d", count)
	}
}
