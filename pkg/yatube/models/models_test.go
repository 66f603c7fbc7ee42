package models

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	return db
}

// setupForeignKeyDB opens an in-memory database with foreign key enforcement,
// so ON DELETE actions declared on the models are applied by SQLite itself.
func setupForeignKeyDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) User {
	user := User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashed_password",
		Name:         "Test " + username,
		SystemRole:   SystemRoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func TestAutoMigrate(t *testing.T) {
	db := setupTestDB(t)

	err := AutoMigrate(db)
	if err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	// Verify tables exist by checking if we can query them
	tables := []string{"users", "groups", "posts", "comments", "follows"}
	for _, table := range tables {
		if !db.Migrator().HasTable(table) {
			t.Errorf("Expected table %s to exist", table)
		}
	}

	if !db.Migrator().HasIndex(&Follow{}, "idx_follows_user_author") {
		t.Error("Expected unique index idx_follows_user_author on follows")
	}
}

func TestUserModel(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	user := createUser(t, db, "author")
	if user.ID == 0 {
		t.Error("Expected user ID to be set after create")
	}

	// Test unique username constraint
	user2 := User{
		Username: "author",
		Email:    "other@example.com",
		Name:     "Another User",
	}
	if err := db.Create(&user2).Error; err == nil {
		t.Error("Expected error when creating user with duplicate username")
	}
}

func TestGroupSlugUniqueness(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	group1 := Group{Title: "Cats", Slug: "cats", Description: "All about cats"}
	if err := db.Create(&group1).Error; err != nil {
		t.Fatalf("Failed to create group: %v", err)
	}

	group2 := Group{Title: "More cats", Slug: "cats"}
	if err := db.Create(&group2).Error; err == nil {
		t.Error("Expected error when creating group with duplicate slug")
	}
}

func TestPostPubDateIsSetOnCreateOnly(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)
	user := createUser(t, db, "author")

	post := Post{Text: "Тестовый пост", AuthorID: user.ID}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	if post.PubDate.IsZero() {
		t.Fatal("Expected pub_date to be set on create")
	}
	original := post.PubDate

	post.Text = "Edited"
	post.PubDate = original.Add(-72 * time.Hour)
	if err := db.Omit("Author", "Group").Save(&post).Error; err != nil {
		t.Fatalf("Failed to save post: %v", err)
	}

	var loaded Post
	db.First(&loaded, post.ID)
	if loaded.Text != "Edited" {
		t.Errorf("Expected text 'Edited', got %q", loaded.Text)
	}
	if loaded.PubDate.Unix() != original.Unix() {
		t.Errorf("Expected pub_date %v to be unchanged, got %v", original, loaded.PubDate)
	}
}

func TestFollowPairUniqueness(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)
	follower := createUser(t, db, "follower")
	author := createUser(t, db, "author")

	if err := db.Create(&Follow{UserID: follower.ID, AuthorID: author.ID}).Error; err != nil {
		t.Fatalf("Failed to create follow: %v", err)
	}
	if err := db.Create(&Follow{UserID: follower.ID, AuthorID: author.ID}).Error; err == nil {
		t.Error("Expected error when creating a duplicate follow edge")
	}

	// The reverse edge is a different pair
	if err := db.Create(&Follow{UserID: author.ID, AuthorID: follower.ID}).Error; err != nil {
		t.Errorf("Expected reverse follow edge to be allowed: %v", err)
	}
}

func TestGroupDeleteClearsPostGroup(t *testing.T) {
	db := setupForeignKeyDB(t)
	user := createUser(t, db, "author")
	group := Group{Title: "Cats", Slug: "cats"}
	db.Create(&group)

	post := Post{Text: "Post in a group", AuthorID: user.ID, GroupID: &group.ID}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}

	if err := db.Delete(&group).Error; err != nil {
		t.Fatalf("Failed to delete group: %v", err)
	}

	var loaded Post
	if err := db.First(&loaded, post.ID).Error; err != nil {
		t.Fatalf("Expected post to survive group deletion: %v", err)
	}
	if loaded.GroupID != nil {
		t.Errorf("Expected group_id to be cleared, got %d", *loaded.GroupID)
	}
}

func TestUserDeleteCascades(t *testing.T) {
	db := setupForeignKeyDB(t)
	author := createUser(t, db, "author")
	reader := createUser(t, db, "reader")

	post := Post{Text: "Doomed post", AuthorID: author.ID}
	db.Create(&post)
	db.Create(&Comment{Text: "Nice", AuthorID: reader.ID, PostID: post.ID})
	db.Create(&Follow{UserID: reader.ID, AuthorID: author.ID})

	if err := db.Delete(&author).Error; err != nil {
		t.Fatalf("Failed to delete user: %v", err)
	}

	var posts, comments, follows int64
	db.Model(&Post{}).Count(&posts)
	db.Model(&Comment{}).Count(&comments)
	db.Model(&Follow{}).Count(&follows)
	if posts != 0 || comments != 0 || follows != 0 {
		t.Errorf("Expected cascade to remove posts, comments and follows, got %d/%d/%d", posts, comments, follows)
	}
}
