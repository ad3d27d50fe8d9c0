package services

import (
	"errors"
	"testing"
	"time"

	"limo-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPost(t *testing.T, db *gorm.DB, slug string, isStatic bool) models.BlogPost {
	t.Helper()
	now := time.Now()
	post := models.BlogPost{
		Slug:        slug,
		Title:       "Title " + slug,
		Content:     "<p>body</p>",
		PublishedAt: &now,
		Category:    "guides",
		IsStatic:    isStatic,
	}
	require.NoError(t, db.Create(&post).Error)
	return post
}

func TestStaticPostsRejectUpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogService(db)

	static := seedPost(t, db, "static-post", true)

	_, err := svc.Update(static.ID, map[string]interface{}{"title": "changed"})
	assert.True(t, errors.Is(err, ErrPostImmutable))

	err = svc.Delete(static.ID)
	assert.True(t, errors.Is(err, ErrPostImmutable))

	reloaded, err := svc.GetByID(static.ID)
	require.NoError(t, err)
	assert.Equal(t, "Title static-post", reloaded.Title, "static post must be untouched")
}

func TestStoredPostsAreMutable(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogService(db)

	stored := seedPost(t, db, "stored-post", false)

	updated, err := svc.Update(stored.ID, map[string]interface{}{"title": "New Title"})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)

	require.NoError(t, svc.Delete(stored.ID))
	_, err = svc.GetByID(stored.ID)
	assert.True(t, errors.Is(err, ErrPostNotFound))
}

func TestCreateNeverProducesStaticPosts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogService(db)

	created, err := svc.Create(models.BlogPost{Slug: "new-post", Title: "New", IsStatic: true})
	require.NoError(t, err)
	assert.False(t, created.IsStatic, "store-backed posts come only from the API")
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogService(db)

	seedPost(t, db, "taken", false)

	_, err := svc.Create(models.BlogPost{Slug: "taken", Title: "Dup"})
	assert.True(t, errors.Is(err, ErrSlugTaken))
}

func TestGetBySlug(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogService(db)

	seedPost(t, db, "find-me", false)

	post, err := svc.GetBySlug("find-me")
	require.NoError(t, err)
	assert.Equal(t, "find-me", post.Slug)

	_, err = svc.GetBySlug("missing")
	assert.True(t, errors.Is(err, ErrPostNotFound))
}

func TestListFiltersAndPaginates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogService(db)

	for _, slug := range []string{"a", "b", "c"} {
		seedPost(t, db, slug, false)
	}
	// unpublished posts stay hidden
	require.NoError(t, db.Create(&models.BlogPost{Slug: "draft", Title: "Draft"}).Error)

	posts, next, err := svc.List("", 2, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.NotZero(t, next)

	rest, next2, err := svc.List("", 2, next)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Zero(t, next2)

	byCat, _, err := svc.List("guides", 10, 0)
	require.NoError(t, err)
	assert.Len(t, byCat, 3)
}
