package services

import (
	"errors"
	"strings"

	"limo-backend/models"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound  = errors.New("post_not_found")
	ErrPostImmutable = errors.New("static_post_immutable")
	ErrSlugTaken     = errors.New("slug_taken")
)

// BlogService serves both the static seed posts and store-backed posts.
// Static posts are immutable: every mutating operation goes through
// mutable(), which is the single place the duality is checked.
type BlogService struct {
	DB *gorm.DB
}

func NewBlogService(db *gorm.DB) *BlogService {
	return &BlogService{DB: db}
}

// List returns published posts newest first, optionally filtered by
// category, with id-cursor pagination.
func (s *BlogService) List(category string, limit int, cursor uint) ([]models.BlogPost, uint, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	q := s.DB.Where("published_at IS NOT NULL").Order("id DESC").Limit(limit + 1)
	if category = strings.TrimSpace(category); category != "" {
		q = q.Where("category = ?", category)
	}
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}

	var posts []models.BlogPost
	if err := q.Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	var next uint
	if len(posts) > limit {
		posts = posts[:limit]
		next = posts[len(posts)-1].ID
	}
	return posts, next, nil
}

func (s *BlogService) GetByID(id uint) (models.BlogPost, error) {
	var post models.BlogPost
	if err := s.DB.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.BlogPost{}, ErrPostNotFound
		}
		return models.BlogPost{}, err
	}
	return post, nil
}

// GetBySlug is the routing lookup used by post pages.
func (s *BlogService) GetBySlug(slug string) (models.BlogPost, error) {
	var post models.BlogPost
	err := s.DB.Where("slug = ?", strings.TrimSpace(slug)).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.BlogPost{}, ErrPostNotFound
		}
		return models.BlogPost{}, err
	}
	return post, nil
}

func (s *BlogService) Create(post models.BlogPost) (models.BlogPost, error) {
	post.ID = 0
	post.IsStatic = false // store-backed posts only; seeds come from config
	post.Slug = strings.TrimSpace(post.Slug)

	if err := s.DB.Create(&post).Error; err != nil {
		lc := strings.ToLower(err.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") || strings.Contains(lc, "constraint") {
			return models.BlogPost{}, ErrSlugTaken
		}
		return models.BlogPost{}, err
	}
	return post, nil
}

func (s *BlogService) Update(id uint, updates map[string]interface{}) (models.BlogPost, error) {
	post, err := s.mutable(id)
	if err != nil {
		return models.BlogPost{}, err
	}

	delete(updates, "id")
	delete(updates, "is_static")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	if err := s.DB.Model(&post).Updates(updates).Error; err != nil {
		return models.BlogPost{}, err
	}
	return s.GetByID(id)
}

func (s *BlogService) Delete(id uint) error {
	post, err := s.mutable(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(&post).Error
}

// mutable loads a post and rejects the static variant.
func (s *BlogService) mutable(id uint) (models.BlogPost, error) {
	post, err := s.GetByID(id)
	if err != nil {
		return models.BlogPost{}, err
	}
	if post.IsStatic {
		return models.BlogPost{}, ErrPostImmutable
	}
	return post, nil
}
