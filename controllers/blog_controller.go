package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"limo-backend/models"
	"limo-backend/services"
	"limo-backend/utils"

	"github.com/gin-gonic/gin"
)

type BlogController struct {
	BlogSvc *services.BlogService
}

func NewBlogController(svc *services.BlogService) *BlogController {
	return &BlogController{BlogSvc: svc}
}

func (bc *BlogController) GetPosts(c *gin.Context) {
	limit, cursor := parsePagination(c)
	posts, next, err := bc.BlogSvc.List(c.Query("category"), limit, cursor)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list posts")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"posts": posts, "next_cursor": next})
}

func (bc *BlogController) GetPost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := bc.BlogSvc.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			utils.JSONError(c, http.StatusNotFound, "post not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load post")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, post)
}

// GetPostBySlug backs the /blog/:slug pages.
func (bc *BlogController) GetPostBySlug(c *gin.Context) {
	post, err := bc.BlogSvc.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			utils.JSONError(c, http.StatusNotFound, "post not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load post")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, post)
}

func (bc *BlogController) CreatePost(c *gin.Context) {
	var post models.BlogPost
	if err := c.ShouldBindJSON(&post); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid post payload")
		return
	}
	if post.Slug == "" || post.Title == "" {
		utils.JSONError(c, http.StatusBadRequest, "slug and title are required")
		return
	}

	created, err := bc.BlogSvc.Create(post)
	if err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			utils.JSONError(c, http.StatusConflict, "a post with this slug already exists")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to create post")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

func (bc *BlogController) UpdatePost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid update payload")
		return
	}

	post, err := bc.BlogSvc.Update(uint(id), updates)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			utils.JSONError(c, http.StatusNotFound, "post not found")
		case errors.Is(err, services.ErrPostImmutable):
			utils.JSONError(c, http.StatusForbidden, "static posts cannot be modified")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to update post")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusOK, post)
}

func (bc *BlogController) DeletePost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := bc.BlogSvc.Delete(uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			utils.JSONError(c, http.StatusNotFound, "post not found")
		case errors.Is(err, services.ErrPostImmutable):
			utils.JSONError(c, http.StatusForbidden, "static posts cannot be deleted")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to delete post")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
