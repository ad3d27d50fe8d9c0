package controllers

import (
	"errors"
	"net/http"

	"limo-backend/services"
	"limo-backend/utils"

	"github.com/gin-gonic/gin"
)

type base64UploadPayload struct {
	Data string `json:"data" binding:"required"` // base64, data: URL accepted
	Ext  string `json:"ext"`
}

type UploadController struct {
	Storage *services.StorageService
}

func NewUploadController(storage *services.StorageService) *UploadController {
	return &UploadController{Storage: storage}
}

func prefixFromParam(c *gin.Context) (string, bool) {
	switch c.Param("prefix") {
	case services.PrefixImages:
		return services.PrefixImages, true
	case services.PrefixDocuments:
		return services.PrefixDocuments, true
	default:
		utils.JSONError(c, http.StatusBadRequest, "prefix must be images or documents")
		return "", false
	}
}

// Upload handles POST /api/uploads/:prefix with either a multipart "file"
// field or a JSON base64 payload.
func (uc *UploadController) Upload(c *gin.Context) {
	prefix, ok := prefixFromParam(c)
	if !ok {
		return
	}

	if file, err := c.FormFile("file"); err == nil {
		path, err := uc.Storage.SaveUpload(file, prefix)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to store upload")
			return
		}
		utils.JSONSuccess(c, http.StatusCreated, gin.H{"path": path, "url": uc.Storage.DownloadURL(path)})
		return
	}

	var payload base64UploadPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "expected a multipart file or base64 payload")
		return
	}

	path, err := uc.Storage.SaveBase64(payload.Data, prefix, payload.Ext)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid base64 payload")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"path": path, "url": uc.Storage.DownloadURL(path)})
}

// List handles GET /api/uploads/:prefix (admin).
func (uc *UploadController) List(c *gin.Context) {
	prefix, ok := prefixFromParam(c)
	if !ok {
		return
	}

	objects, err := uc.Storage.List(prefix)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list objects")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, objects)
}

// Metadata handles GET /api/uploads/:prefix/:name (admin).
func (uc *UploadController) Metadata(c *gin.Context) {
	prefix, ok := prefixFromParam(c)
	if !ok {
		return
	}

	meta, err := uc.Storage.Metadata(prefix + "/" + c.Param("name"))
	if err != nil {
		if errors.Is(err, services.ErrObjectNotFound) {
			utils.JSONError(c, http.StatusNotFound, "object not found")
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "invalid object path")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, meta)
}

// Delete handles DELETE /api/uploads/:prefix/:name (admin).
func (uc *UploadController) Delete(c *gin.Context) {
	prefix, ok := prefixFromParam(c)
	if !ok {
		return
	}

	path := prefix + "/" + c.Param("name")
	if err := uc.Storage.Delete(path); err != nil {
		if errors.Is(err, services.ErrObjectNotFound) {
			utils.JSONError(c, http.StatusNotFound, "object not found")
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "invalid object path")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": path})
}
