package controller

import (
	"errors"
	"net/http"

	apperrors "github.com/deviceshop/deviceshop-backend/internal/errors"
	"github.com/deviceshop/deviceshop-backend/internal/middleware"
	"github.com/deviceshop/deviceshop-backend/internal/storage"
	"github.com/gin-gonic/gin"
)

type UploadController struct {
	storage storage.ImageStorage
}

func NewUploadController(storage storage.ImageStorage) *UploadController {
	return &UploadController{
		storage: storage,
	}
}

type PresignImageRequest struct {
	Filename    string `json:"filename" form:"filename" binding:"required"`
	ContentType string `json:"content_type" form:"content_type" binding:"required"`
	Folder      string `json:"folder" form:"folder"` // products (default) or posts
}

// PresignImage hands out an upload URL for a product or post image
// POST /upload/image
func (ctrl *UploadController) PresignImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignImageRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err, "filename and content_type are required.")
		return
	}
	if req.Folder == "" {
		req.Folder = "products"
	}

	resp, err := ctrl.storage.PresignImageUpload(c.Request.Context(), req.Filename, req.ContentType, req.Folder)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidUpload) {
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only JPEG, PNG, GIF and WEBP images can be uploaded.")
			return
		}
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename": req.Filename,
			"folder":   req.Folder,
		})
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.UploadFailed, "Could not prepare the upload, please try again.")
		return
	}

	log.Info("Presigned URL generated", map[string]interface{}{
		"key": resp.Key,
	})
	c.JSON(http.StatusOK, resp)
}
