package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ridemedia-backend/internal/apperrors"
	"ridemedia-backend/internal/middleware"
	"ridemedia-backend/internal/models"
	"ridemedia-backend/internal/services"
)

type uploadedFile struct {
	filename    string
	contentType string
	data        []byte
}

// readUpload читает multipart поле "file". Файл больше лимита отклоняется до чтения.
func readUpload(c *gin.Context, maxBytes int64) (*uploadedFile, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return nil, false
	}
	if header.Size > maxBytes {
		respondError(c, fmt.Errorf("%w: %d bytes, limit %d", apperrors.ErrSizeExceeded, header.Size, maxBytes))
		return nil, false
	}

	file, err := header.Open()
	if err != nil {
		log.Printf("Ошибка открытия загруженного файла: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot read file"})
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		log.Printf("Ошибка чтения загруженного файла: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot read file"})
		return nil, false
	}

	return &uploadedFile{
		filename:    header.Filename,
		contentType: header.Header.Get("Content-Type"),
		data:        data,
	}, true
}

// GetUpload отдает загрузку с содержимым в base64
func GetUpload(media *services.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		asset, err := media.Get(c.Request.Context(), c.Param("id"), true)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, asset)
	}
}

// ServeMedia отдает сырые байты файла, адрес стабилен для каждого ID
func ServeMedia(media *services.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		asset, err := media.Get(c.Request.Context(), c.Param("id"), true)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Cache-Control", "public, max-age=31536000, immutable")
		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s", strconv.Quote(asset.Filename)))
		c.Data(http.StatusOK, asset.ContentType, asset.Data)
	}
}

// ListMedia - медиатека CMS. Содержимое включено, если не передано include_data=false.
func ListMedia(media *services.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		withData := c.DefaultQuery("include_data", "true") != "false"
		assets, err := media.List(c.Request.Context(), withData)
		if err != nil {
			respondError(c, err)
			return
		}
		if assets == nil {
			assets = []models.MediaAsset{}
		}
		c.JSON(http.StatusOK, assets)
	}
}

func UploadMedia(media *services.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		upload, ok := readUpload(c, media.MaxBytes())
		if !ok {
			return
		}

		asset, err := media.Upload(c.Request.Context(), models.MediaSourceCMS, upload.filename, upload.contentType, upload.data)
		if err != nil {
			respondError(c, err)
			return
		}

		middleware.TrackUpload(string(asset.Source), asset.Size)
		c.JSON(http.StatusCreated, asset)
	}
}

// DeleteMedia удаляет файл. Подтверждение удаления - на стороне админки.
func DeleteMedia(media *services.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := media.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		log.Printf("Файл %s удален из медиатеки", id)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Media deleted"})
	}
}
