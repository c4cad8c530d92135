package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridemedia-backend/internal/middleware"
	"ridemedia-backend/internal/models"
	"ridemedia-backend/internal/services"
)

// SubmitDriverApplication - публичная форма водителя
func SubmitDriverApplication(intake *services.IntakeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.DriverApplicationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			bindError(c, err)
			return
		}

		app, err := intake.SubmitDriverApplication(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}

		middleware.TrackSubmission(string(models.KindDriver))
		c.JSON(http.StatusCreated, app)
	}
}

// SubmitAdvertiserInquiry - форма рекламодателя
func SubmitAdvertiserInquiry(intake *services.IntakeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.AdvertiserSubmissionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			bindError(c, err)
			return
		}

		sub, err := intake.SubmitAdvertiserInquiry(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}

		middleware.TrackSubmission(string(models.KindAdvertiser))
		c.JSON(http.StatusCreated, sub)
	}
}

// AdFormats отдает набор форматов рекламы для формы
func AdFormats(brand string, intake *services.IntakeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"brand": brand, "ad_formats": intake.AdFormats()})
	}
}

// UploadFile принимает вложение к форме (multipart поле "file")
func UploadFile(intake *services.IntakeService, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		upload, ok := readUpload(c, maxBytes)
		if !ok {
			return
		}

		asset, err := intake.UploadFile(c.Request.Context(), upload.filename, upload.contentType, upload.data)
		if err != nil {
			respondError(c, err)
			return
		}

		middleware.TrackUpload(string(asset.Source), asset.Size)
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"file_id":  asset.ID,
			"filename": asset.Filename,
			"url":      asset.URL,
		})
	}
}
