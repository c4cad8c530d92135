package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridemedia-backend/internal/models"
	"ridemedia-backend/internal/services"
)

type UpdateBlockRequest struct {
	Content  *models.ContentValue `json:"content" binding:"required"`
	IsActive *bool                `json:"is_active"`
}

type EditFieldRequest struct {
	Path  string  `json:"path" binding:"required"`
	Value *string `json:"value" binding:"required"`
}

// ListContentBlocks отдает все блоки, с grouped=true - сгруппированными по страницам
func ListContentBlocks(content *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blocks, err := content.ListBlocks(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if c.Query("grouped") == "true" {
			groups := services.GroupByPage(blocks)
			if groups == nil {
				groups = []services.PageGroup{}
			}
			c.JSON(http.StatusOK, groups)
			return
		}
		if blocks == nil {
			blocks = []models.ContentBlock{}
		}
		c.JSON(http.StatusOK, blocks)
	}
}

// GetPageContent - активные блоки одной страницы для публичного сайта
func GetPageContent(content *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blocks, err := content.PageBlocks(c.Request.Context(), c.Param("page"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, blocks)
	}
}

func UpdateContentBlock(content *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateBlockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		block, err := content.UpdateBlock(c.Request.Context(), c.Param("id"), *req.Content, req.IsActive)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "block": block})
	}
}

func ContentBlockFields(content *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		fields, err := content.BlockFields(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, fields)
	}
}

// EditContentField правит одно поле по пути. Неразборчивый массив - 200 и updated=false.
func EditContentField(content *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EditFieldRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		result, err := content.EditField(c.Request.Context(), c.Param("id"), req.Path, *req.Value)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
