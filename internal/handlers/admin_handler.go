package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridemedia-backend/internal/apperrors"
	"ridemedia-backend/internal/middleware"
	"ridemedia-backend/internal/models"
	"ridemedia-backend/internal/services"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func AdminLogin(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		result, err := admin.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		middleware.TrackLogin(result.Success)
		c.JSON(http.StatusOK, result)
	}
}

func AdminLogout(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := middleware.CurrentSession(c)
		if !ok {
			respondError(c, apperrors.ErrUnauthorized)
			return
		}
		if err := admin.Logout(c.Request.Context(), session.ID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
	}
}

// AdminSession сообщает, кто вошел и когда истекает сессия
func AdminSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := middleware.CurrentSession(c)
		if !ok {
			respondError(c, apperrors.ErrUnauthorized)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"username":   session.Username,
			"issued_at":  session.IssuedAt,
			"expires_at": session.ExpiresAt,
		})
	}
}

func ListDriverApplications(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		apps, err := admin.ListDriverApplications(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if apps == nil {
			apps = []models.DriverApplication{}
		}
		c.JSON(http.StatusOK, apps)
	}
}

func ListAdvertiserSubmissions(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		subs, err := admin.ListAdvertiserSubmissions(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if subs == nil {
			subs = []models.AdvertiserSubmission{}
		}
		c.JSON(http.StatusOK, subs)
	}
}

func UpdateDriverStatus(admin *services.AdminService) gin.HandlerFunc {
	return updateStatus(models.KindDriver, admin.UpdateDriverStatus)
}

func UpdateAdvertiserStatus(admin *services.AdminService) gin.HandlerFunc {
	return updateStatus(models.KindAdvertiser, admin.UpdateAdvertiserStatus)
}

func updateStatus(kind models.SubmissionKind, update func(ctx context.Context, id, status string) (models.SubmissionStatus, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		status, err := update(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			respondError(c, err)
			return
		}

		middleware.TrackStatusUpdate(string(kind), string(status))
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Status updated", "status": status})
	}
}

func ExportDriverApplications(admin *services.AdminService) gin.HandlerFunc {
	return exportCSV(admin.ExportDriverApplications)
}

func ExportAdvertiserSubmissions(admin *services.AdminService) gin.HandlerFunc {
	return exportCSV(admin.ExportAdvertiserSubmissions)
}

// exportCSV отдает файл. Пустой набор - не ошибка: файла нет, есть сообщение.
func exportCSV(export func(ctx context.Context) (*services.CSVExport, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := export(c.Request.Context())
		if errors.Is(err, apperrors.ErrEmptyExport) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "No data to export"})
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", file.Data)
	}
}

func ListEmailLogs(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logs, err := admin.EmailLogs(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if logs == nil {
			logs = []models.EmailLog{}
		}
		c.JSON(http.StatusOK, logs)
	}
}
