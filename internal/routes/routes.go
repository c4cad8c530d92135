package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ridemedia-backend/internal/handlers"
	"ridemedia-backend/internal/middleware"
	"ridemedia-backend/internal/services"
)

// Dependencies - сервисы, нужные обработчикам
type Dependencies struct {
	BrandName   string
	CORSOrigins []string
	Intake      *services.IntakeService
	Admin       *services.AdminService
	Content     *services.ContentService
	Media       *services.MediaService
}

// NewRouter собирает gin роутер со всеми middleware и служебными эндпоинтами
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.PrometheusMiddleware())

	r.SetTrustedProxies([]string{"127.0.0.1"})
	r.MaxMultipartMemory = deps.Media.MaxBytes() + 1<<20

	r.Use(cors.New(corsConfig(deps.CORSOrigins)))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	SetupRoutes(r.Group("/api"), deps)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func SetupRoutes(api *gin.RouterGroup, deps Dependencies) {
	adminAuth := middleware.AdminAuth(deps.Admin)

	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": deps.BrandName + " API"})
	})

	// Публичные формы и загрузка вложений
	api.POST("/drivers/apply", handlers.SubmitDriverApplication(deps.Intake))
	api.POST("/advertisers/contact", handlers.SubmitAdvertiserInquiry(deps.Intake))
	api.GET("/advertisers/ad-formats", handlers.AdFormats(deps.BrandName, deps.Intake))
	api.POST("/upload", handlers.UploadFile(deps.Intake, deps.Media.MaxBytes()))
	api.GET("/upload/:id", handlers.GetUpload(deps.Media))
	api.GET("/media/:id", handlers.ServeMedia(deps.Media))

	// Публичный контент сайта
	api.GET("/cms/blocks", handlers.ListContentBlocks(deps.Content))
	api.GET("/cms/pages/:page", handlers.GetPageContent(deps.Content))

	api.POST("/admin/login", handlers.AdminLogin(deps.Admin))

	// Списки заявок доступны только администратору
	api.GET("/drivers/applications", adminAuth, handlers.ListDriverApplications(deps.Admin))
	api.GET("/advertisers/submissions", adminAuth, handlers.ListAdvertiserSubmissions(deps.Admin))

	admin := api.Group("/admin")
	admin.Use(adminAuth)
	{
		admin.POST("/logout", handlers.AdminLogout(deps.Admin))
		admin.GET("/session", handlers.AdminSession())
		admin.PUT("/drivers/:id/status", handlers.UpdateDriverStatus(deps.Admin))
		admin.PUT("/advertisers/:id/status", handlers.UpdateAdvertiserStatus(deps.Admin))
		admin.GET("/drivers/export", handlers.ExportDriverApplications(deps.Admin))
		admin.GET("/advertisers/export", handlers.ExportAdvertiserSubmissions(deps.Admin))
		admin.GET("/email-logs", handlers.ListEmailLogs(deps.Admin))
	}

	cms := api.Group("/cms")
	cms.Use(adminAuth)
	{
		cms.PUT("/blocks/:id", handlers.UpdateContentBlock(deps.Content))
		cms.GET("/blocks/:id/fields", handlers.ContentBlockFields(deps.Content))
		cms.PATCH("/blocks/:id/fields", handlers.EditContentField(deps.Content))
		cms.GET("/media", handlers.ListMedia(deps.Media))
		cms.POST("/media", handlers.UploadMedia(deps.Media))
		cms.DELETE("/media/:id", handlers.DeleteMedia(deps.Media))
	}
}
