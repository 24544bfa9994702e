package router

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"schenkly.app/concierge/internal/http/handler"
	"schenkly.app/concierge/internal/service"
)

type RouterConfig struct {
	Templates *template.Template
	Static    fs.FS
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.SetHTMLTemplate(cfg.Templates)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", nil)
	})

	router.StaticFS("/static", http.FS(cfg.Static))

	suggestionHandler := handler.NewSuggestionHandler(services.Suggestions())
	router.POST("/generate", suggestionHandler.Generate)
}
