package http

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/listing-insights/internal/domain/listing"
	"github.com/yanqian/listing-insights/internal/infra/config"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.SetHTMLTemplate(pageTemplates())
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/", handler.Page)
	router.POST("/predict", handler.Predict)
	router.POST("/locate", handler.Locate)
	router.GET("/healthz", handler.Healthz)

	api := router.Group("/api/v1")
	{
		api.POST("/predictions", handler.PredictJSON)
		api.GET("/neighbourhoods/resolve", handler.Resolve)
		api.GET("/options", handler.Options)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func pageTemplates() *template.Template {
	funcs := template.FuncMap{
		"fieldError": func(errs listing.FieldErrors, field string) string {
			return errs.First(field)
		},
		"formError": func(errs listing.FieldErrors) string {
			return errs.First(listing.FormErrorKey)
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))
}
