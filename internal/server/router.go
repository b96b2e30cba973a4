// Package server wires the HTTP routes of the bill upload API.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/deliverybills/uploader/internal/bill"
	"github.com/deliverybills/uploader/internal/logging"
	appMiddleware "github.com/deliverybills/uploader/internal/middleware"
	"github.com/deliverybills/uploader/internal/response"

	_ "github.com/deliverybills/uploader/docs/swagger"
)

// NewRouter builds the chi router with the shared middleware stack.
func NewRouter(billHandler *bill.Handler, log logging.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger UI at /swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Path of the original function app, kept for existing clients.
	r.Post("/api/UploadBill", billHandler.Upload)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/bills", billHandler.Upload)
	})

	return r
}
