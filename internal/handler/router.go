package handlers

import (
	"net/http"

	"postboard/internal/config"
	"postboard/internal/middleware"

	"github.com/gorilla/mux"
)

// multipartOverhead is the slack allowed on top of MaxUploadSize for multipart
// boundaries and part headers. The file part itself is checked exactly.
const multipartOverhead = 64 << 10

// NewRouter mounts the API under cfg.BasePath and, for the local storage
// backend, serves stored uploads under the public prefix.
func NewRouter(h *Handlers, cfg *config.Config) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	api := router
	if cfg.BasePath != "" {
		api = router.PathPrefix(cfg.BasePath).Subrouter()
	}

	api.HandleFunc("/posts", h.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts", h.CreatePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id}", h.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", h.UpdatePost).Methods(http.MethodPatch, http.MethodPut)
	api.HandleFunc("/posts/{id}", h.DeletePost).Methods(http.MethodDelete)

	limitBody := middleware.MaxBytesMiddleware(cfg.MaxUploadSize + multipartOverhead)
	api.Handle("/uploads", limitBody(http.HandlerFunc(h.UploadFile))).Methods(http.MethodPost)
	api.Handle("/upload-image", limitBody(http.HandlerFunc(h.UploadImage))).Methods(http.MethodPost)
	api.HandleFunc("/image", h.ListFiles).Methods(http.MethodGet)

	if cfg.Storage.Backend == config.StorageLocal {
		prefix := cfg.Storage.PublicPrefix + "/"
		router.PathPrefix(prefix).
			Handler(http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Storage.UploadDir)))).
			Methods(http.MethodGet, http.MethodHead)
	}

	return middleware.Chain(
		router,
		middleware.RecoverMiddleware,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
	)
}
