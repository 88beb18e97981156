package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"postboard/app/controllers"
	"postboard/app/middleware"
	"postboard/app/repositories"
	"postboard/app/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Options configures the handler returned by New.
type Options struct {
	Logger         zerolog.Logger
	RequestTimeout time.Duration

	// DebugErrors adds err and stack fields to 500 responses.
	DebugErrors bool
}

// New builds the HTTP handler for the posts API on top of store.
func New(store repositories.PostStore, opts Options) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	router.Use(middleware.ContentTypeJSON)

	postController := controllers.NewPostController(services.NewPostService(store), opts.DebugErrors)
	commentController := controllers.NewCommentController(services.NewCommentService(store), opts.DebugErrors)

	// Posts API endpoints, with and without a trailing slash
	for _, base := range []string{"/api/posts", "/api/posts/"} {
		router.HandleFunc(base, postController.Index).Methods(http.MethodGet)
		router.HandleFunc(base, postController.Create).Methods(http.MethodPost)
	}
	for _, suffix := range []string{"", "/"} {
		router.HandleFunc("/api/posts/{id}"+suffix, postController.Show).Methods(http.MethodGet)
		router.HandleFunc("/api/posts/{id}"+suffix, postController.Update).Methods(http.MethodPut)
		router.HandleFunc("/api/posts/{id}"+suffix, postController.Delete).Methods(http.MethodDelete)

		// Comments API endpoints
		router.HandleFunc("/api/posts/{id}/comments"+suffix, commentController.Index).Methods(http.MethodGet)
	}

	var handler http.Handler = router
	handler = middleware.Timeout(opts.RequestTimeout)(handler)
	handler = middleware.Recoverer(handler)
	handler = middleware.Logger(handler)
	handler = middleware.RequestID(opts.Logger)(handler)
	return handler
}

func writeStatus(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": http.StatusText(status)})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusNotFound)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusMethodNotAllowed)
}
