package web

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/yourEmotion/blogs/internal/middleware"
)

// Routes returns the full HTTP handler. /blogs/new is registered ahead of
// /blogs/{id} since gorilla/mux picks the first match. The method override
// wraps the router because routing happens on the rewritten method.
func (app *App) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Metrics)

	r.PathPrefix("/static/").Handler(staticHandler()).Methods(http.MethodGet)
	if app.healthz != nil {
		r.Handle("/healthz", app.healthz).Methods(http.MethodGet)
	}

	r.HandleFunc("/", app.root).Methods(http.MethodGet)

	r.HandleFunc("/blogs", app.listPosts).Methods(http.MethodGet)
	r.HandleFunc("/blogs", app.createPost).Methods(http.MethodPost)
	r.HandleFunc("/blogs/new", app.newPostForm).Methods(http.MethodGet)

	r.HandleFunc("/blogs/{id}", app.showPost).Methods(http.MethodGet)
	r.HandleFunc("/blogs/{id}", app.updatePost).Methods(http.MethodPatch, http.MethodPut)
	r.HandleFunc("/blogs/{id}", app.deletePost).Methods(http.MethodDelete)
	r.HandleFunc("/blogs/{id}/edit", app.editPostForm).Methods(http.MethodGet)
	r.HandleFunc("/blogs/{id}/delete", app.deletePostForm).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		app.clientError(w, http.StatusNotFound)
	})

	return middleware.Logging(handlers.HTTPMethodOverrideHandler(r))
}
