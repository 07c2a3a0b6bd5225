package web

import (
	"errors"
	"net/http"

	"github.com/yourEmotion/blogs/internal/common"
	"go.uber.org/zap"
)

const (
	msgStoreFailure    = "Error in db"
	msgInsertFailure   = "Error in inserting blog"
	msgNotFound        = "Blog not found"
	msgBadPassword     = "Incorrect password"
	msgInternalFailure = "Internal Server Error"
)

// handleError maps service errors to plain-text responses. storeMsg is the
// body used for store failures on this route.
func (app *App) handleError(w http.ResponseWriter, r *http.Request, err error, storeMsg string) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		http.Error(w, msgNotFound, http.StatusNotFound)
	case errors.Is(err, common.ErrIncorrectPassword):
		http.Error(w, msgBadPassword, http.StatusForbidden)
	default:
		zap.L().Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Bool("store", common.IsStoreError(err)),
			zap.Error(err),
		)
		http.Error(w, storeMsg, http.StatusInternalServerError)
	}
}

func (app *App) serverError(w http.ResponseWriter, r *http.Request, err error) {
	zap.L().Error("render failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, msgInternalFailure, http.StatusInternalServerError)
}

func (app *App) clientError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}
