package web

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	"github.com/yourEmotion/blogs/internal/models"
)

const (
	listPath     = "/blogs"
	maxFormBytes = 10 << 20
)

func (app *App) root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, listPath, http.StatusFound)
}

func (app *App) listPosts(w http.ResponseWriter, r *http.Request) {
	list, err := app.posts.ListPosts(r.Context())
	if err != nil {
		app.handleError(w, r, err, msgStoreFailure)
		return
	}
	app.render(w, r, "index.html", &HTMLData{Posts: list})
}

func (app *App) newPostForm(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "new.html", nil)
}

func (app *App) createPost(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(r)
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	in := models.NewPost{
		Title:    form.Get("title"),
		Content:  form.Get("content"),
		Author:   form.Get("author"),
		Password: form.Get("password"),
	}
	if _, err := app.posts.CreatePost(r.Context(), in); err != nil {
		app.handleError(w, r, err, msgInsertFailure)
		return
	}
	http.Redirect(w, r, listPath, http.StatusFound)
}

func (app *App) showPost(w http.ResponseWriter, r *http.Request) {
	app.renderPost(w, r, "show.html")
}

func (app *App) editPostForm(w http.ResponseWriter, r *http.Request) {
	app.renderPost(w, r, "edit.html")
}

func (app *App) deletePostForm(w http.ResponseWriter, r *http.Request) {
	app.renderPost(w, r, "delete.html")
}

func (app *App) updatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := app.postID(w, r)
	if !ok {
		return
	}
	form, err := formValues(r)
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	if err := app.posts.UpdatePost(r.Context(), id, form.Get("password"), form.Get("content")); err != nil {
		app.handleError(w, r, err, msgStoreFailure)
		return
	}
	http.Redirect(w, r, listPath, http.StatusFound)
}

func (app *App) deletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := app.postID(w, r)
	if !ok {
		return
	}
	form, err := formValues(r)
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	if err := app.posts.DeletePost(r.Context(), id, form.Get("password")); err != nil {
		app.handleError(w, r, err, msgStoreFailure)
		return
	}
	http.Redirect(w, r, listPath, http.StatusFound)
}

// renderPost loads the post named in the path and renders it on page.
func (app *App) renderPost(w http.ResponseWriter, r *http.Request, page string) {
	id, ok := app.postID(w, r)
	if !ok {
		return
	}

	post, err := app.posts.GetPost(r.Context(), id)
	if err != nil {
		app.handleError(w, r, err, msgStoreFailure)
		return
	}
	app.render(w, r, page, &HTMLData{Post: post})
}

func (app *App) postID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	if id == "" {
		app.clientError(w, http.StatusBadRequest)
		return "", false
	}
	return id, true
}

func (app *App) render(w http.ResponseWriter, r *http.Request, page string, data *HTMLData) {
	if err := app.renderer.Render(w, http.StatusOK, page, data); err != nil {
		app.serverError(w, r, err)
	}
}

// formValues returns the urlencoded body. net/http leaves the body of a
// DELETE unparsed, so it is read here directly.
func formValues(r *http.Request) (url.Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	if r.Method != http.MethodDelete || len(r.PostForm) > 0 {
		return r.PostForm, nil
	}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		return r.PostForm, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxFormBytes))
	if err != nil {
		return nil, err
	}
	return url.ParseQuery(string(body))
}
