package handler

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-dev/inkwell/internal/domain"
	internal_errors "github.com/inkwell-dev/inkwell/internal/errors"
	"github.com/inkwell-dev/inkwell/internal/flash"
	"github.com/inkwell-dev/inkwell/internal/logger"
)

type postView struct {
	domain.Post
	RenderedBody template.HTML
}

type commentView struct {
	domain.Comment
	RenderedText template.HTML
}

type postPageData struct {
	Post     postView
	Comments []commentView
}

func (h *Handler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.All()
	if err != nil {
		logger.Log.Error("failed to list posts", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.renderTemplate(w, r, "index.html", posts)
}

func (h *Handler) ShowPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := postIdParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	post, err := h.posts.Get(id)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		logger.Log.Error("failed to load post", "post_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	comments, err := h.comments.ForPost(id)
	if err != nil {
		logger.Log.Error("failed to load comments", "post_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := postPageData{
		Post: postView{Post: post, RenderedBody: h.md.Render(post.Body)},
	}
	for _, c := range comments {
		data.Comments = append(data.Comments, commentView{Comment: c, RenderedText: h.md.Render(c.Text)})
	}

	h.renderTemplate(w, r, "post.html", data)
}

func (h *Handler) NewPostGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "make-post.html", nil)
}

func (h *Handler) NewPostPostHandler(w http.ResponseWriter, r *http.Request) {
	draft, err := decodePostForm(r)
	if err != nil {
		h.redirectWithFlash(w, r, "/new-post", flash.ErrorCookie, err.Error())
		return
	}

	user := mustUser(r)
	id, err := h.posts.Create(user.Id, draft)
	if err != nil {
		if internal_errors.IsConflict(err) || internal_errors.IsBadRequest(err) {
			h.redirectWithFlash(w, r, "/new-post", flash.ErrorCookie, err.Error())
			return
		}
		logger.Log.Error("failed to create post", "error", err)
		h.redirectWithFlash(w, r, "/new-post", flash.ErrorCookie, "Internal error, please try again")
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusSeeOther)
}

func (h *Handler) EditPostGetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := postIdParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	post, err := h.posts.Get(id)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		logger.Log.Error("failed to load post for editing", "post_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderTemplate(w, r, "make-post.html", post)
}

func (h *Handler) EditPostPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := postIdParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	draft, err := decodePostForm(r)
	if err != nil {
		h.redirectWithFlash(w, r, fmt.Sprintf("/edit-post/%d", id), flash.ErrorCookie, err.Error())
		return
	}

	if err := h.posts.Update(id, draft); err != nil {
		switch {
		case internal_errors.IsNotFound(err):
			http.NotFound(w, r)
		case internal_errors.IsConflict(err) || internal_errors.IsBadRequest(err):
			h.redirectWithFlash(w, r, fmt.Sprintf("/edit-post/%d", id), flash.ErrorCookie, err.Error())
		default:
			logger.Log.Error("failed to update post", "post_id", id, "error", err)
			h.redirectWithFlash(w, r, fmt.Sprintf("/edit-post/%d", id), flash.ErrorCookie, "Internal error, please try again")
		}
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusSeeOther)
}

func (h *Handler) DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := postIdParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.posts.Delete(id); err != nil {
		if internal_errors.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		logger.Log.Error("failed to delete post", "post_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.redirectWithFlash(w, r, "/", flash.SuccessCookie, "Post deleted")
}

func decodePostForm(r *http.Request) (domain.PostDraft, error) {
	if err := parseForm(r); err != nil {
		return domain.PostDraft{}, err
	}
	form := postForm{
		Title:    r.FormValue("title"),
		Subtitle: r.FormValue("subtitle"),
		Body:     r.FormValue("body"),
		ImageURL: r.FormValue("img_url"),
	}
	if err := validateForm(form); err != nil {
		return domain.PostDraft{}, err
	}
	return domain.PostDraft{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImageURL: form.ImageURL,
	}, nil
}

func postIdParam(r *http.Request) (domain.PostId, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, internal_errors.BadRequest("Invalid post id")
	}
	return id, nil
}
