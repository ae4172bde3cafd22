package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

type CreatePostRequest struct {
	Content string `json:"content" validate:"required,max=280"`
}

type ReservePostRequest struct {
	Content       string    `json:"content" validate:"required,max=280"`
	ScheduledTime time.Time `json:"scheduledTime" validate:"required"`
}

// postID parses the {id} path variable; 0 means it was invalid.
func postID(r *http.Request) int {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), actorID(r), req.Content)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

// GetPosts serves the feed. With ?tag= it searches by hashtag, with
// ?writer= it lists one author's posts, otherwise it returns recent posts.
func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if tag := r.URL.Query().Get("tag"); tag != "" {
		posts, err := h.PostService.SearchByTag(ctx, tag)
		if err != nil {
			WriteError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		WriteSuccess(w, posts, http.StatusOK)
		return
	}

	if writer := r.URL.Query().Get("writer"); writer != "" {
		posts, err := h.PostService.PostsByWriter(ctx, writer)
		if err != nil {
			WriteError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		WriteSuccess(w, posts, http.StatusOK)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	posts, err := h.PostService.Feed(ctx, limit)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	id := postID(r)
	if id == 0 {
		WriteError(w, "Invalid post id", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.GetPost(r.Context(), id)
	if err != nil {
		WriteError(w, err.Error(), http.StatusNotFound)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	id := postID(r)
	if id == 0 {
		WriteError(w, "Invalid post id", http.StatusBadRequest)
		return
	}

	changed, err := h.ReactionService.LikePost(r.Context(), actorID(r), id)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, ChangedResponse{Changed: changed}, http.StatusOK)
}

func (h *Handlers) UnlikePost(w http.ResponseWriter, r *http.Request) {
	id := postID(r)
	if id == 0 {
		WriteError(w, "Invalid post id", http.StatusBadRequest)
		return
	}

	changed, err := h.ReactionService.UnlikePost(r.Context(), actorID(r), id)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, ChangedResponse{Changed: changed}, http.StatusOK)
}

func (h *Handlers) ReservePost(w http.ResponseWriter, r *http.Request) {
	var req ReservePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	reserved, err := h.PostService.Reserve(r.Context(), actorID(r), req.Content, req.ScheduledTime)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	WriteSuccess(w, reserved, http.StatusCreated)
}

func (h *Handlers) GetReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.PostService.Reservations(r.Context(), actorID(r))
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, reservations, http.StatusOK)
}

func (h *Handlers) AddImage(w http.ResponseWriter, r *http.Request) {
	id := postID(r)
	if id == 0 {
		WriteError(w, "Invalid post id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > h.Cfg.MaxUploadSize {
		WriteError(w, "File too large", http.StatusRequestEntityTooLarge)
		return
	}

	image, err := h.PostService.AddImage(r.Context(), id, header.Filename, file, header.Size)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, image, http.StatusCreated)
}

func (h *Handlers) GetImages(w http.ResponseWriter, r *http.Request) {
	id := postID(r)
	if id == 0 {
		WriteError(w, "Invalid post id", http.StatusBadRequest)
		return
	}

	images, err := h.PostService.Images(r.Context(), id)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, images, http.StatusOK)
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	imageID := mux.Vars(r)["id"]

	if err := h.PostService.DeleteImage(r.Context(), imageID); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
