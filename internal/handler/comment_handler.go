package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=280"`
}

func commentID(r *http.Request) int {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	id := postID(r)
	if id == 0 {
		WriteError(w, "Invalid post id", http.StatusBadRequest)
		return
	}

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.Add(r.Context(), actorID(r), id, req.Content)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, comment, http.StatusCreated)
}

func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	id := postID(r)
	if id == 0 {
		WriteError(w, "Invalid post id", http.StatusBadRequest)
		return
	}

	comments, err := h.CommentService.List(r.Context(), id)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, comments, http.StatusOK)
}

func (h *Handlers) LikeComment(w http.ResponseWriter, r *http.Request) {
	id := commentID(r)
	if id == 0 {
		WriteError(w, "Invalid comment id", http.StatusBadRequest)
		return
	}

	changed, err := h.ReactionService.LikeComment(r.Context(), actorID(r), id)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, ChangedResponse{Changed: changed}, http.StatusOK)
}

func (h *Handlers) UnlikeComment(w http.ResponseWriter, r *http.Request) {
	id := commentID(r)
	if id == 0 {
		WriteError(w, "Invalid comment id", http.StatusBadRequest)
		return
	}

	changed, err := h.ReactionService.UnlikeComment(r.Context(), actorID(r), id)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, ChangedResponse{Changed: changed}, http.StatusOK)
}
