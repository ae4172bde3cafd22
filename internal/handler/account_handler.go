package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

type FollowStateResponse struct {
	Following bool `json:"following"`
}

type ChangedResponse struct {
	Changed bool `json:"changed"`
}

// GetAccount returns the public engagement profile of an account: level,
// exp, badge and the denormalized follower/following counters.
func (h *Handlers) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	account, err := h.AccountService.Profile(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusNotFound)
		return
	}

	WriteSuccess(w, account, http.StatusOK)
}

func (h *Handlers) GetFollowers(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	followers, err := h.AccountService.Followers(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string][]string{"followers": followers}, http.StatusOK)
}

func (h *Handlers) GetFollowings(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	followings, err := h.AccountService.Followings(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string][]string{"followings": followings}, http.StatusOK)
}

func (h *Handlers) Follow(w http.ResponseWriter, r *http.Request) {
	target := mux.Vars(r)["id"]

	changed, err := h.FollowService.Follow(r.Context(), actorID(r), target)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, ChangedResponse{Changed: changed}, http.StatusOK)
}

func (h *Handlers) Unfollow(w http.ResponseWriter, r *http.Request) {
	target := mux.Vars(r)["id"]

	changed, err := h.FollowService.Unfollow(r.Context(), actorID(r), target)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, ChangedResponse{Changed: changed}, http.StatusOK)
}

func (h *Handlers) GetFollowState(w http.ResponseWriter, r *http.Request) {
	target := mux.Vars(r)["id"]

	following, err := h.FollowService.IsFollowing(r.Context(), actorID(r), target)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, FollowStateResponse{Following: following}, http.StatusOK)
}
