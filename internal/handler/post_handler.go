package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"postboard/internal/service"

	"github.com/gorilla/mux"
)

// postID parses the {id} route variable. It writes the 400 itself and
// reports false when the id is not an integer.
func postID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, "Invalid post id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// decodePostInput reads and validates a post body, writing the 400 on
// failure.
func (h *Handlers) decodePostInput(w http.ResponseWriter, r *http.Request) (service.PostInput, bool) {
	var req service.PostInput

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return req, false
	}

	if err := h.Validate.Struct(req); err != nil {
		writeError(w, "Title is required", http.StatusBadRequest)
		return req, false
	}

	return req, true
}

// queryInt returns the query parameter as an int, or fallback when it is
// missing or not a number.
func queryInt(r *http.Request, key string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return fallback
	}
	return value
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", service.DefaultLimit)

	page, err := h.PostService.ListPosts(r.Context(), skip, limit)
	if err != nil {
		mapServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success:    true,
		Message:    "Posts retrieved successfully",
		Data:       page.Posts,
		Pagination: &page.Pagination,
	})
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodePostInput(w, r)
	if !ok {
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), req)
	if err != nil {
		mapServiceError(w, r, err)
		return
	}

	writeSuccess(w, "Post created successfully", post, http.StatusCreated)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	post, err := h.PostService.GetPost(r.Context(), id)
	if err != nil {
		mapServiceError(w, r, err)
		return
	}

	writeSuccess(w, "Post retrieved successfully", post, http.StatusOK)
}

// UpdatePost serves both PATCH and PUT.
func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodePostInput(w, r)
	if !ok {
		return
	}

	post, err := h.PostService.UpdatePost(r.Context(), id, req)
	if err != nil {
		mapServiceError(w, r, err)
		return
	}

	writeSuccess(w, "Post updated successfully", post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	if err := h.PostService.DeletePost(r.Context(), id); err != nil {
		mapServiceError(w, r, err)
		return
	}

	writeSuccess(w, "Post deleted successfully", nil, http.StatusOK)
}
