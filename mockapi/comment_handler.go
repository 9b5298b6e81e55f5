package mockapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/blog-frontend/errs"
	"github.com/rpupo63/blog-frontend/models"
	"github.com/rs/zerolog"
)

type commentHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     *Store
}

func newCommentHandler(logger zerolog.Logger, store *Store) commentHandler {
	logger = logger.With().Str("handlerName", "commentHandler").Logger()
	return commentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// listApproved serves GET /comments?postId=
func (h commentHandler) listApproved() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("postId")
		if raw == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("postId"))
			return
		}
		postID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("postId", "must be an integer"))
			return
		}

		list := h.store.ApprovedComments(postID)
		if list == nil {
			list = []models.Comment{}
		}
		h.responder.WriteJSON(w, list)
	}
}

// create serves POST /comments
func (h commentHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateCommentRequest
		if err := decodeJSON(r, "comment", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment, err := h.store.CreateComment(req)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, comment)
	}
}

// listAll serves GET /admin/comments?page=&size=
func (h commentHandler) listAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size, err := pageRequest(r, 20)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, models.NewPage(h.store.AllComments(), page, size))
	}
}

// updateStatus serves PUT /admin/comments/{commentID}/status
func (h commentHandler) updateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(chi.URLParam(r, "commentID"), "commentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req models.CommentStatusRequest
		if err := decodeJSON(r, "comment status", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment, err := h.store.UpdateCommentStatus(id, req.Status)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, comment)
	}
}

// delete serves DELETE /admin/comments/{commentID}
func (h commentHandler) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(chi.URLParam(r, "commentID"), "commentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.DeleteComment(id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "comment deleted successfully",
		})
	}
}
