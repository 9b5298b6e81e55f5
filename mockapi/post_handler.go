package mockapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/blog-frontend/models"
	"github.com/rs/zerolog"
)

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     *Store
}

func newPostHandler(logger zerolog.Logger, store *Store) postHandler {
	logger = logger.With().Str("handlerName", "postHandler").Logger()
	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// listPublished serves GET /posts?tag=&search=&page=&size=
func (h postHandler) listPublished() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size, err := pageRequest(r, 10)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		posts := h.store.PublishedPosts(r.URL.Query().Get("tag"), r.URL.Query().Get("search"))
		h.responder.WriteJSON(w, models.NewPage(posts, page, size))
	}
}

// getBySlug serves GET /posts/{slug}
func (h postHandler) getBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.store.ReadPublishedPost(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

// listAll serves GET /admin/posts?page=&size=
func (h postHandler) listAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size, err := pageRequest(r, 10)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, models.NewPage(h.store.AllPosts(), page, size))
	}
}

// getByID serves GET /admin/posts/{postID}
func (h postHandler) getByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(chi.URLParam(r, "postID"), "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.store.GetPost(id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

// create serves POST /admin/posts
func (h postHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.PostRequest
		if err := decodeJSON(r, "post", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.store.CreatePost(req)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		username, _ := ctxGetUsername(r.Context())
		h.logger.Info().Int64("postID", post.ID).Str("slug", post.Slug).Str("admin", username).Msg("post created")
		h.responder.WriteJSON(w, post)
	}
}

// update serves PUT /admin/posts/{postID}
func (h postHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(chi.URLParam(r, "postID"), "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req models.PostRequest
		if err := decodeJSON(r, "post", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.store.UpdatePost(id, req)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

// delete serves DELETE /admin/posts/{postID}
func (h postHandler) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(chi.URLParam(r, "postID"), "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.DeletePost(id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "post deleted successfully",
		})
	}
}
