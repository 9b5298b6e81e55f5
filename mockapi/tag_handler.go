package mockapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type tagHandler struct {
	responder Responder
	store     *Store
}

func newTagHandler(logger zerolog.Logger, store *Store) tagHandler {
	return tagHandler{
		responder: NewResponder(logger.With().Str("handlerName", "tagHandler").Logger()),
		store:     store,
	}
}

// list serves GET /tags
func (h tagHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.store.Tags())
	}
}

// create serves POST /admin/tags
func (h tagHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"name"`
		}
		if err := decodeJSON(r, "tag", &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tag, err := h.store.CreateTag(body.Name)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, tag)
	}
}

// delete serves DELETE /admin/tags/{tagID}
func (h tagHandler) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(chi.URLParam(r, "tagID"), "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.DeleteTag(id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "tag deleted successfully",
		})
	}
}
