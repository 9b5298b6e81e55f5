package mockapi

import (
	"github.com/go-chi/chi/v5"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	postHandler    postHandler
	commentHandler commentHandler
	tagHandler     tagHandler
	authHandler    authHandler
}

// setupRoutes mounts the public, auth and admin routes under /api
func setupRoutes(r chi.Router, handlers routeHandlers, auth authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/posts", handlers.postHandler.listPublished())
		r.Get("/posts/{slug}", handlers.postHandler.getBySlug())
		r.Get("/tags", handlers.tagHandler.list())
		r.Get("/comments", handlers.commentHandler.listApproved())
		r.Post("/comments", handlers.commentHandler.create())
		r.Post("/auth/login", handlers.authHandler.login())

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.authenticate)

			r.Get("/posts", handlers.postHandler.listAll())
			r.Post("/posts", handlers.postHandler.create())
			r.Get("/posts/{postID}", handlers.postHandler.getByID())
			r.Put("/posts/{postID}", handlers.postHandler.update())
			r.Delete("/posts/{postID}", handlers.postHandler.delete())

			r.Get("/comments", handlers.commentHandler.listAll())
			r.Put("/comments/{commentID}/status", handlers.commentHandler.updateStatus())
			r.Delete("/comments/{commentID}", handlers.commentHandler.delete())

			r.Post("/tags", handlers.tagHandler.create())
			r.Delete("/tags/{tagID}", handlers.tagHandler.delete())
		})
	})
}
