package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/taskdeck/taskdeck-api/internal/api"
	apiMiddleware "github.com/taskdeck/taskdeck-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	categoryHandler := api.NewCategoryHandler(app.categoryService, app.logger)
	tagHandler := api.NewTagHandler(app.tagService, app.logger)
	profileHandler := api.NewProfileHandler(app.userStore, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/tasks", taskHandler.ListTasks)
			r.Post("/tasks", taskHandler.CreateTask)
			r.Get("/tasks/{id}", taskHandler.GetTask)
			r.Put("/tasks/{id}", taskHandler.UpdateTask)
			r.Patch("/tasks/{id}", taskHandler.PatchTask)
			r.Delete("/tasks/{id}", taskHandler.DeleteTask)

			r.Get("/categories", categoryHandler.ListCategories)
			r.Post("/categories", categoryHandler.CreateCategory)
			r.Get("/categories/{id}", categoryHandler.GetCategory)
			r.Put("/categories/{id}", categoryHandler.UpdateCategory)
			r.Patch("/categories/{id}", categoryHandler.PatchCategory)
			r.Delete("/categories/{id}", categoryHandler.DeleteCategory)

			r.Get("/tags", tagHandler.ListTags)
			r.Post("/tags", tagHandler.CreateTag)
			r.Get("/tags/{id}", tagHandler.GetTag)
			r.Put("/tags/{id}", tagHandler.UpdateTag)
			r.Patch("/tags/{id}", tagHandler.UpdateTag)
			r.Delete("/tags/{id}", tagHandler.DeleteTag)

			r.Get("/profile", profileHandler.GetProfile)
			r.Put("/profile", profileHandler.PutProfile)
		})
	})

	// The checkout flow lives outside /api and requires no session.
	if app.paymentService != nil {
		paymentHandler := api.NewPaymentHandler(app.paymentService, app.logger)
		r.Route("/payments", func(r chi.Router) {
			r.Post("/checkout", paymentHandler.Checkout)
			r.Get("/success", paymentHandler.Success)
			r.Get("/cancel", paymentHandler.Cancel)
		})
	}

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
