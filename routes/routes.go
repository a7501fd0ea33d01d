package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hkunchal47/formgen/app"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	// form building
	api.Post("/forms/generate", GenerateForm(app))
	api.Post("/forms", CreateForm(app))
	api.Get("/forms", ListForms(app))
	api.Post("/forms/import", ImportForm(app))
	api.Get("/forms/{id}", GetFormById(app))
	api.Put("/forms/{id}", UpdateForm(app))
	api.Delete("/forms/{id}", DeleteForm(app))
	api.Get("/forms/{id}/export", ExportForm(app))

	// respondent flow
	api.Post("/forms/{id}/visible", VisibleFields(app))
	api.Post("/forms/{id}/responses", SubmitForm(app))
	api.Get("/forms/{id}/responses", GetFormResponses(app))
	api.Delete("/responses/{id}", DeleteResponse(app))

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}
