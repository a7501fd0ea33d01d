package routes

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/hkunchal47/formgen/app"
	"github.com/hkunchal47/formgen/engine"
	"github.com/hkunchal47/formgen/httpx"
	"github.com/hkunchal47/formgen/log"
	"github.com/hkunchal47/formgen/model"
)

type responsesBody struct {
	Responses map[string]any `json:"responses"`
}

func loadForm(app app.App, w http.ResponseWriter, r *http.Request) (*model.FormSchema, bool) {
	formId := chi.URLParam(r, "id")

	form, err := app.GetForm(r.Context(), formId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "get_form", formId)
		} else {
			httpx.LogInternalError(w, "db.get_form", err)
		}
		return nil, false
	}
	return form, true
}

// VisibleFields recomputes, for the posted partial answer set, the
// ordered list of fields the respondent should currently see. Called on
// every answer change during preview and respond flows.
func VisibleFields(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := loadForm(app, w, r)
		if !ok {
			return
		}

		body := responsesBody{}
		if err := render.DecodeJSON(r.Body, &body); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		visible := engine.CollectVisible(form.Fields, body.Responses)
		render.JSON(w, r, map[string]any{
			"fields": visible,
		})
	}
}

func SubmitForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := loadForm(app, w, r)
		if !ok {
			return
		}

		body := responsesBody{}
		if err := render.DecodeJSON(r.Body, &body); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if errs := engine.ValidateForm(*form, body.Responses); len(errs) > 0 {
			// nothing is persisted for a rejected submission
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{"errors": errs})
			return
		}

		response, err := app.SaveResponse(r.Context(), form.ID, body.Responses)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_response", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": response.ID,
		})
	}
}

func GetFormResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := loadForm(app, w, r)
		if !ok {
			return
		}

		responses, err := app.ListResponses(r.Context(), form.ID)
		if err != nil {
			httpx.LogInternalError(w, "db.get_responses", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"responses": responses,
		})
	}
}

func DeleteResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responseId := chi.URLParam(r, "id")

		err := app.Store.DeleteResponse(r.Context(), responseId)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httpx.LogNotFound(w, "delete_response", responseId)
			} else {
				httpx.LogInternalError(w, "db.delete_response", err)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
