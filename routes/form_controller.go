package routes

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/hkunchal47/formgen/app"
	"github.com/hkunchal47/formgen/httpx"
	"github.com/hkunchal47/formgen/log"
	"github.com/hkunchal47/formgen/model"
	"github.com/hkunchal47/formgen/schema"
)

func GenerateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Prompt string `json:"prompt"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil || body.Prompt == "" {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		form, errs := app.Generator.Generate(r.Context(), body.Prompt)
		if len(errs) > 0 {
			log.Debugf("generate_form: rejected (%d errors)", len(errs))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{"errors": errs})
			return
		}

		render.JSON(w, r, map[string]any{
			"schema": form,
			"errors": []model.SchemaError{},
		})
	}
}

// decodeCandidate reads a request body once and hands back both the
// loosely-typed tree for the validator and the raw bytes for the typed
// decode that follows a successful validation.
func decodeCandidate(r *http.Request) (candidate any, raw json.RawMessage, err error) {
	err = render.DecodeJSON(r.Body, &raw)
	if err != nil {
		return
	}
	err = json.Unmarshal(raw, &candidate)
	return
}

func saveCandidate(app app.App, w http.ResponseWriter, r *http.Request, id string) {
	candidate, raw, err := decodeCandidate(r)
	if err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
		return
	}

	if errs := schema.Validate(candidate); len(errs) > 0 {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, map[string]any{"errors": errs})
		return
	}

	form := model.FormSchema{}
	if err := json.Unmarshal(raw, &form); err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_schema")
		return
	}
	schema.AssignIDs(form.Fields)

	if id != "" {
		// wholesale replacement of an existing form's tree
		if _, err := app.GetForm(r.Context(), id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httpx.LogNotFound(w, "update_form", id)
			} else {
				httpx.LogInternalError(w, "db.get_form", err)
			}
			return
		}
		form.ID = id
	} else {
		form.ID = ""
	}

	if err := app.SaveForm(r.Context(), &form); err != nil {
		httpx.LogInternalError(w, "db.save_form", err)
		return
	}

	if id == "" {
		render.Status(r, http.StatusCreated)
	}
	render.JSON(w, r, map[string]any{
		"id": form.ID,
	})
}

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saveCandidate(app, w, r, "")
	}
}

func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saveCandidate(app, w, r, chi.URLParam(r, "id"))
	}
}

// ImportForm accepts a previously exported schema document. It goes
// through the same validate-then-stamp pipeline as any other candidate;
// any id carried by the document is discarded in favor of a fresh one.
func ImportForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saveCandidate(app, w, r, "")
	}
}

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forms, err := app.ListForms(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.get_forms", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"forms": forms,
		})
	}
}

func GetFormById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		form, err := app.GetForm(r.Context(), formId)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httpx.LogNotFound(w, "get_form", formId)
			} else {
				httpx.LogInternalError(w, "db.get_form", err)
			}
			return
		}

		render.JSON(w, r, form)
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		err := app.Store.DeleteForm(r.Context(), formId)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httpx.LogNotFound(w, "delete_form", formId)
			} else {
				httpx.LogInternalError(w, "db.delete_form", err)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ExportForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		doc, err := app.Store.ExportForm(r.Context(), formId)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httpx.LogNotFound(w, "export_form", formId)
			} else {
				httpx.LogInternalError(w, "db.export_form", err)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="form-`+formId+`.json"`)
		w.Write(doc)
	}
}
