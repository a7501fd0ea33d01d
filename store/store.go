// Package store persists form schemas and responses in SQLite. A form's
// whole field tree is stored as one JSON document, so edits replace the
// tree wholesale; deleting a form cascades to its responses through the
// foreign key.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"

	"github.com/hkunchal47/formgen/model"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveForm upserts a schema. A form without an id gets one, plus its
// creation timestamp; UpdatedAt is refreshed either way. The passed
// schema is updated in place so the caller sees the assigned id.
func (s *Store) SaveForm(ctx context.Context, form *model.FormSchema) error {
	now := time.Now().UTC().Truncate(time.Second)
	if form.ID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return errors.Wrap(err, "generating form id")
		}
		form.ID = id.String()
		form.CreatedAt = now
	}
	form.UpdatedAt = now

	fields, err := json.Marshal(form.Fields)
	if err != nil {
		return errors.Wrap(err, "encoding form fields")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO form (id, title, description, fields, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			fields = excluded.fields,
			updated_at = excluded.updated_at`,
		form.ID,
		form.Title,
		form.Description,
		string(fields),
		form.CreatedAt,
		form.UpdatedAt,
	)
	return errors.Wrap(err, "saving form")
}

func (s *Store) GetForm(ctx context.Context, id string) (*model.FormSchema, error) {
	form := model.FormSchema{ID: id}
	var fields string
	err := s.db.QueryRowContext(ctx, `
		SELECT title, description, fields, created_at, updated_at
		FROM form
		WHERE id = ?`,
		id,
	).Scan(&form.Title, &form.Description, &fields, &form.CreatedAt, &form.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "loading form")
	}

	if err := json.Unmarshal([]byte(fields), &form.Fields); err != nil {
		return nil, errors.Wrapf(err, "decoding fields of form %s", id)
	}
	return &form, nil
}

func (s *Store) ListForms(ctx context.Context) ([]model.FormSchema, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, fields, created_at, updated_at
		FROM form
		ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.Wrap(err, "listing forms")
	}
	defer rows.Close()

	forms := []model.FormSchema{}
	for rows.Next() {
		form := model.FormSchema{}
		var fields string
		err = rows.Scan(&form.ID, &form.Title, &form.Description, &fields, &form.CreatedAt, &form.UpdatedAt)
		if err != nil {
			return nil, errors.Wrap(err, "scanning form")
		}
		if err := json.Unmarshal([]byte(fields), &form.Fields); err != nil {
			return nil, errors.Wrapf(err, "decoding fields of form %s", form.ID)
		}
		forms = append(forms, form)
	}
	return forms, rows.Err()
}

// DeleteForm removes a form and, through the cascade, all of its
// responses. Returns sql.ErrNoRows when the id is unknown.
func (s *Store) DeleteForm(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM form WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "deleting form")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "deleting form")
	}
	if n < 1 {
		return sql.ErrNoRows
	}
	return nil
}

// ExportForm renders a stored schema as an indented, human-diffable JSON
// document, re-importable as an editable candidate.
func (s *Store) ExportForm(ctx context.Context, id string) ([]byte, error) {
	form, err := s.GetForm(ctx, id)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(form, "", "  ")
}

func (s *Store) SaveResponse(ctx context.Context, formID string, answers map[string]any) (*model.FormResponse, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, errors.Wrap(err, "generating response id")
	}

	response := model.FormResponse{
		ID:          id.String(),
		FormID:      formID,
		Responses:   answers,
		SubmittedAt: time.Now().UTC().Truncate(time.Second),
	}

	encoded, err := json.Marshal(answers)
	if err != nil {
		return nil, errors.Wrap(err, "encoding response values")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO response (id, form_id, responses, submitted_at)
		VALUES (?, ?, ?, ?)`,
		response.ID,
		response.FormID,
		string(encoded),
		response.SubmittedAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "saving response")
	}
	return &response, nil
}

func (s *Store) GetResponse(ctx context.Context, id string) (*model.FormResponse, error) {
	response := model.FormResponse{ID: id}
	var answers string
	err := s.db.QueryRowContext(ctx, `
		SELECT form_id, responses, submitted_at
		FROM response
		WHERE id = ?`,
		id,
	).Scan(&response.FormID, &answers, &response.SubmittedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "loading response")
	}

	if err := json.Unmarshal([]byte(answers), &response.Responses); err != nil {
		return nil, errors.Wrapf(err, "decoding values of response %s", id)
	}
	return &response, nil
}

func (s *Store) ListResponses(ctx context.Context, formID string) ([]model.FormResponse, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, responses, submitted_at
		FROM response
		WHERE form_id = ?
		ORDER BY submitted_at, id`,
		formID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "listing responses")
	}
	defer rows.Close()

	responses := []model.FormResponse{}
	for rows.Next() {
		response := model.FormResponse{FormID: formID}
		var answers string
		err = rows.Scan(&response.ID, &answers, &response.SubmittedAt)
		if err != nil {
			return nil, errors.Wrap(err, "scanning response")
		}
		if err := json.Unmarshal([]byte(answers), &response.Responses); err != nil {
			return nil, errors.Wrapf(err, "decoding values of response %s", response.ID)
		}
		responses = append(responses, response)
	}
	return responses, rows.Err()
}

func (s *Store) DeleteResponse(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM response WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "deleting response")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "deleting response")
	}
	if n < 1 {
		return sql.ErrNoRows
	}
	return nil
}
