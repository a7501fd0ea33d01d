package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSchemaJSON = `{
	"title": "Contact Form",
	"fields": [
		{"type": "text", "label": "Name", "required": true},
		{"type": "email", "label": "Email"}
	]
}`

func completionServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status >= 300 {
			w.Write([]byte(`{"error": {"message": "invalid api key"}}`))
			return
		}
		body, err := json.Marshal(map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"content": content}},
			},
		})
		require.NoError(t, err)
		w.Write(body)
	}))
}

func testClient(endpoint string) *Client {
	return &Client{
		HTTPClient: http.DefaultClient,
		APIKey:     "test-key",
		Model:      "gpt-4o-mini",
		Endpoint:   endpoint,
	}
}

func TestClient_GenerateAcceptsValidCompletion(t *testing.T) {
	srv := completionServer(t, http.StatusOK, validSchemaJSON)
	defer srv.Close()

	form, errs := testClient(srv.URL).Generate(context.Background(), "a contact form")
	require.Empty(t, errs)
	require.NotNil(t, form)

	assert.Equal(t, "Contact Form", form.Title)
	require.Len(t, form.Fields, 2)
	assert.Equal(t, "field-0", form.Fields[0].ID)
	assert.Equal(t, "field-1", form.Fields[1].ID)
}

func TestClient_GenerateRejectsStructurallyInvalidCompletion(t *testing.T) {
	srv := completionServer(t, http.StatusOK, `{"fields": [{"type": "bogus", "options": []}]}`)
	defer srv.Close()

	form, errs := testClient(srv.URL).Generate(context.Background(), "anything")
	assert.Nil(t, form)
	require.Len(t, errs, 3)
	assert.Equal(t, "Schema must have a title", errs[0].Message)
}

func TestClient_GenerateEndpointError(t *testing.T) {
	srv := completionServer(t, http.StatusUnauthorized, "")
	defer srv.Close()

	form, errs := testClient(srv.URL).Generate(context.Background(), "anything")
	assert.Nil(t, form)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "invalid api key")
	assert.NotEmpty(t, errs[0].Suggestion)
}

func TestClient_GenerateTransportFailure(t *testing.T) {
	srv := completionServer(t, http.StatusOK, validSchemaJSON)
	srv.Close() // nothing listening anymore

	form, errs := testClient(srv.URL).Generate(context.Background(), "anything")
	assert.Nil(t, form)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Suggestion, "network")
}

func TestParseSchema(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bare JSON",
			content: validSchemaJSON,
		},
		{
			name:    "fenced JSON",
			content: "```json\n" + validSchemaJSON + "\n```",
		},
		{
			name:    "anonymous fence",
			content: "```\n" + validSchemaJSON + "\n```",
		},
		{
			name:    "prose around the object",
			content: "Here is your form:\n" + validSchemaJSON + "\nLet me know if you need more.",
		},
		{
			name:    "no JSON at all",
			content: "Sorry, I cannot help with that.",
			wantErr: "parsing generated schema",
		},
		{
			name:    "truncated JSON",
			content: `{"title": "T", "fields": [{"type": "text",`,
			wantErr: "parsing generated schema",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form, errs := ParseSchema(tt.content)
			if tt.wantErr != "" {
				assert.Nil(t, form)
				require.Len(t, errs, 1)
				assert.Contains(t, errs[0].Message, tt.wantErr)
				assert.Contains(t, errs[0].Suggestion, "rephrasing")
				return
			}
			require.Empty(t, errs)
			require.NotNil(t, form)
			assert.Equal(t, "Contact Form", form.Title)
			for _, f := range form.Fields {
				assert.NotEmpty(t, f.ID)
			}
		})
	}
}
