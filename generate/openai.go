package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/hkunchal47/formgen/model"
	"github.com/hkunchal47/formgen/schema"
)

const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

// Client generates schemas through an OpenAI-compatible chat-completions
// endpoint.
type Client struct {
	HTTPClient *http.Client
	APIKey     string
	Model      string
	// Endpoint overrides the OpenAI URL; used by tests and proxies.
	Endpoint string
}

type chatRequest struct {
	Model          string         `json:"model"`
	MaxTokens      int            `json:"max_tokens"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Generate(ctx context.Context, prompt string) (*model.FormSchema, []model.SchemaError) {
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	body, err := json.Marshal(chatRequest{
		Model:          c.Model,
		MaxTokens:      4000,
		Messages:       []chatMessage{{Role: "user", Content: buildPrompt(prompt)}},
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, transportError(errors.Wrap(err, "encoding request"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, transportError(errors.Wrap(err, "building request"))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, transportError(errors.Wrap(err, "calling generation endpoint"))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(errors.Wrap(err, "reading response"))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil && resp.StatusCode < 300 {
		return nil, parseError(errors.Wrap(err, "decoding completion response"))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := resp.Status
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return nil, []model.SchemaError{{
			Message:    fmt.Sprintf("Generation endpoint returned an error: %s", msg),
			Suggestion: "Check your API key and connection, then try again.",
		}}
	}

	if len(parsed.Choices) == 0 {
		return nil, parseError(errors.New("completion response carried no choices"))
	}

	return ParseSchema(parsed.Choices[0].Message.Content)
}

var (
	fenceOpen  = regexp.MustCompile("(?i)^```(?:json)?[ \t]*\n?")
	fenceClose = regexp.MustCompile("\n?```[ \t]*$")
	jsonObject = regexp.MustCompile(`(?s)\{.*\}`)
)

// ParseSchema extracts, parses, and validates a schema from a model
// completion. Surrounding code fences are stripped and the first
// top-level JSON object is fished out of any prose that leaked in; the
// result is accepted only after passing the structural validator, and is
// returned already id-stamped.
func ParseSchema(content string) (*model.FormSchema, []model.SchemaError) {
	clean := strings.TrimSpace(content)
	clean = fenceOpen.ReplaceAllString(clean, "")
	clean = fenceClose.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(clean)
	if match := jsonObject.FindString(clean); match != "" {
		clean = match
	}

	var candidate any
	if err := json.Unmarshal([]byte(clean), &candidate); err != nil {
		return nil, parseError(errors.Wrap(err, "parsing generated schema"))
	}

	if errs := schema.Validate(candidate); len(errs) > 0 {
		return nil, errs
	}

	var form model.FormSchema
	if err := json.Unmarshal([]byte(clean), &form); err != nil {
		return nil, parseError(errors.Wrap(err, "parsing generated schema"))
	}

	schema.AssignIDs(form.Fields)
	return &form, nil
}

func transportError(err error) []model.SchemaError {
	return []model.SchemaError{{
		Message:    err.Error(),
		Suggestion: "Check your network connection and try again.",
	}}
}

func parseError(err error) []model.SchemaError {
	return []model.SchemaError{{
		Message:    err.Error(),
		Suggestion: "The model returned invalid JSON. Try rephrasing your request and generating again.",
	}}
}

func buildPrompt(userPrompt string) string {
	return fmt.Sprintf(`You are an expert form schema generator. Create a JSON schema for a dynamic conditional form.

CRITICAL REQUIREMENTS:
1. Output MUST be valid JSON only - no markdown, no code blocks, no explanations
2. Valid field types: text, number, email, radio, checkbox, select, multiselect, textarea, date
3. Add "conditions" to fields that need conditional logic - map answer values to arrays of new fields
4. Conditions support nested/recursive logic
5. Required fields: type, label. Optional: options (for radio/checkbox/select/multiselect), required, placeholder, conditions
6. Make the form logical, user-friendly, and match the user's request

User Request: %q

Generate a complete form schema following this exact structure:
{
  "title": "Descriptive Form Title",
  "description": "Brief description of the form purpose",
  "fields": [
    {
      "type": "radio",
      "label": "Question text here",
      "options": ["Option 1", "Option 2", "Option 3"],
      "required": true,
      "conditions": {
        "Option 1": [
          {
            "type": "text",
            "label": "Follow-up question for Option 1",
            "required": false
          }
        ],
        "Option 2": [
          {
            "type": "textarea",
            "label": "Please provide details",
            "required": true
          }
        ],
        "Option 3": []
      }
    }
  ]
}

IMPORTANT: Return ONLY the JSON object. No markdown, no code blocks, no additional text.`, userPrompt)
}
