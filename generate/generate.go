// Package generate turns free-text intent into a validated, id-stamped
// form schema. The external strategy calls a chat-completions endpoint;
// the offline strategy assembles a schema from keywords. Callers never
// receive a schema that has not passed structural validation and id
// assignment.
package generate

import (
	"context"
	"net/http"
	"time"

	"github.com/hkunchal47/formgen/config"
	"github.com/hkunchal47/formgen/log"
	"github.com/hkunchal47/formgen/model"
)

// Generator produces a schema candidate from a natural-language prompt.
// On failure the schema is nil and the errors describe what went wrong;
// a transport or parse failure surfaces as a single error with a
// remediation hint rather than a panic or a Go error.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*model.FormSchema, []model.SchemaError)
}

// New picks the strategy for the given configuration: the OpenAI-backed
// client when an API key is configured, the deterministic keyword
// generator otherwise. The fallback is announced at warn level so the
// degradation is never silent.
func New(cfg config.Config) Generator {
	if cfg.OpenAIKey == "" {
		log.Warn("generate: no OpenAI API key configured, using offline keyword generator")
		return Fallback{}
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		APIKey:     cfg.OpenAIKey,
		Model:      cfg.OpenAIModel,
	}
}
