// Package validation checks request bodies against embedded JSON Schemas
// before they reach the services.
package validation

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/cinevault/cinevault/pkg/apperrors"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema names accepted by Validate.
const (
	SchemaRegister    = "register.json"
	SchemaLogin       = "login.json"
	SchemaRefresh     = "refresh.json"
	SchemaMovieCreate = "movie_create.json"
	SchemaMovieUpdate = "movie_update.json"
)

var schemaNames = []string{
	SchemaRegister,
	SchemaLogin,
	SchemaRefresh,
	SchemaMovieCreate,
	SchemaMovieUpdate,
}

// Validator holds the compiled request schemas. Compilation happens once at
// startup; a schema that fails to compile is a programming error.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

func New() (*Validator, error) {
	c := jsonschema.NewCompiler()

	for _, name := range schemaNames {
		raw, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
		}

		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
		}
		if err := c.AddResource(name, doc); err != nil {
			return nil, fmt.Errorf("failed to add schema %s: %w", name, err)
		}
	}

	schemas := make(map[string]*jsonschema.Schema, len(schemaNames))
	for _, name := range schemaNames {
		sch, err := c.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
		}
		schemas[name] = sch
	}

	return &Validator{schemas: schemas}, nil
}

// Validate checks a raw JSON body against the named schema. Failures come
// back as 400 errors carrying the offending fields.
func (v *Validator) Validate(name string, body []byte) error {
	sch, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return apperrors.BadRequest("request body must be valid JSON")
	}

	if err := sch.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return apperrors.BadRequest("invalid request body: " + condense(ve.Error()))
		}
		return apperrors.BadRequest("invalid request body")
	}
	return nil
}

// condense flattens the multi-line validator output into one message.
func condense(msg string) string {
	lines := strings.Split(msg, "\n")
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(strings.TrimLeft(line, "- "))
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "; ")
}
