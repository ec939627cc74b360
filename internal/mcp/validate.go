package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError marks a failure caused by the caller's arguments rather
// than the backend. The dispatcher renders both the same way, but tests and
// future callers can tell the kinds apart.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// ValidateArguments checks a tool invocation's arguments against the tool's
// declared input schema before dispatch. Tools without required fields
// accept absent arguments.
func ValidateArguments(tool *Tool, args map[string]any) error {
	if len(args) == 0 {
		if len(tool.InputSchema.Required) == 0 {
			return nil
		}
		return validationErrorf("Missing arguments")
	}

	schemaJSON, err := json.Marshal(tool.InputSchema)
	if err != nil {
		return fmt.Errorf("failed to marshal input schema for %s: %w", tool.Name, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(args),
	)
	if err != nil {
		return fmt.Errorf("schema validation for %s: %w", tool.Name, err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return validationErrorf("invalid arguments for %s: %s", tool.Name, strings.Join(msgs, "; "))
	}
	return nil
}
