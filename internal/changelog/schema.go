package changelog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// schemaURL is the canonical identifier of the changelog schema.
const schemaURL = "https://changelog-md.github.io/1.0/changelog"

// schemaJSON is the hand-maintained JSON Schema for the document model.
// It is the single definition of the schema, consumed both for decode
// and post-mutation validation and for the `schema` export command.
//
//go:embed schema.json
var schemaJSON []byte

// Schema returns the changelog JSON Schema document.
func Schema() []byte {
	out := make([]byte, len(schemaJSON))
	copy(out, schemaJSON)
	return out
}

// compiledSchema compiles the embedded schema once. The schema ships
// inside the binary, so a compile failure is a build defect.
var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	sch, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling changelog schema: %w", err)
	}
	return sch, nil
})

// checkSchema validates a JSON-decoded document tree against the
// changelog schema and returns one FieldError per violation.
func checkSchema(doc any) ([]FieldError, error) {
	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}

	err = sch.Validate(doc)
	if err == nil {
		return nil, nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("validating against changelog schema: %w", err)
	}

	violations := flattenSchemaError(ve, nil)
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].Field != violations[j].Field {
			return violations[i].Field < violations[j].Field
		}
		return violations[i].Message < violations[j].Message
	})
	return violations, nil
}

// flattenSchemaError walks the cause tree and collects the leaf
// violations, which carry the most specific instance locations.
func flattenSchemaError(ve *jsonschema.ValidationError, acc []FieldError) []FieldError {
	if len(ve.Causes) == 0 {
		return append(acc, FieldError{
			Field:   fieldPath(ve.InstanceLocation),
			Message: ve.Message,
		})
	}
	for _, cause := range ve.Causes {
		acc = flattenSchemaError(cause, acc)
	}
	return acc
}

// fieldPath converts a JSON pointer instance location into the
// slash-separated field paths used in diagnostics.
func fieldPath(pointer string) string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return ""
	}
	segments := strings.Split(pointer, "/")
	for i, seg := range segments {
		seg = strings.ReplaceAll(seg, "~1", "/")
		segments[i] = strings.ReplaceAll(seg, "~0", "~")
	}
	return strings.Join(segments, "/")
}

// modelToTree marshals a Changelog through JSON into the generic tree
// shape the schema validator consumes.
func modelToTree(c *Changelog) (any, error) {
	data, err := json.Marshal(c.normalized())
	if err != nil {
		return nil, fmt.Errorf("marshaling changelog: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling changelog tree: %w", err)
	}
	return doc, nil
}
