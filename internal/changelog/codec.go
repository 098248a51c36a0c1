package changelog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies one of the three interchangeable source syntaxes.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Extension returns the canonical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	default:
		return "yml"
	}
}

// ParseFormat parses a format name ("yaml", "yml", "toml", "json").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatYAML, fmt.Errorf("unknown format %q (valid: yaml, toml, json)", s)
	}
}

// FormatForPath determines the source format from a file extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return FormatYAML, fmt.Errorf("unable to determine format of %s without an extension", path)
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return FormatYAML, fmt.Errorf("unsupported file extension %q for %s", ext, path)
	}
	return f, nil
}

// Decode parses raw bytes in the given syntax into the canonical model.
//
// All three syntaxes converge on the same pipeline: the input is parsed
// into a generic document tree, checked against the changelog schema
// (which attaches a field path to every violation), and only then
// decoded into the typed model. Duplicate mapping keys are rejected in
// every syntax; silent last-key-wins deduplication would lose data.
func Decode(data []byte, f Format) (*Changelog, error) {
	tree, derr := decodeTree(data, f)
	if derr != nil {
		return nil, derr
	}
	tree = canonicalizeTree(tree)

	violations, err := checkSchema(tree)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return nil, &DecodeError{Format: f, Violations: violations}
	}

	// The tree is schema-clean, so one typed decode path serves all
	// three syntaxes.
	canonical, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("marshaling document tree: %w", err)
	}
	var c Changelog
	if err := json.Unmarshal(canonical, &c); err != nil {
		return nil, fmt.Errorf("decoding document tree: %w", err)
	}
	if c.Versions == nil {
		c.Versions = map[string]Release{}
	}
	return &c, nil
}

// Encode serializes the model into the given syntax. Optional fields
// that are absent and categories that are empty are omitted entirely,
// never emitted as nulls or empty arrays. Dates are always strings.
func Encode(c *Changelog, f Format, pretty bool) ([]byte, error) {
	n := c.normalized()

	switch f {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(n); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return buf.Bytes(), nil

	case FormatTOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		if !pretty {
			enc.Indent = ""
		}
		if err := enc.Encode(n); err != nil {
			return nil, fmt.Errorf("encoding toml: %w", err)
		}
		return buf.Bytes(), nil

	case FormatJSON:
		var data []byte
		var err error
		if pretty {
			data, err = json.MarshalIndent(n, "", "  ")
		} else {
			data, err = json.Marshal(n)
		}
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(data, '\n'), nil

	default:
		return nil, fmt.Errorf("unknown format %v", f)
	}
}

// decodeTree parses raw bytes into a generic document tree, surfacing
// syntax errors (including duplicate mapping keys) as DecodeErrors.
func decodeTree(data []byte, f Format) (any, *DecodeError) {
	syntaxError := func(err error) *DecodeError {
		return &DecodeError{
			Format:     f,
			Violations: []FieldError{{Message: err.Error()}},
		}
	}

	switch f {
	case FormatYAML:
		// yaml.v3 rejects duplicate mapping keys natively.
		var tree any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, syntaxError(err)
		}
		return tree, nil

	case FormatTOML:
		// BurntSushi rejects redefined keys and tables natively.
		var tree map[string]any
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, syntaxError(err)
		}
		return tree, nil

	case FormatJSON:
		var tree any
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, syntaxError(err)
		}
		// encoding/json silently keeps the last of duplicate keys, so
		// scan the token stream to reject them instead.
		if dups := jsonDuplicateKeys(data); len(dups) > 0 {
			return nil, &DecodeError{Format: f, Violations: dups}
		}
		return tree, nil

	default:
		return nil, syntaxError(fmt.Errorf("unknown format %v", f))
	}
}

// canonicalizeTree normalizes format-specific value types so the schema
// sees the same shapes no matter which syntax produced the tree. Bare
// calendar dates (which YAML and TOML parse into native date values)
// become YYYY-MM-DD strings; date-times keep their time component and
// are rejected by the schema's date pattern at the right field path.
func canonicalizeTree(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for key, val := range t {
			t[key] = canonicalizeTree(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for key, val := range t {
			m[fmt.Sprint(key)] = canonicalizeTree(val)
		}
		return m
	case []any:
		for i := range t {
			t[i] = canonicalizeTree(t[i])
		}
		return t
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format(time.RFC3339)
	default:
		return v
	}
}

// jsonDuplicateKeys walks the JSON token stream and reports every
// object key that appears more than once, with its field path.
func jsonDuplicateKeys(data []byte) []FieldError {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var dups []FieldError
	// Input already passed json.Unmarshal, so token errors cannot occur.
	_ = scanJSONValue(dec, nil, &dups)
	return dups
}

func scanJSONValue(dec *json.Decoder, path []string, dups *[]FieldError) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return nil // scalar
	}

	switch delim {
	case '{':
		seen := make(map[string]bool)
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			key, _ := keyTok.(string)
			childPath := append(path[:len(path):len(path)], key)
			if seen[key] {
				*dups = append(*dups, FieldError{
					Field:   strings.Join(childPath, "/"),
					Message: "duplicate key",
				})
			}
			seen[key] = true
			if err := scanJSONValue(dec, childPath, dups); err != nil {
				return err
			}
		}
	case '[':
		for i := 0; dec.More(); i++ {
			childPath := append(path[:len(path):len(path)], strconv.Itoa(i))
			if err := scanJSONValue(dec, childPath, dups); err != nil {
				return err
			}
		}
	}

	// Consume the closing delimiter.
	_, err = dec.Token()
	return err
}
