package changelog

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestDecode_ValidSources(t *testing.T) {
	t.Parallel()

	expected := &Changelog{
		Title:       "Demo",
		Description: "All changes.",
		Repository:  "https://github.com/acme/demo",
		Unreleased:  Changes{Added: []string{"First addition"}},
		Versions: map[string]Release{
			"1.0.0": {
				Tag:     "v1.0.0",
				Date:    "2025-02-24",
				Changes: Changes{Fixed: []string{"A bug"}},
			},
		},
	}

	tests := map[string]struct {
		format Format
		source string
	}{
		"yaml": {
			format: FormatYAML,
			source: `
title: Demo
description: All changes.
repository: https://github.com/acme/demo
unreleased:
  added:
    - First addition
versions:
  "1.0.0":
    tag: v1.0.0
    date: "2025-02-24"
    fixed:
      - A bug
`,
		},
		"yaml with unquoted date scalar": {
			format: FormatYAML,
			source: `
title: Demo
description: All changes.
repository: https://github.com/acme/demo
unreleased:
  added:
    - First addition
versions:
  "1.0.0":
    tag: v1.0.0
    date: 2025-02-24
    fixed:
      - A bug
`,
		},
		"toml": {
			format: FormatTOML,
			source: `
title = "Demo"
description = "All changes."
repository = "https://github.com/acme/demo"

[unreleased]
added = ["First addition"]

[versions."1.0.0"]
tag = "v1.0.0"
date = "2025-02-24"
fixed = ["A bug"]
`,
		},
		"json": {
			format: FormatJSON,
			source: `{
  "title": "Demo",
  "description": "All changes.",
  "repository": "https://github.com/acme/demo",
  "unreleased": {"added": ["First addition"]},
  "versions": {
    "1.0.0": {"tag": "v1.0.0", "date": "2025-02-24", "fixed": ["A bug"]}
  }
}`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode([]byte(tt.source), tt.format)
			require.NoError(t, err)
			assert.Equal(t, expected, got)
		})
	}
}

func TestDecode_NullAndAbsentOptionalFields(t *testing.T) {
	t.Parallel()

	withNulls := `{
  "title": "Demo",
  "description": "d",
  "repository": "r",
  "unreleased": {},
  "versions": {
    "1.0.0": {"tag": "1.0.0", "date": "2025-02-24", "description": null, "yanked": null}
  }
}`
	absent := `{
  "title": "Demo",
  "description": "d",
  "repository": "r",
  "unreleased": {},
  "versions": {
    "1.0.0": {"tag": "1.0.0", "date": "2025-02-24"}
  }
}`

	a, err := Decode([]byte(withNulls), FormatJSON)
	require.NoError(t, err)
	b, err := Decode([]byte(absent), FormatJSON)
	require.NoError(t, err)

	// "present with null" and "absent" are the same canonical state.
	assert.Equal(t, b, a)
	assert.Nil(t, a.Versions["1.0.0"].Description)
	assert.Nil(t, a.Versions["1.0.0"].Yanked)
}

func TestDecode_FieldPathDiagnostics(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		format      Format
		source      string
		wantField   string
		wantMessage string
	}{
		"invalid date": {
			format: FormatYAML,
			source: `
title: Demo
description: d
repository: r
unreleased: {}
versions:
  "1.0.0":
    tag: "1.0.0"
    date: "2025-2-24"
`,
			wantField:   "versions/1.0.0/date",
			wantMessage: "pattern",
		},
		"missing tag": {
			format: FormatYAML,
			source: `
title: Demo
description: d
repository: r
unreleased: {}
versions:
  "1.0.0":
    date: "2025-02-24"
`,
			wantField:   "versions/1.0.0",
			wantMessage: "tag",
		},
		"unknown field in release": {
			format: FormatYAML,
			source: `
title: Demo
description: d
repository: r
unreleased: {}
versions:
  "1.0.0":
    tag: "1.0.0"
    date: "2025-02-24"
    codename: chonk
`,
			wantField:   "versions/1.0.0",
			wantMessage: "codename",
		},
		"unknown top-level field": {
			format:      FormatJSON,
			source:      `{"title":"t","description":"d","repository":"r","unreleased":{},"versions":{},"extra":1}`,
			wantField:   "",
			wantMessage: "extra",
		},
		"non-string change entry": {
			format:      FormatJSON,
			source:      `{"title":"t","description":"d","repository":"r","unreleased":{"added":[1]},"versions":{}}`,
			wantField:   "unreleased/added/0",
			wantMessage: "string",
		},
		"datetime instead of date": {
			format: FormatTOML,
			source: `
title = "Demo"
description = "d"
repository = "r"

[unreleased]

[versions."1.0.0"]
tag = "1.0.0"
date = 2025-02-24T10:00:00Z
`,
			wantField:   "versions/1.0.0/date",
			wantMessage: "pattern",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode([]byte(tt.source), tt.format)
			require.Error(t, err)

			var derr *DecodeError
			require.ErrorAs(t, err, &derr)
			require.NotEmpty(t, derr.Violations)

			found := false
			for _, v := range derr.Violations {
				if v.Field == tt.wantField && strings.Contains(v.Message, tt.wantMessage) {
					found = true
				}
			}
			assert.True(t, found, "expected violation at %q mentioning %q, got %v",
				tt.wantField, tt.wantMessage, derr.Violations)
		})
	}
}

func TestDecode_DuplicateKeysRejected(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		format Format
		source string
	}{
		"json duplicate version keys": {
			format: FormatJSON,
			source: `{
  "title": "t", "description": "d", "repository": "r", "unreleased": {},
  "versions": {
    "1.0.0": {"tag": "1.0.0", "date": "2025-01-01"},
    "1.0.0": {"tag": "v1", "date": "2025-01-02"}
  }
}`,
		},
		"yaml duplicate version keys": {
			format: FormatYAML,
			source: `
title: t
description: d
repository: r
unreleased: {}
versions:
  "1.0.0":
    tag: "1.0.0"
    date: "2025-01-01"
  "1.0.0":
    tag: v1
    date: "2025-01-02"
`,
		},
		"toml duplicate version tables": {
			format: FormatTOML,
			source: `
title = "t"
description = "d"
repository = "r"

[unreleased]

[versions."1.0.0"]
tag = "1.0.0"
date = "2025-01-01"

[versions."1.0.0"]
tag = "v1"
date = "2025-01-02"
`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode([]byte(tt.source), tt.format)
			require.Error(t, err)

			var derr *DecodeError
			assert.ErrorAs(t, err, &derr)
		})
	}
}

func TestDecode_MalformedSyntax(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		format Format
		source string
	}{
		"yaml tab indentation":  {FormatYAML, "title: x\n\tdescription: y\n"},
		"toml missing value":    {FormatTOML, "title =\n"},
		"json trailing garbage": {FormatJSON, `{"title": "x"} trailing`},
		"json empty input":      {FormatJSON, ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode([]byte(tt.source), tt.format)
			var derr *DecodeError
			require.ErrorAs(t, err, &derr)
		})
	}
}

func TestEncode_OmitsEmptyOptionalFields(t *testing.T) {
	t.Parallel()

	c := &Changelog{
		Title:       "Demo",
		Description: "d",
		Repository:  "r",
		Unreleased:  Changes{Added: []string{"x"}, Changed: []string{}},
		Versions: map[string]Release{
			"1.0.0": {Tag: "1.0.0", Date: "2025-02-24", Changes: Changes{Added: []string{"y"}}},
		},
	}

	for _, format := range []Format{FormatYAML, FormatTOML, FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			t.Parallel()

			data, err := Encode(c, format, true)
			require.NoError(t, err)

			text := string(data)
			assert.NotContains(t, text, "changed")
			assert.NotContains(t, text, "yanked")
			assert.NotContains(t, text, "null")
		})
	}
}

func TestEncode_PrettyJSON(t *testing.T) {
	t.Parallel()

	c := New("")

	pretty, err := Encode(c, FormatJSON, true)
	require.NoError(t, err)
	compact, err := Encode(c, FormatJSON, false)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(string(pretty), "\n"))
	assert.True(t, strings.HasSuffix(string(compact), "\n"))
	assert.Contains(t, string(pretty), "\n  \"title\"")
	assert.NotContains(t, string(compact), "\n  ")
}

func TestRoundTrip_AllFormats(t *testing.T) {
	t.Parallel()

	models := map[string]*Changelog{
		"seed template": New("https://github.com/acme/demo"),
		"full document": {
			Title:       "Demo",
			Description: "Line one.\n\nLine two.\n",
			Repository:  "https://github.com/acme/demo",
			Unreleased:  Changes{Added: []string{"First addition"}, Security: []string{"CVE fix"}},
			Versions: map[string]Release{
				"1.0.0": {
					Tag:         "v1.0.0",
					Date:        "2025-02-24",
					Description: strPtr("The big one."),
					Changes:     Changes{Added: []string{"Everything"}},
				},
				"0.9.0": {
					Tag:     "v0.9.0",
					Date:    "2024-11-01",
					Yanked:  strPtr("broke the build"),
					Changes: Changes{Fixed: []string{"Nothing, apparently"}},
				},
				"nightly": {
					Tag:     "nightly",
					Date:    "2024-01-01",
					Changes: Changes{Changed: []string{"Everything, constantly"}},
				},
			},
		},
		"no versions": {
			Title:       "Fresh",
			Description: "d",
			Repository:  "r",
			Unreleased:  Changes{},
			Versions:    map[string]Release{},
		},
	}

	for name, model := range models {
		for _, format := range []Format{FormatYAML, FormatTOML, FormatJSON} {
			t.Run(name+"/"+format.String(), func(t *testing.T) {
				t.Parallel()

				data, err := Encode(model, format, true)
				require.NoError(t, err)

				got, err := Decode(data, format)
				require.NoError(t, err, "source:\n%s", data)
				assert.Equal(t, model.normalized(), got)
			})
		}
	}
}

func TestCrossFormatEquivalence(t *testing.T) {
	t.Parallel()

	source := `
title: Demo
description: All changes.
repository: https://github.com/acme/demo
unreleased:
  added:
    - First addition
versions:
  "1.1.0":
    tag: v1.1.0
    date: "2025-03-01"
    changed:
      - Sharper edges
  "1.0.0":
    tag: v1.0.0
    date: "2025-02-24"
    added:
      - Everything
`
	base, err := Decode([]byte(source), FormatYAML)
	require.NoError(t, err)

	for _, format := range []Format{FormatYAML, FormatTOML, FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			t.Parallel()

			data, err := Encode(base, format, true)
			require.NoError(t, err)
			got, err := Decode(data, format)
			require.NoError(t, err)
			assert.Equal(t, base, got)
		})
	}
}

// randomChangelog builds an already-normalized random model, so decode
// output compares equal directly.
func randomChangelog(rng *rand.Rand) *Changelog {
	words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}
	word := func() string { return words[rng.Intn(len(words))] }
	sentence := func() string {
		return fmt.Sprintf("%s %s %s", word(), word(), word())
	}
	changes := func() Changes {
		var c Changes
		for _, category := range ValidCategories() {
			n := rng.Intn(3)
			for i := 0; i < n; i++ {
				_ = c.Append(category, sentence())
			}
		}
		return c
	}

	c := &Changelog{
		Title:       word(),
		Description: sentence(),
		Repository:  "https://github.com/acme/" + word(),
		Unreleased:  changes(),
		Versions:    map[string]Release{},
	}
	for i, n := 0, rng.Intn(5); i < n; i++ {
		version := fmt.Sprintf("%d.%d.%d", rng.Intn(3), rng.Intn(10), rng.Intn(10))
		if _, dup := c.Versions[version]; dup {
			continue
		}
		rel := Release{
			Tag:     "v" + version,
			Date:    fmt.Sprintf("20%02d-%02d-%02d", rng.Intn(30), 1+rng.Intn(12), 1+rng.Intn(28)),
			Changes: changes(),
		}
		if rng.Intn(2) == 0 {
			rel.Description = strPtr(sentence())
		}
		if rng.Intn(4) == 0 {
			rel.Yanked = strPtr(sentence())
		}
		c.Versions[version] = rel
	}
	return c
}

func TestRoundTrip_RandomModels(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		model := randomChangelog(rng)
		for _, format := range []Format{FormatYAML, FormatTOML, FormatJSON} {
			data, err := Encode(model, format, true)
			require.NoError(t, err)
			got, err := Decode(data, format)
			require.NoError(t, err, "format %s, source:\n%s", format, data)
			require.Equal(t, model.normalized(), got, "format %s", format)
		}
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    Format
		wantErr bool
	}{
		"yaml": {input: "yaml", want: FormatYAML},
		"yml":  {input: "yml", want: FormatYAML},
		"TOML": {input: "TOML", want: FormatTOML},
		"json": {input: "json", want: FormatJSON},
		"ini":  {input: "ini", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatForPath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path    string
		want    Format
		wantErr bool
	}{
		"yml":          {path: "CHANGELOG.yml", want: FormatYAML},
		"yaml":         {path: "dir/CHANGELOG.yaml", want: FormatYAML},
		"toml":         {path: "CHANGELOG.toml", want: FormatTOML},
		"json":         {path: "CHANGELOG.json", want: FormatJSON},
		"no extension": {path: "CHANGELOG", wantErr: true},
		"unsupported":  {path: "CHANGELOG.xml", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := FormatForPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
