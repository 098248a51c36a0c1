package changelog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		changelog  *Changelog
		wantFields []string
	}{
		"seed template is valid": {
			changelog: New(""),
		},
		"valid with releases": {
			changelog: &Changelog{
				Title:       "Demo",
				Description: "d",
				Repository:  "r",
				Versions: map[string]Release{
					"1.0.0": {Tag: "v1.0.0", Date: "2025-02-24"},
				},
			},
		},
		"missing tag": {
			changelog: &Changelog{
				Title:       "Demo",
				Description: "d",
				Repository:  "r",
				Versions: map[string]Release{
					"1.0.0": {Date: "2025-02-24"},
				},
			},
			wantFields: []string{"versions/1.0.0/tag"},
		},
		"bad date": {
			changelog: &Changelog{
				Title:       "Demo",
				Description: "d",
				Repository:  "r",
				Versions: map[string]Release{
					"1.0.0": {Tag: "v1.0.0", Date: "24-02-2025"},
				},
			},
			wantFields: []string{"versions/1.0.0/date"},
		},
		"multiple violations reported together": {
			changelog: &Changelog{
				Title:       "Demo",
				Description: "d",
				Repository:  "r",
				Versions: map[string]Release{
					"1.0.0": {Date: "bad"},
					"2.0.0": {Tag: "v2.0.0", Date: "also bad"},
				},
			},
			wantFields: []string{
				"versions/1.0.0/date",
				"versions/1.0.0/tag",
				"versions/2.0.0/date",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tt.changelog)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			for _, field := range tt.wantFields {
				found := false
				for _, v := range verr.Violations {
					if v.Field == field {
						found = true
					}
				}
				assert.True(t, found, "expected a violation at %q, got %v", field, verr.Violations)
			}
		})
	}
}

func TestSchema_Export(t *testing.T) {
	t.Parallel()

	var doc map[string]any
	require.NoError(t, json.Unmarshal(Schema(), &doc))

	assert.Equal(t, "https://changelog-md.github.io/1.0/changelog", doc["$id"])
	assert.ElementsMatch(t,
		[]any{"title", "description", "repository", "unreleased", "versions"},
		doc["required"])
	assert.Equal(t, false, doc["additionalProperties"])
}
