package changelog

// Validate checks that an in-memory Changelog still satisfies the
// schema constraints: required fields on every release, date pattern
// conformance, and no unknown structure. It reports every violation
// in a single pass, each tagged with its field path.
//
// Decode already schema-checks raw input; Validate exists for models
// that were mutated in memory or constructed programmatically, and is
// run again before a document is persisted.
func Validate(c *Changelog) error {
	tree, err := modelToTree(c)
	if err != nil {
		return err
	}

	violations, err := checkSchema(tree)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
