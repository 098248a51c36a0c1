// Package changelog implements the changelog-md document model and the
// operations around it:
//
//   - decoding and encoding CHANGELOG sources in YAML, TOML, and JSON,
//     all converging on one canonical in-memory model
//   - schema-driven validation with field-path diagnostics
//   - deterministic Markdown rendering with semantic-version ordering
//   - the add/release/yank mutations that evolve a document
//
// The CHANGELOG source file is the single source of truth; CHANGELOG.md
// is always generated from it and never edited by hand.
package changelog
