package changelog

// DefaultRepository is the placeholder repository URL used when no
// repository can be detected for a new document.
const DefaultRepository = "https://github.com/me/my-swanky-project"

const defaultDescription = `All notable changes to this project will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.1.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).
`

// New constructs the seed document for a fresh project. repository may
// be empty, in which case the placeholder URL is used.
func New(repository string) *Changelog {
	if repository == "" {
		repository = DefaultRepository
	}
	return &Changelog{
		Title:       "Changelog",
		Description: defaultDescription,
		Repository:  repository,
		Unreleased: Changes{
			Added: []string{"Start using [changelog-md](https://github.com/ariel-frischer/changelog-md)"},
		},
		Versions: map[string]Release{},
	}
}
