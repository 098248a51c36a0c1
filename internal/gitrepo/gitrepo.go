// Package gitrepo detects the repository URL of the surrounding git
// checkout, used to seed the `repository` field of a new changelog.
// It uses the go-git library so no git CLI installation is required.
package gitrepo

import (
	"errors"
	"fmt"
	"os"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// DetectURL returns a browsable URL for the repository containing dir
// (or the current working directory when dir is empty). Remote
// "origin" is preferred, any other remote is a fallback. Returns ""
// without error when dir is not inside a git repository or the
// repository has no remotes; a changelog works fine with the
// placeholder URL.
func DetectURL(dir string) (string, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", nil
		}
		return "", fmt.Errorf("opening repository at %s: %w", dir, err)
	}

	remotes, err := repo.Remotes()
	if err != nil {
		return "", fmt.Errorf("listing remotes: %w", err)
	}
	if len(remotes) == 0 {
		return "", nil
	}

	urls := remotes[0].Config().URLs
	for _, remote := range remotes {
		if remote.Config().Name == "origin" {
			urls = remote.Config().URLs
			break
		}
	}
	if len(urls) == 0 {
		return "", nil
	}

	return NormalizeURL(urls[0]), nil
}

// NormalizeURL converts a git remote URL into a browsable https URL:
// scp-like ssh remotes (git@host:owner/repo.git) and ssh:// remotes
// become https://host/owner/repo, and a trailing ".git" is dropped.
func NormalizeURL(remote string) string {
	url := strings.TrimSuffix(remote, ".git")

	switch {
	case strings.HasPrefix(url, "https://"), strings.HasPrefix(url, "http://"):
		return url
	case strings.HasPrefix(url, "ssh://"):
		url = strings.TrimPrefix(url, "ssh://")
		if at := strings.Index(url, "@"); at != -1 {
			url = url[at+1:]
		}
		return "https://" + url
	case strings.Contains(url, "@") && strings.Contains(url, ":"):
		// scp-like syntax: git@github.com:owner/repo
		url = url[strings.Index(url, "@")+1:]
		url = strings.Replace(url, ":", "/", 1)
		return "https://" + url
	default:
		return url
	}
}
