// Package gitinfo reads the revision of a data directory kept under git.
package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"

	"github.com/abdidvp/flooring/internal/domain"
)

// Reader implements domain.RevisionReader using go-git.
type Reader struct{}

var _ domain.RevisionReader = (*Reader)(nil)

func New() *Reader {
	return &Reader{}
}

// IsTracked reports whether path is inside a git work tree.
func (r *Reader) IsTracked(path string) bool {
	_, err := open(path)
	return err == nil
}

// CommitHash returns the HEAD commit of the repository containing path.
func (r *Reader) CommitHash(path string) (string, error) {
	repo, err := open(path)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

// open finds the repository at path or any parent of it.
func open(path string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
}
