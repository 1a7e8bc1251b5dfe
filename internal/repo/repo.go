// Package repo locates the project a classdoc run operates on.
package repo

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/rs/zerolog/log"
)

// Info describes the project root used to resolve configured paths
type Info struct {
	Root      string
	Git       bool
	CommitSHA string
	Branch    string
}

// Discover returns the worktree root of the git repository containing start.
// Outside a repository the absolute start directory is the root.
func Discover(start string) (*Info, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", start, err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		log.Debug().Str("path", abs).Msg("not a git repository, using directory as project root")
		return &Info{Root: abs}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repo: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no files to document
		return &Info{Root: abs}, nil
	}

	info := &Info{
		Root: worktree.Filesystem.Root(),
		Git:  true,
	}

	// An empty repository has no HEAD yet
	if head, err := repo.Head(); err == nil {
		info.CommitSHA = head.Hash().String()
		info.Branch = head.Name().Short()
	}

	log.Debug().
		Str("root", info.Root).
		Str("branch", info.Branch).
		Msg("discovered project root")

	return info, nil
}
