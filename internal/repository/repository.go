// Package repository creates the on-disk layout of a new Gitlet
// repository: the object directories, the epoch initial commit, the
// master branch, HEAD, the empty staging area, and the config file.
package repository

import (
	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/config"
	"github.com/NahomAnteneh/gitlet/internal/objects"
	"github.com/NahomAnteneh/gitlet/internal/refs"
	"github.com/NahomAnteneh/gitlet/internal/staging"
)

// CreateRepo initializes a new repository rooted at repo.Root.
func CreateRepo(repo *core.Repository) error {
	if repo.Exists() {
		return core.NewUserError("A Gitlet version-control system already exists in the current directory.")
	}

	for _, dir := range []string{
		repo.GitletDir,
		repo.CommitsDir,
		repo.BlobsDir,
		repo.BranchesDir,
	} {
		if err := core.EnsureDirExists(dir); err != nil {
			return err
		}
	}

	if err := config.Write(repo, config.Default()); err != nil {
		return err
	}

	// The initial commit is shared by every repository: empty tree, no
	// parents, epoch timestamp.
	commitID, err := objects.CreateCommit(repo, objects.NewInitialCommit())
	if err != nil {
		return err
	}

	branch := config.DefaultBranch
	if err := refs.WriteBranch(repo, branch, commitID); err != nil {
		return err
	}
	if err := refs.WriteHead(repo, &refs.Head{Branch: branch, CommitID: commitID}); err != nil {
		return err
	}

	return staging.NewArea(repo).Write()
}
