// cmd/reset.go
package cmd

import (
	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/objects"
	"github.com/NahomAnteneh/gitlet/internal/refs"
	"github.com/NahomAnteneh/gitlet/internal/staging"
	"github.com/NahomAnteneh/gitlet/internal/worktree"
)

// ResetHandler checks out an arbitrary commit and moves the current
// branch ref to it.
func ResetHandler(repo *core.Repository, args []string) error {
	target, err := resolveCommit(repo, args[0])
	if err != nil {
		return err
	}

	head, err := refs.ReadHead(repo)
	if err != nil {
		return err
	}
	current, err := objects.GetCommit(repo, head.CommitID)
	if err != nil {
		return err
	}
	area, err := staging.Load(repo)
	if err != nil {
		return err
	}

	if err := worktree.CheckUntracked(repo, current, area, target.Tree); err != nil {
		return err
	}
	if err := worktree.CheckoutCommit(repo, current, target); err != nil {
		return err
	}
	if err := refs.WriteBranch(repo, head.Branch, target.CommitID); err != nil {
		return err
	}
	if err := refs.WriteHead(repo, &refs.Head{Branch: head.Branch, CommitID: target.CommitID}); err != nil {
		return err
	}

	area.Clear()
	return area.Write()
}

func init() {
	rootCmd.AddCommand(NewRepoCommand(
		"reset <commit id>",
		"Check out a commit and move the current branch to it",
		1,
		ResetHandler,
	))
}
