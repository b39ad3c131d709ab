// cmd/checkout.go
package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/objects"
	"github.com/NahomAnteneh/gitlet/internal/refs"
	"github.com/NahomAnteneh/gitlet/internal/staging"
	"github.com/NahomAnteneh/gitlet/internal/worktree"
)

// checkout has three forms, told apart by the position of the "--"
// separator: a branch switch, a file restore from HEAD, and a file restore
// from an arbitrary commit.
var checkoutCmd = &cobra.Command{
	Use:   "checkout [<branch> | -- <file> | <commit id> -- <file>]",
	Short: "Check out a branch or restore a file",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dash := cmd.ArgsLenAtDash()
		validShape := (dash == -1 && len(args) == 1) ||
			(dash == 0 && len(args) == 1) ||
			(dash == 1 && len(args) == 2)
		if !validShape {
			return core.NewUserError("Incorrect operands.")
		}

		repo, err := openRepository()
		if err != nil {
			return err
		}

		switch {
		case dash == 0:
			// checkout -- <file>
			head, err := headCommit(repo)
			if err != nil {
				return err
			}
			return worktree.CheckoutFile(repo, head, args[0])

		case dash == 1:
			// checkout <commit id> -- <file>
			commit, err := resolveCommit(repo, args[0])
			if err != nil {
				return err
			}
			return worktree.CheckoutFile(repo, commit, args[1])

		default:
			return checkoutBranch(repo, args[0])
		}
	},
}

// resolveCommit expands a possibly abbreviated id and loads the commit.
func resolveCommit(repo *core.Repository, id string) (*objects.Commit, error) {
	fullID, err := objects.ResolveCommitID(repo, id)
	if err != nil {
		if errors.Is(err, objects.ErrNotFound) {
			return nil, core.NewUserError("No commit with that id exists.")
		}
		return nil, err
	}
	return objects.GetCommit(repo, fullID)
}

// checkoutBranch switches HEAD to another branch, overwriting the working
// directory with its snapshot and clearing the staging area.
func checkoutBranch(repo *core.Repository, branch string) error {
	if !refs.BranchExists(repo, branch) {
		return core.NewUserError("No such branch exists.")
	}
	head, err := refs.ReadHead(repo)
	if err != nil {
		return err
	}
	if branch == head.Branch {
		return core.NewUserError("No need to checkout the current branch.")
	}

	targetID, err := refs.ReadBranch(repo, branch)
	if err != nil {
		return err
	}
	target, err := objects.GetCommit(repo, targetID)
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
	if err := refs.WriteHead(repo, &refs.Head{Branch: branch, CommitID: targetID}); err != nil {
		return err
	}

	area.Clear()
	return area.Write()
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
}
