// cmd/rmbranch.go
package cmd

import (
	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/refs"
)

// RmBranchHandler deletes a branch ref. The commits it pointed at stay in
// the store.
func RmBranchHandler(repo *core.Repository, args []string) error {
	name := args[0]
	if !refs.BranchExists(repo, name) {
		return core.NewUserError("A branch with that name does not exist.")
	}
	head, err := refs.ReadHead(repo)
	if err != nil {
		return err
	}
	if name == head.Branch {
		return core.NewUserError("Cannot remove the current branch.")
	}
	return refs.DeleteBranch(repo, name)
}

func init() {
	rootCmd.AddCommand(NewRepoCommand(
		"rm-branch <name>",
		"Delete a branch",
		1,
		RmBranchHandler,
	))
}
