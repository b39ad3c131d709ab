// cmd/branch.go
package cmd

import (
	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/refs"
)

// BranchHandler creates a new branch pointing at the current head commit.
// It does not switch to it.
func BranchHandler(repo *core.Repository, args []string) error {
	name := args[0]
	if refs.BranchExists(repo, name) {
		return core.NewUserError("A branch with that name already exists.")
	}
	head, err := refs.ReadHead(repo)
	if err != nil {
		return err
	}
	return refs.WriteBranch(repo, name, head.CommitID)
}

func init() {
	rootCmd.AddCommand(NewRepoCommand(
		"branch <name>",
		"Create a new branch at the current commit",
		1,
		BranchHandler,
	))
}
