// cmd/merge.go
package cmd

import (
	"time"

	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/merge"
)

// MergeHandler merges the named branch into the current branch.
func MergeHandler(repo *core.Repository, args []string) error {
	return merge.Merge(repo, args[0], time.Now().Unix())
}

func init() {
	rootCmd.AddCommand(NewRepoCommand(
		"merge <branch>",
		"Merge a branch into the current branch",
		1,
		MergeHandler,
	))
}
