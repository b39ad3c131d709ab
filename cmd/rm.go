// cmd/rm.go
package cmd

import (
	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/staging"
)

// RmHandler unstages a pending addition or stages a tracked file for
// removal, deleting it from the working directory.
func RmHandler(repo *core.Repository, args []string) error {
	area, err := staging.Load(repo)
	if err != nil {
		return err
	}
	head, err := headCommit(repo)
	if err != nil {
		return err
	}
	return staging.Unstage(repo, area, head, args[0])
}

func init() {
	rootCmd.AddCommand(NewRepoCommand(
		"rm <file>",
		"Unstage a file or stage it for removal",
		1,
		RmHandler,
	))
}
