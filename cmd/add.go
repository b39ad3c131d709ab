// cmd/add.go
package cmd

import (
	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/staging"
)

// AddHandler stages a working file for the next commit.
func AddHandler(repo *core.Repository, args []string) error {
	area, err := staging.Load(repo)
	if err != nil {
		return err
	}
	head, err := headCommit(repo)
	if err != nil {
		return err
	}
	return staging.Stage(repo, area, head, args[0])
}

func init() {
	rootCmd.AddCommand(NewRepoCommand(
		"add <file>",
		"Add a file to the staging area",
		1,
		AddHandler,
	))
}
