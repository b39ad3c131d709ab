// cmd/commit.go
package cmd

import (
	"time"

	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/staging"
)

// CommitHandler records the staged snapshot as a new commit.
func CommitHandler(repo *core.Repository, args []string) error {
	area, err := staging.Load(repo)
	if err != nil {
		return err
	}
	_, err = staging.Commit(repo, area, args[0], time.Now().Unix(), "")
	return err
}

func init() {
	rootCmd.AddCommand(NewRepoCommand(
		"commit <message>",
		"Record the staged snapshot as a new commit",
		1,
		CommitHandler,
	))
}
