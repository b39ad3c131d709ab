package cmd

import (
	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/objects"
)

// GlobalLogHandler prints every stored commit, in no particular order.
func GlobalLogHandler(repo *core.Repository, args []string) error {
	ids, err := objects.ListCommits(repo)
	if err != nil {
		return err
	}
	for _, id := range ids {
		commit, err := objects.GetCommit(repo, id)
		if err != nil {
			return core.ObjectError("failed to get commit "+id, err)
		}
		printCommitEntry(commit)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(NewRepoCommand(
		"global-log",
		"Show every commit ever made",
		0,
		GlobalLogHandler,
	))
}
