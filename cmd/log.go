package cmd

import (
	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/objects"
	"github.com/NahomAnteneh/gitlet/internal/refs"
)

// LogHandler walks the first-parent chain from HEAD, newest first.
func LogHandler(repo *core.Repository, args []string) error {
	head, err := refs.ReadHead(repo)
	if err != nil {
		return err
	}

	currentID := head.CommitID
	for currentID != "" {
		commit, err := objects.GetCommit(repo, currentID)
		if err != nil {
			return core.ObjectError("failed to get commit "+currentID, err)
		}
		printCommitEntry(commit)
		currentID = commit.FirstParent()
	}
	return nil
}

func init() {
	rootCmd.AddCommand(NewRepoCommand(
		"log",
		"Show the current branch's history",
		0,
		LogHandler,
	))
}
