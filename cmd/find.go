package cmd

import (
	"fmt"

	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/objects"
)

// FindHandler prints the ids of every commit whose message matches the
// query exactly.
func FindHandler(repo *core.Repository, args []string) error {
	ids, err := objects.ListCommits(repo)
	if err != nil {
		return err
	}

	found := false
	for _, id := range ids {
		commit, err := objects.GetCommit(repo, id)
		if err != nil {
			return core.ObjectError("failed to get commit "+id, err)
		}
		if commit.Message == args[0] {
			fmt.Println(id)
			found = true
		}
	}
	if !found {
		return core.NewUserError("Found no commit with that message.")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(NewRepoCommand(
		"find <message>",
		"List commits with the given message",
		1,
		FindHandler,
	))
}
