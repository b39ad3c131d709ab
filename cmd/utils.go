package cmd

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/objects"
	"github.com/NahomAnteneh/gitlet/internal/refs"
)

// logDateLayout renders commit timestamps in the fixed English locale
// format, e.g. "Thu Jan 1 00:00:00 1970 +0000".
const logDateLayout = "Mon Jan 2 15:04:05 2006 -0700"

// commitHeaderColor highlights commit ids in log output. color disables
// itself when stdout is not a terminal, so piped output is plain text.
var commitHeaderColor = color.New(color.FgYellow)

// headCommit loads the commit HEAD points at.
func headCommit(repo *core.Repository) (*objects.Commit, error) {
	head, err := refs.ReadHead(repo)
	if err != nil {
		return nil, err
	}
	return objects.GetCommit(repo, head.CommitID)
}

// printCommitEntry emits one history entry in the log format shared by
// log and global-log. Entries are separated by one blank line.
func printCommitEntry(commit *objects.Commit) {
	fmt.Println("===")
	fmt.Println(commitHeaderColor.Sprintf("commit %s", commit.CommitID))
	if commit.IsMerge() {
		fmt.Printf("Merge: %s %s\n", commit.FirstParent()[:7], commit.SecondParent()[:7])
	}
	fmt.Printf("Date: %s\n", commit.GetCommitTime().Format(logDateLayout))
	fmt.Println(commit.Message)
	fmt.Println()
}
