package cmd

import (
	"fmt"
	"strings"

	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/refs"
	"github.com/NahomAnteneh/gitlet/internal/staging"
	"github.com/NahomAnteneh/gitlet/internal/worktree"
)

// StatusHandler prints the five status sections in their exact format.
func StatusHandler(repo *core.Repository, args []string) error {
	area, err := staging.Load(repo)
	if err != nil {
		return err
	}
	head, err := refs.ReadHead(repo)
	if err != nil {
		return err
	}
	commit, err := headCommit(repo)
	if err != nil {
		return err
	}
	st, err := worktree.Summarize(repo, commit, area)
	if err != nil {
		return err
	}
	branches, err := refs.ListBranches(repo)
	if err != nil {
		return err
	}

	var out strings.Builder
	out.WriteString("=== Branches ===\n")
	for _, branch := range branches {
		if branch == head.Branch {
			out.WriteString("*")
		}
		out.WriteString(branch)
		out.WriteString("\n")
	}
	out.WriteString("\n")

	writeSection(&out, "=== Staged Files ===", st.Staged)
	writeSection(&out, "=== Removed Files ===", st.Removed)
	writeSection(&out, "=== Modifications Not Staged For Commit ===", st.Modified)
	writeSection(&out, "=== Untracked Files ===", st.Untracked)

	fmt.Print(out.String())
	return nil
}

// writeSection emits a section header, its entries, and the trailing
// blank line.
func writeSection(out *strings.Builder, header string, entries []string) {
	out.WriteString(header)
	out.WriteString("\n")
	for _, entry := range entries {
		out.WriteString(entry)
		out.WriteString("\n")
	}
	out.WriteString("\n")
}

func init() {
	rootCmd.AddCommand(NewRepoCommand(
		"status",
		"Show branches, staged changes, and the working tree state",
		0,
		StatusHandler,
	))
}
