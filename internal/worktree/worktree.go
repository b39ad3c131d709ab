// Package worktree reconciles the working directory against the current
// commit and the staging area. It classifies files for status, enforces
// the untracked-file safety check, and materializes commit snapshots.
package worktree

import (
	"os"
	"sort"

	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/objects"
	"github.com/NahomAnteneh/gitlet/internal/staging"
)

// Status holds the four ordered lists the status command prints. Modified
// entries carry their " (modified)" / " (deleted)" suffix.
type Status struct {
	Staged    []string
	Removed   []string
	Modified  []string
	Untracked []string
}

// Summarize classifies every file visible to the reconciler. All lists are
// lexicographically ordered.
func Summarize(repo *core.Repository, head *objects.Commit, area *staging.Area) (*Status, error) {
	workFiles, err := core.ListWorkingFiles(repo)
	if err != nil {
		return nil, err
	}
	inWork := make(map[string]bool, len(workFiles))
	for _, name := range workFiles {
		inWork[name] = true
	}

	st := &Status{
		Staged:  area.StagedFiles(),
		Removed: area.RemovedFiles(),
	}

	// Hash each working file once for the modified pass, which compares it
	// against HEAD and the staged blobs.
	workBlob := make(map[string]string, len(workFiles))
	for _, name := range workFiles {
		content, err := core.ReadFileContent(repo.WorkFile(name))
		if err != nil {
			return nil, err
		}
		workBlob[name] = objects.HashBlob(content)
	}

	modified := map[string]string{} // name -> suffix
	for _, name := range workFiles {
		stagedBlob, isStaged := area.Additions[name]
		trackedBlob, isTracked := head.TrackedBlob(name)
		switch {
		case isStaged && workBlob[name] != stagedBlob:
			modified[name] = " (modified)"
		case !isStaged && isTracked && workBlob[name] != trackedBlob:
			modified[name] = " (modified)"
		}
	}
	for name := range area.Additions {
		if !inWork[name] {
			modified[name] = " (deleted)"
		}
	}
	for name := range head.Tree {
		if _, removed := area.Removals[name]; removed {
			continue
		}
		if !inWork[name] {
			modified[name] = " (deleted)"
		}
	}

	modNames := make([]string, 0, len(modified))
	for name := range modified {
		modNames = append(modNames, name)
	}
	sort.Strings(modNames)
	for _, name := range modNames {
		st.Modified = append(st.Modified, name+modified[name])
	}

	st.Untracked = untrackedOf(workFiles, head, area)
	return st, nil
}

// untrackedOf lists working files that neither HEAD tracks nor staging
// stages for addition, plus files staged for removal that reappeared.
func untrackedOf(workFiles []string, head *objects.Commit, area *staging.Area) []string {
	var untracked []string
	for _, name := range workFiles {
		_, isStaged := area.Additions[name]
		_, isTracked := head.TrackedBlob(name)
		_, isRemoved := area.Removals[name]
		if (!isTracked && !isStaged) || isRemoved {
			untracked = append(untracked, name)
		}
	}
	return untracked
}

// CheckUntracked fails when an untracked working file would be overwritten
// by the target tree. Used by checkout, reset, and merge before they touch
// the working directory.
func CheckUntracked(repo *core.Repository, head *objects.Commit, area *staging.Area, targetTree map[string]string) error {
	workFiles, err := core.ListWorkingFiles(repo)
	if err != nil {
		return err
	}
	for _, name := range untrackedOf(workFiles, head, area) {
		if _, inTarget := targetTree[name]; inTarget {
			return core.NewUserError("There is an untracked file in the way; delete it, or add and commit it first.")
		}
	}
	return nil
}

// CheckoutFile copies one tracked blob over the working file of the same
// name. The staging area is untouched.
func CheckoutFile(repo *core.Repository, commit *objects.Commit, relPath string) error {
	blobID, ok := commit.TrackedBlob(relPath)
	if !ok {
		return core.NewUserError("File does not exist in that commit.")
	}
	content, err := objects.GetBlob(repo, blobID)
	if err != nil {
		return err
	}
	if err := os.WriteFile(repo.WorkFile(relPath), content, 0644); err != nil {
		return core.ObjectError("failed to write working file", err)
	}
	return nil
}

// CheckoutCommit overwrites the working directory with the target commit's
// snapshot: every file in the target tree is written, and every file
// tracked by the current commit but absent from the target is deleted.
// Callers run CheckUntracked first.
func CheckoutCommit(repo *core.Repository, current, target *objects.Commit) error {
	for _, name := range target.TrackedFiles() {
		if err := CheckoutFile(repo, target, name); err != nil {
			return err
		}
	}
	for name := range current.Tree {
		if _, kept := target.Tree[name]; !kept {
			if err := core.RemoveFileIfExists(repo.WorkFile(name)); err != nil {
				return err
			}
		}
	}
	return nil
}
