// Package merge implements three-way merging over the commit DAG:
// split-point discovery and the per-file resolution that produces a merge
// commit with two parents.
package merge

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/objects"
	"github.com/NahomAnteneh/gitlet/internal/refs"
	"github.com/NahomAnteneh/gitlet/internal/staging"
	"github.com/NahomAnteneh/gitlet/internal/worktree"
)

// Merge merges otherBranch into the current branch. timestamp stamps the
// merge commit when one is created.
func Merge(repo *core.Repository, otherBranch string, timestamp int64) error {
	area, err := staging.Load(repo)
	if err != nil {
		return err
	}
	if !area.IsEmpty() {
		return core.NewUserError("You have uncommitted changes.")
	}

	if !refs.BranchExists(repo, otherBranch) {
		return core.NewUserError("A branch with that name does not exist.")
	}

	head, err := refs.ReadHead(repo)
	if err != nil {
		return err
	}
	if head.Branch == otherBranch {
		return core.NewUserError("Cannot merge a branch with itself.")
	}

	otherID, err := refs.ReadBranch(repo, otherBranch)
	if err != nil {
		return err
	}
	current, err := objects.GetCommit(repo, head.CommitID)
	if err != nil {
		return err
	}
	other, err := objects.GetCommit(repo, otherID)
	if err != nil {
		return err
	}

	if err := worktree.CheckUntracked(repo, current, area, other.Tree); err != nil {
		return err
	}

	splitID, err := FindSplitPoint(repo, head.CommitID, otherID)
	if err != nil {
		return err
	}

	if splitID == otherID {
		fmt.Println("Given branch is an ancestor of the current branch.")
		return nil
	}
	if splitID == head.CommitID {
		// Fast-forward: the effect of checking out the given branch.
		if err := worktree.CheckoutCommit(repo, current, other); err != nil {
			return err
		}
		if err := refs.WriteHead(repo, &refs.Head{Branch: otherBranch, CommitID: otherID}); err != nil {
			return err
		}
		area.Clear()
		if err := area.Write(); err != nil {
			return err
		}
		fmt.Println("Current branch fast-forwarded.")
		return nil
	}

	split, err := objects.GetCommit(repo, splitID)
	if err != nil {
		return err
	}

	conflicted, err := resolveFiles(repo, area, split, current, other)
	if err != nil {
		return err
	}
	if err := area.Write(); err != nil {
		return err
	}

	message := fmt.Sprintf("Merged %s into %s.", otherBranch, head.Branch)
	if _, err := staging.Commit(repo, area, message, timestamp, otherID); err != nil {
		return err
	}

	if conflicted {
		fmt.Println("Encountered a merge conflict.")
	}
	return nil
}

// resolveFiles classifies every file in the union of the three trees and
// applies the resulting action to the working directory and staging area.
// It reports whether any file conflicted.
func resolveFiles(repo *core.Repository, area *staging.Area, split, current, other *objects.Commit) (bool, error) {
	names := map[string]struct{}{}
	for name := range split.Tree {
		names[name] = struct{}{}
	}
	for name := range current.Tree {
		names[name] = struct{}{}
	}
	for name := range other.Tree {
		names[name] = struct{}{}
	}
	ordered := make([]string, 0, len(names))
	for name := range names {
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)

	conflicted := false
	for _, name := range ordered {
		s, sOK := split.TrackedBlob(name)
		c, cOK := current.TrackedBlob(name)
		o, oOK := other.TrackedBlob(name)

		switch {
		case sOK && cOK && oOK && s == c && o != s:
			// Modified in the other branch only: take theirs.
			if err := takeOther(repo, area, other, name, o); err != nil {
				return false, err
			}

		case !sOK && !cOK && oOK:
			// Added only in the other branch.
			if err := takeOther(repo, area, other, name, o); err != nil {
				return false, err
			}

		case sOK && cOK && c == s && !oOK:
			// Removed in the other branch, unchanged here.
			if err := staging.Unstage(repo, area, current, name); err != nil {
				return false, err
			}

		case sOK && cOK && oOK && c != s && o != s && c != o,
			!sOK && cOK && oOK && c != o,
			sOK && cOK && c != s && !oOK,
			sOK && !cOK && oOK && o != s:
			// Contents differ in a conflicting way.
			if err := writeConflict(repo, area, name, c, cOK, o, oOK); err != nil {
				return false, err
			}
			conflicted = true

		default:
			// Unchanged, modified here only, identical on both sides, or
			// removed everywhere: leave as is.
		}
	}
	return conflicted, nil
}

// takeOther checks out the other branch's version of a file and stages it.
func takeOther(repo *core.Repository, area *staging.Area, other *objects.Commit, name, blobID string) error {
	if err := worktree.CheckoutFile(repo, other, name); err != nil {
		return err
	}
	area.Additions[name] = blobID
	return nil
}

// writeConflict writes the conflict marker file for one path, persists it
// as a blob, and stages it. An absent side contributes an empty region.
func writeConflict(repo *core.Repository, area *staging.Area, name, currentBlob string, currentOK bool, otherBlob string, otherOK bool) error {
	var currentContent, otherContent []byte
	var err error
	if currentOK {
		currentContent, err = objects.GetBlob(repo, currentBlob)
		if err != nil {
			return err
		}
	}
	if otherOK {
		otherContent, err = objects.GetBlob(repo, otherBlob)
		if err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	buf.WriteString("<<<<<<< HEAD\n")
	buf.Write(currentContent)
	buf.WriteString("=======\n")
	buf.Write(otherContent)
	buf.WriteString(">>>>>>>\n")

	if err := os.WriteFile(repo.WorkFile(name), buf.Bytes(), 0644); err != nil {
		return core.ObjectError("failed to write conflict file", err)
	}
	blobID, err := objects.CreateBlob(repo, buf.Bytes())
	if err != nil {
		return err
	}
	area.Additions[name] = blobID
	return nil
}
