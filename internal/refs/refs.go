// Package refs manages branch pointers and the HEAD state. A branch is a
// small text file under .gitlet/branches holding a commit id; HEAD lives
// in .gitlet/repo as the current branch name plus its commit id.
package refs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/NahomAnteneh/gitlet/core"
)

// ErrNotFound reports a missing branch ref.
var ErrNotFound = errors.New("ref not found")

// Head is the current branch name together with the commit it points at.
type Head struct {
	Branch   string
	CommitID string
}

// WriteBranch points a branch at a commit, creating the ref if needed.
func WriteBranch(repo *core.Repository, name, commitID string) error {
	if err := core.EnsureDirExists(repo.BranchesDir); err != nil {
		return err
	}
	path := filepath.Join(repo.BranchesDir, name)
	if err := core.WriteFileAtomic(path, []byte(commitID+"\n")); err != nil {
		return core.RefError(fmt.Sprintf("failed to write branch %s", name), err)
	}
	return nil
}

// ReadBranch returns the commit id a branch points at.
func ReadBranch(repo *core.Repository, name string) (string, error) {
	path := filepath.Join(repo.BranchesDir, name)
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", core.RefError(fmt.Sprintf("failed to read branch %s", name), err)
	}
	return strings.TrimSpace(string(content)), nil
}

// BranchExists reports whether a branch ref is present.
func BranchExists(repo *core.Repository, name string) bool {
	return core.FileExists(filepath.Join(repo.BranchesDir, name))
}

// DeleteBranch removes a branch ref. Commits and blobs are untouched.
func DeleteBranch(repo *core.Repository, name string) error {
	path := filepath.Join(repo.BranchesDir, name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return core.RefError(fmt.Sprintf("failed to delete branch %s", name), err)
	}
	return nil
}

// ListBranches returns all branch names in lexicographic order.
func ListBranches(repo *core.Repository) ([]string, error) {
	entries, err := os.ReadDir(repo.BranchesDir)
	if err != nil {
		return nil, core.RefError("failed to read branches directory", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ReadHead loads the HEAD state from .gitlet/repo.
func ReadHead(repo *core.Repository) (*Head, error) {
	content, err := os.ReadFile(repo.HeadFile)
	if err != nil {
		return nil, core.RefError("failed to read HEAD", err)
	}

	lines := strings.SplitN(strings.TrimSpace(string(content)), "\n", 2)
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "ref: ") {
		return nil, core.RefError(fmt.Sprintf("invalid HEAD content: %q", string(content)), nil)
	}

	return &Head{
		Branch:   strings.TrimSpace(strings.TrimPrefix(lines[0], "ref: ")),
		CommitID: strings.TrimSpace(lines[1]),
	}, nil
}

// WriteHead persists the HEAD state. The commit named here must already be
// durable; callers order object writes before ref writes.
func WriteHead(repo *core.Repository, head *Head) error {
	content := fmt.Sprintf("ref: %s\n%s\n", head.Branch, head.CommitID)
	if err := core.WriteFileAtomic(repo.HeadFile, []byte(content)); err != nil {
		return core.RefError("failed to write HEAD", err)
	}
	return nil
}
