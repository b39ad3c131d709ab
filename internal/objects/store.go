package objects

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/utils"
)

// ErrNotFound reports that no stored object matches the requested id. An
// ambiguous abbreviated id resolves to ErrNotFound as well.
var ErrNotFound = errors.New("object not found")

// MinAbbrevLength is the shortest accepted abbreviated commit id.
const MinAbbrevLength = 4

// ListCommits returns the ids of every stored commit, sorted.
func ListCommits(repo *core.Repository) ([]string, error) {
	entries, err := os.ReadDir(repo.CommitsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, core.ObjectError("failed to read commits directory", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !utils.IsValidObjectID(name) {
			continue
		}
		ids = append(ids, name)
	}
	sort.Strings(ids)
	return ids, nil
}

// ResolveCommitID expands a possibly abbreviated commit id to the full
// stored id. A full-length id is checked directly; shorter prefixes scan
// the store. A prefix matching more than one commit is treated as not
// found rather than silently picking one.
func ResolveCommitID(repo *core.Repository, id string) (string, error) {
	if len(id) < MinAbbrevLength || !utils.IsValidHex(id) {
		return "", ErrNotFound
	}

	if len(id) == utils.HashHexLength {
		if core.FileExists(filepath.Join(repo.CommitsDir, id)) {
			return id, nil
		}
		return "", ErrNotFound
	}

	ids, err := ListCommits(repo)
	if err != nil {
		return "", err
	}

	match := ""
	for _, candidate := range ids {
		if strings.HasPrefix(candidate, id) {
			if match != "" {
				return "", ErrNotFound // ambiguous prefix
			}
			match = candidate
		}
	}
	if match == "" {
		return "", ErrNotFound
	}
	return match, nil
}
