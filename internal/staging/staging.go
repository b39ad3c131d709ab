// Package staging holds the pending delta for the next commit: a set of
// additions (file name -> blob id) and a set of removals. The on-disk
// encoding is the same explicit length-prefixed binary format the object
// codecs use.
package staging

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/objects"
	"github.com/NahomAnteneh/gitlet/internal/refs"
)

// Area is the staging area. Additions and Removals are disjoint.
type Area struct {
	Additions map[string]string   // file name -> blob id
	Removals  map[string]struct{} // file names staged for removal

	path string
}

// NewArea creates an empty staging area bound to the repository.
func NewArea(repo *core.Repository) *Area {
	return &Area{
		Additions: map[string]string{},
		Removals:  map[string]struct{}{},
		path:      repo.StagingFile,
	}
}

// Load reads the staging area from disk, or returns an empty one if it has
// never been written.
func Load(repo *core.Repository) (*Area, error) {
	area := NewArea(repo)
	data, err := os.ReadFile(repo.StagingFile)
	if err != nil {
		if os.IsNotExist(err) {
			return area, nil
		}
		return nil, fmt.Errorf("failed to read staging area: %w", err)
	}
	if err := area.deserialize(data); err != nil {
		return nil, fmt.Errorf("failed to decode staging area: %w", err)
	}
	return area, nil
}

// Write persists the staging area atomically.
func (a *Area) Write() error {
	data, err := a.serialize()
	if err != nil {
		return fmt.Errorf("failed to serialize staging area: %w", err)
	}
	if err := core.WriteFileAtomic(a.path, data); err != nil {
		return fmt.Errorf("failed to write staging area: %w", err)
	}
	return nil
}

// IsEmpty reports whether nothing is staged.
func (a *Area) IsEmpty() bool {
	return len(a.Additions) == 0 && len(a.Removals) == 0
}

// Clear empties both sets.
func (a *Area) Clear() {
	a.Additions = map[string]string{}
	a.Removals = map[string]struct{}{}
}

// StagedFiles returns the staged-for-addition names in lexicographic order.
func (a *Area) StagedFiles() []string {
	names := make([]string, 0, len(a.Additions))
	for name := range a.Additions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RemovedFiles returns the staged-for-removal names in lexicographic order.
func (a *Area) RemovedFiles() []string {
	names := make([]string, 0, len(a.Removals))
	for name := range a.Removals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stage records a working-directory file for the next commit. If the file's
// content matches what HEAD already tracks, any pending addition or removal
// for it is dropped instead. The blob is persisted before the staging state.
func Stage(repo *core.Repository, area *Area, head *objects.Commit, relPath string) error {
	workPath := repo.WorkFile(relPath)
	if !core.FileExists(workPath) {
		return core.NewUserError("File does not exist.")
	}
	content, err := core.ReadFileContent(workPath)
	if err != nil {
		return err
	}

	delete(area.Removals, relPath)

	blobID := objects.HashBlob(content)
	if tracked, ok := head.TrackedBlob(relPath); ok && tracked == blobID {
		delete(area.Additions, relPath)
		return area.Write()
	}

	if _, err := objects.CreateBlob(repo, content); err != nil {
		return err
	}
	area.Additions[relPath] = blobID
	return area.Write()
}

// Unstage implements rm: a pending addition is dropped; a file tracked by
// HEAD is staged for removal and deleted from the working directory. If
// neither applies the command has nothing to do.
func Unstage(repo *core.Repository, area *Area, head *objects.Commit, relPath string) error {
	_, staged := area.Additions[relPath]
	_, tracked := head.TrackedBlob(relPath)
	if !staged && !tracked {
		return core.NewUserError("No reason to remove the file.")
	}

	delete(area.Additions, relPath)
	if tracked {
		area.Removals[relPath] = struct{}{}
		if err := core.RemoveFileIfExists(repo.WorkFile(relPath)); err != nil {
			return err
		}
	}
	return area.Write()
}

// Commit builds the next snapshot from HEAD plus the staged delta, persists
// it, and advances the current branch and HEAD. The commit object hits disk
// before the refs that point at it; the cleared staging area persists last.
func Commit(repo *core.Repository, area *Area, message string, timestamp int64, secondParent string) (string, error) {
	if area.IsEmpty() {
		return "", core.NewUserError("No changes added to the commit.")
	}
	if message == "" {
		return "", core.NewUserError("Please enter a commit message.")
	}

	head, err := refs.ReadHead(repo)
	if err != nil {
		return "", err
	}
	headCommit, err := objects.GetCommit(repo, head.CommitID)
	if err != nil {
		return "", err
	}

	tree := make(map[string]string, len(headCommit.Tree)+len(area.Additions))
	for name, hash := range headCommit.Tree {
		tree[name] = hash
	}
	for name := range area.Removals {
		delete(tree, name)
	}
	for name, hash := range area.Additions {
		tree[name] = hash
	}

	parents := []string{head.CommitID}
	if secondParent != "" {
		parents = append(parents, secondParent)
	}

	commitID, err := objects.CreateCommit(repo, &objects.Commit{
		Message:   message,
		Timestamp: timestamp,
		Parents:   parents,
		Tree:      tree,
	})
	if err != nil {
		return "", err
	}

	if err := refs.WriteBranch(repo, head.Branch, commitID); err != nil {
		return "", err
	}
	if err := refs.WriteHead(repo, &refs.Head{Branch: head.Branch, CommitID: commitID}); err != nil {
		return "", err
	}

	area.Clear()
	if err := area.Write(); err != nil {
		return "", err
	}
	return commitID, nil
}

// serialize encodes the staging area: addition count followed by
// (name, blob id) pairs, then removal count followed by names, all sorted.
func (a *Area) serialize() ([]byte, error) {
	buf := new(bytes.Buffer)

	if err := binary.Write(buf, binary.BigEndian, uint32(len(a.Additions))); err != nil {
		return nil, fmt.Errorf("failed to write addition count: %w", err)
	}
	for _, name := range a.StagedFiles() {
		if err := writeLengthPrefixedString(buf, name); err != nil {
			return nil, fmt.Errorf("failed to write addition name: %w", err)
		}
		if err := writeLengthPrefixedString(buf, a.Additions[name]); err != nil {
			return nil, fmt.Errorf("failed to write addition hash: %w", err)
		}
	}

	if err := binary.Write(buf, binary.BigEndian, uint32(len(a.Removals))); err != nil {
		return nil, fmt.Errorf("failed to write removal count: %w", err)
	}
	for _, name := range a.RemovedFiles() {
		if err := writeLengthPrefixedString(buf, name); err != nil {
			return nil, fmt.Errorf("failed to write removal name: %w", err)
		}
	}

	return buf.Bytes(), nil
}

func (a *Area) deserialize(data []byte) error {
	buf := bytes.NewReader(data)

	var additionCount uint32
	if err := binary.Read(buf, binary.BigEndian, &additionCount); err != nil {
		return fmt.Errorf("failed to read addition count: %w", err)
	}
	for i := uint32(0); i < additionCount; i++ {
		name, err := readLengthPrefixedString(buf)
		if err != nil {
			return fmt.Errorf("failed to read addition name: %w", err)
		}
		hash, err := readLengthPrefixedString(buf)
		if err != nil {
			return fmt.Errorf("failed to read addition hash: %w", err)
		}
		a.Additions[name] = hash
	}

	var removalCount uint32
	if err := binary.Read(buf, binary.BigEndian, &removalCount); err != nil {
		return fmt.Errorf("failed to read removal count: %w", err)
	}
	for i := uint32(0); i < removalCount; i++ {
		name, err := readLengthPrefixedString(buf)
		if err != nil {
			return fmt.Errorf("failed to read removal name: %w", err)
		}
		a.Removals[name] = struct{}{}
	}

	return nil
}

func writeLengthPrefixedString(buf *bytes.Buffer, s string) error {
	strBytes := []byte(s)
	if err := binary.Write(buf, binary.BigEndian, uint32(len(strBytes))); err != nil {
		return err
	}
	_, err := buf.Write(strBytes)
	return err
}

func readLengthPrefixedString(buf *bytes.Reader) (string, error) {
	var length uint32
	if err := binary.Read(buf, binary.BigEndian, &length); err != nil {
		return "", err
	}
	strBytes := make([]byte, length)
	if _, err := io.ReadFull(buf, strBytes); err != nil {
		return "", err
	}
	return string(strBytes), nil
}
