package objects

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/utils"
)

// InitialCommitMessage is the message of the root commit every repository
// starts from.
const InitialCommitMessage = "initial commit"

// Commit represents a commit object in the repository. The tree maps file
// names to blob ids; there are no subdirectories.
type Commit struct {
	CommitID  string            // Hash of the serialized commit data (calculated, not stored)
	Message   string            // Commit message
	Timestamp int64             // Commit timestamp (Unix time)
	Parents   []string          // Hashes of parent commits; two entries for a merge
	Tree      map[string]string // File name -> blob hash
}

// NewInitialCommit returns the epoch commit with an empty tree.
func NewInitialCommit() *Commit {
	return &Commit{
		Message:   InitialCommitMessage,
		Timestamp: 0,
		Parents:   nil,
		Tree:      map[string]string{},
	}
}

// FirstParent returns the first parent id, or "" for the initial commit.
func (c *Commit) FirstParent() string {
	if len(c.Parents) > 0 {
		return c.Parents[0]
	}
	return ""
}

// SecondParent returns the merge parent id, or "" for non-merge commits.
func (c *Commit) SecondParent() string {
	if len(c.Parents) > 1 {
		return c.Parents[1]
	}
	return ""
}

// IsMerge reports whether the commit has two parents.
func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// GetCommitTime returns the commit time as a time.Time object.
func (c *Commit) GetCommitTime() time.Time {
	return time.Unix(c.Timestamp, 0)
}

// TrackedBlob returns the blob id tracked for a file and whether the file
// is tracked at all.
func (c *Commit) TrackedBlob(name string) (string, bool) {
	hash, ok := c.Tree[name]
	return hash, ok
}

// TrackedFiles returns the tracked file names in lexicographic order.
func (c *Commit) TrackedFiles() []string {
	names := make([]string, 0, len(c.Tree))
	for name := range c.Tree {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// serialize encodes the commit, excluding CommitID. Tree entries are
// written in sorted order so the encoding, and therefore the id, is a pure
// function of the commit's fields.
func (c *Commit) serialize() ([]byte, error) {
	var buf bytes.Buffer

	if err := writeLengthPrefixedString(&buf, c.Message); err != nil {
		return nil, fmt.Errorf("failed to write message: %w", err)
	}

	if err := binary.Write(&buf, binary.BigEndian, c.Timestamp); err != nil {
		return nil, fmt.Errorf("failed to write timestamp: %w", err)
	}

	parentCount := uint32(len(c.Parents))
	if err := binary.Write(&buf, binary.BigEndian, parentCount); err != nil {
		return nil, fmt.Errorf("failed to write parent count: %w", err)
	}
	for _, parent := range c.Parents {
		if err := writeLengthPrefixedString(&buf, parent); err != nil {
			return nil, fmt.Errorf("failed to write parent: %w", err)
		}
	}

	entryCount := uint32(len(c.Tree))
	if err := binary.Write(&buf, binary.BigEndian, entryCount); err != nil {
		return nil, fmt.Errorf("failed to write tree entry count: %w", err)
	}
	for _, name := range c.TrackedFiles() {
		if err := writeLengthPrefixedString(&buf, name); err != nil {
			return nil, fmt.Errorf("failed to write tree entry name: %w", err)
		}
		if err := writeLengthPrefixedString(&buf, c.Tree[name]); err != nil {
			return nil, fmt.Errorf("failed to write tree entry hash: %w", err)
		}
	}

	return buf.Bytes(), nil
}

// deserializeCommit decodes a byte slice into a Commit object.
func deserializeCommit(data []byte) (*Commit, error) {
	buf := bytes.NewReader(data)
	commit := &Commit{Tree: map[string]string{}}

	var err error
	commit.Message, err = readLengthPrefixedString(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}

	if err := binary.Read(buf, binary.BigEndian, &commit.Timestamp); err != nil {
		return nil, fmt.Errorf("failed to read timestamp: %w", err)
	}

	var parentCount uint32
	if err := binary.Read(buf, binary.BigEndian, &parentCount); err != nil {
		return nil, fmt.Errorf("failed to read parent count: %w", err)
	}
	for i := uint32(0); i < parentCount; i++ {
		parent, err := readLengthPrefixedString(buf)
		if err != nil {
			return nil, fmt.Errorf("failed to read parent: %w", err)
		}
		commit.Parents = append(commit.Parents, parent)
	}

	var entryCount uint32
	if err := binary.Read(buf, binary.BigEndian, &entryCount); err != nil {
		return nil, fmt.Errorf("failed to read tree entry count: %w", err)
	}
	for i := uint32(0); i < entryCount; i++ {
		name, err := readLengthPrefixedString(buf)
		if err != nil {
			return nil, fmt.Errorf("failed to read tree entry name: %w", err)
		}
		hash, err := readLengthPrefixedString(buf)
		if err != nil {
			return nil, fmt.Errorf("failed to read tree entry hash: %w", err)
		}
		commit.Tree[name] = hash
	}

	return commit, nil
}

// CreateCommit serializes and stores a commit object, returning its id.
// Like blobs, commit writes are idempotent and atomic.
func CreateCommit(repo *core.Repository, commit *Commit) (string, error) {
	data, err := commit.serialize()
	if err != nil {
		return "", core.ObjectError("failed to serialize commit", err)
	}

	header := fmt.Sprintf("commit %d\x00", len(data))
	var buf bytes.Buffer
	buf.WriteString(header)
	buf.Write(data)

	hash := utils.HashBytes("commit", data)
	commit.CommitID = hash

	objectPath := filepath.Join(repo.CommitsDir, hash)
	if core.FileExists(objectPath) {
		return hash, nil
	}

	compressed, err := compressZstd(buf.Bytes())
	if err != nil {
		return "", core.ObjectError("failed to compress commit", err)
	}

	if err := core.EnsureDirExists(repo.CommitsDir); err != nil {
		return "", err
	}
	if err := core.WriteFileAtomic(objectPath, compressed); err != nil {
		return "", core.ObjectError("failed to write commit file", err)
	}

	return hash, nil
}

// GetCommit reads a commit object from disk by its full id.
func GetCommit(repo *core.Repository, hash string) (*Commit, error) {
	objectPath := filepath.Join(repo.CommitsDir, hash)
	compressed, err := os.ReadFile(objectPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, core.ObjectError("failed to read commit file", err)
	}

	content, err := decompressZstd(compressed)
	if err != nil {
		return nil, core.ObjectError("failed to decompress commit", err)
	}

	headerEnd := bytes.IndexByte(content, '\x00')
	if headerEnd == -1 {
		return nil, core.ObjectError("invalid commit format: missing header", nil)
	}
	header := string(content[:headerEnd])
	payload := content[headerEnd+1:]
	if header != fmt.Sprintf("commit %d", len(payload)) {
		return nil, core.ObjectError(fmt.Sprintf("invalid commit header: %q", header), nil)
	}

	commit, err := deserializeCommit(payload)
	if err != nil {
		return nil, core.ObjectError("failed to deserialize commit", err)
	}
	commit.CommitID = hash
	return commit, nil
}

// writeLengthPrefixedString writes a length-prefixed string to the buffer.
func writeLengthPrefixedString(buf *bytes.Buffer, s string) error {
	strBytes := []byte(s)
	length := uint32(len(strBytes))
	if err := binary.Write(buf, binary.BigEndian, length); err != nil {
		return err
	}
	if _, err := buf.Write(strBytes); err != nil {
		return err
	}
	return nil
}

// readLengthPrefixedString reads a length-prefixed string from the buffer.
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
