package objects

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NahomAnteneh/gitlet/core"
)

func newTestRepo(t *testing.T) *core.Repository {
	t.Helper()
	repo := core.NewRepository(t.TempDir())
	require.NoError(t, core.EnsureDirExists(repo.CommitsDir))
	require.NoError(t, core.EnsureDirExists(repo.BlobsDir))
	return repo
}

func TestBlobRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	content := []byte("some file content\n")

	id, err := CreateBlob(repo, content)
	require.NoError(t, err)
	assert.Equal(t, HashBlob(content), id)

	got, err := GetBlob(repo, id)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestBlobDeduplication(t *testing.T) {
	repo := newTestRepo(t)

	id1, err := CreateBlob(repo, []byte("same"))
	require.NoError(t, err)
	id2, err := CreateBlob(repo, []byte("same"))
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	entries, err := os.ReadDir(repo.BlobsDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGetBlobNotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := GetBlob(repo, HashBlob([]byte("never stored")))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommitRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	commit := &Commit{
		Message:   "add two files",
		Timestamp: 1700000000,
		Parents:   []string{HashBlob([]byte("parent"))},
		Tree: map[string]string{
			"a.txt": HashBlob([]byte("a")),
			"b.txt": HashBlob([]byte("b")),
		},
	}

	id, err := CreateCommit(repo, commit)
	require.NoError(t, err)

	got, err := GetCommit(repo, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.CommitID)
	assert.Equal(t, commit.Message, got.Message)
	assert.Equal(t, commit.Timestamp, got.Timestamp)
	assert.Equal(t, commit.Parents, got.Parents)
	assert.Equal(t, commit.Tree, got.Tree)
}

func TestCommitIDIsPureFunctionOfFields(t *testing.T) {
	repo := newTestRepo(t)

	base := func() *Commit {
		return &Commit{
			Message:   "msg",
			Timestamp: 42,
			Tree:      map[string]string{"f": HashBlob([]byte("x"))},
		}
	}

	id1, err := CreateCommit(repo, base())
	require.NoError(t, err)
	id2, err := CreateCommit(repo, base())
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	changed := base()
	changed.Message = "other"
	id3, err := CreateCommit(repo, changed)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id3)

	later := base()
	later.Timestamp = 43
	id4, err := CreateCommit(repo, later)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id4)
}

func TestInitialCommit(t *testing.T) {
	repo := newTestRepo(t)
	commit := NewInitialCommit()
	assert.Equal(t, InitialCommitMessage, commit.Message)
	assert.Zero(t, commit.Timestamp)
	assert.Empty(t, commit.Parents)
	assert.Empty(t, commit.Tree)

	id, err := CreateCommit(repo, commit)
	require.NoError(t, err)

	// Every repository shares the same root commit id.
	other := newTestRepo(t)
	otherID, err := CreateCommit(other, NewInitialCommit())
	require.NoError(t, err)
	assert.Equal(t, id, otherID)
}

func TestListCommits(t *testing.T) {
	repo := newTestRepo(t)
	id1, err := CreateCommit(repo, NewInitialCommit())
	require.NoError(t, err)
	id2, err := CreateCommit(repo, &Commit{
		Message:   "next",
		Timestamp: 7,
		Parents:   []string{id1},
		Tree:      map[string]string{},
	})
	require.NoError(t, err)

	ids, err := ListCommits(repo)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{id1, id2}, ids)
}

func TestResolveCommitID(t *testing.T) {
	repo := newTestRepo(t)
	id, err := CreateCommit(repo, NewInitialCommit())
	require.NoError(t, err)

	full, err := ResolveCommitID(repo, id)
	require.NoError(t, err)
	assert.Equal(t, id, full)

	abbrev, err := ResolveCommitID(repo, id[:8])
	require.NoError(t, err)
	assert.Equal(t, id, abbrev)

	_, err = ResolveCommitID(repo, "0000000000")
	assert.ErrorIs(t, err, ErrNotFound)

	// Too short or non-hex ids never match.
	_, err = ResolveCommitID(repo, id[:3])
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = ResolveCommitID(repo, "not-hex!")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveCommitIDAmbiguousPrefix(t *testing.T) {
	repo := newTestRepo(t)
	id, err := CreateCommit(repo, NewInitialCommit())
	require.NoError(t, err)

	// Manufacture a second commit file sharing the first four characters.
	twin := id[:4] + "f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0"
	require.Len(t, twin, 40)
	require.NoError(t, os.WriteFile(filepath.Join(repo.CommitsDir, twin), []byte("x"), 0644))

	_, err = ResolveCommitID(repo, id[:4])
	assert.ErrorIs(t, err, ErrNotFound)

	// A longer unambiguous prefix still resolves.
	full, err := ResolveCommitID(repo, id[:12])
	require.NoError(t, err)
	assert.Equal(t, id, full)
}
