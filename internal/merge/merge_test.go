package merge_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/merge"
	"github.com/NahomAnteneh/gitlet/internal/objects"
	"github.com/NahomAnteneh/gitlet/internal/refs"
	"github.com/NahomAnteneh/gitlet/internal/repository"
	"github.com/NahomAnteneh/gitlet/internal/staging"
	"github.com/NahomAnteneh/gitlet/internal/worktree"
)

var clock int64 = 1700000000

func tick() int64 {
	clock++
	return clock
}

func initRepo(t *testing.T) *core.Repository {
	t.Helper()
	repo := core.NewRepository(t.TempDir())
	require.NoError(t, repository.CreateRepo(repo))
	return repo
}

func writeWorkFile(t *testing.T, repo *core.Repository, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(repo.WorkFile(name), []byte(content), 0644))
}

func headCommit(t *testing.T, repo *core.Repository) *objects.Commit {
	t.Helper()
	head, err := refs.ReadHead(repo)
	require.NoError(t, err)
	commit, err := objects.GetCommit(repo, head.CommitID)
	require.NoError(t, err)
	return commit
}

func stageAll(t *testing.T, repo *core.Repository, names ...string) *staging.Area {
	t.Helper()
	area, err := staging.Load(repo)
	require.NoError(t, err)
	head := headCommit(t, repo)
	for _, name := range names {
		require.NoError(t, staging.Stage(repo, area, head, name))
	}
	return area
}

func commitFiles(t *testing.T, repo *core.Repository, message string, names ...string) string {
	t.Helper()
	area := stageAll(t, repo, names...)
	id, err := staging.Commit(repo, area, message, tick(), "")
	require.NoError(t, err)
	return id
}

func removeFile(t *testing.T, repo *core.Repository, name string) {
	t.Helper()
	area, err := staging.Load(repo)
	require.NoError(t, err)
	require.NoError(t, staging.Unstage(repo, area, headCommit(t, repo), name))
	_, err = staging.Commit(repo, area, "rm "+name, tick(), "")
	require.NoError(t, err)
}

func branch(t *testing.T, repo *core.Repository, name string) {
	t.Helper()
	head, err := refs.ReadHead(repo)
	require.NoError(t, err)
	require.NoError(t, refs.WriteBranch(repo, name, head.CommitID))
}

// checkout switches branches the way the checkout command does.
func checkout(t *testing.T, repo *core.Repository, name string) {
	t.Helper()
	targetID, err := refs.ReadBranch(repo, name)
	require.NoError(t, err)
	target, err := objects.GetCommit(repo, targetID)
	require.NoError(t, err)
	require.NoError(t, worktree.CheckoutCommit(repo, headCommit(t, repo), target))
	require.NoError(t, refs.WriteHead(repo, &refs.Head{Branch: name, CommitID: targetID}))
	area, err := staging.Load(repo)
	require.NoError(t, err)
	area.Clear()
	require.NoError(t, area.Write())
}

func readWorkFile(t *testing.T, repo *core.Repository, name string) string {
	t.Helper()
	content, err := os.ReadFile(repo.WorkFile(name))
	require.NoError(t, err)
	return string(content)
}

func requireUserError(t *testing.T, err error, message string) {
	t.Helper()
	var userErr *core.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, message, userErr.Message)
}

func TestFindSplitPointSimpleBranch(t *testing.T) {
	repo := initRepo(t)
	writeWorkFile(t, repo, "f", "A\n")
	base := commitFiles(t, repo, "c1", "f")

	branch(t, repo, "dev")
	writeWorkFile(t, repo, "f", "MASTER\n")
	masterTip := commitFiles(t, repo, "m", "f")

	checkout(t, repo, "dev")
	writeWorkFile(t, repo, "f", "DEV\n")
	devTip := commitFiles(t, repo, "d", "f")

	split, err := merge.FindSplitPoint(repo, masterTip, devTip)
	require.NoError(t, err)
	assert.Equal(t, base, split)
}

func TestFindSplitPointSameCommit(t *testing.T) {
	repo := initRepo(t)
	head, err := refs.ReadHead(repo)
	require.NoError(t, err)

	split, err := merge.FindSplitPoint(repo, head.CommitID, head.CommitID)
	require.NoError(t, err)
	assert.Equal(t, head.CommitID, split)
}

func TestFindSplitPointThroughMergeParents(t *testing.T) {
	repo := initRepo(t)
	writeWorkFile(t, repo, "f", "A\n")
	commitFiles(t, repo, "c1", "f")

	branch(t, repo, "dev")
	writeWorkFile(t, repo, "g", "master side\n")
	commitFiles(t, repo, "m1", "g")

	checkout(t, repo, "dev")
	writeWorkFile(t, repo, "h", "dev side\n")
	devTip := commitFiles(t, repo, "d1", "h")

	checkout(t, repo, "master")
	require.NoError(t, merge.Merge(repo, "dev", tick()))
	mergeID, err := refs.ReadBranch(repo, "master")
	require.NoError(t, err)

	// After the merge, dev's tip is an ancestor of master through the
	// second parent, so it is the split point itself.
	split, err := merge.FindSplitPoint(repo, mergeID, devTip)
	require.NoError(t, err)
	assert.Equal(t, devTip, split)
}

func TestMergeTakesOtherSideChanges(t *testing.T) {
	repo := initRepo(t)
	writeWorkFile(t, repo, "f", "A\n")
	commitFiles(t, repo, "c1", "f")

	branch(t, repo, "dev")
	checkout(t, repo, "dev")
	writeWorkFile(t, repo, "f", "B\n")
	writeWorkFile(t, repo, "added", "only on dev\n")
	devTip := commitFiles(t, repo, "c2", "f", "added")

	// Diverge master so the split point is behind both heads.
	checkout(t, repo, "master")
	writeWorkFile(t, repo, "ours", "only on master\n")
	commitFiles(t, repo, "m", "ours")

	preMergeHead := headCommit(t, repo).CommitID
	require.NoError(t, merge.Merge(repo, "dev", tick()))

	// Modified in other only (case 1) and added in other only (case 5).
	assert.Equal(t, "B\n", readWorkFile(t, repo, "f"))
	assert.Equal(t, "only on dev\n", readWorkFile(t, repo, "added"))

	mergeCommit := headCommit(t, repo)
	require.True(t, mergeCommit.IsMerge())
	assert.Equal(t, preMergeHead, mergeCommit.FirstParent())
	assert.Equal(t, devTip, mergeCommit.SecondParent())
	assert.Equal(t, "Merged dev into master.", mergeCommit.Message)

	// Staging is empty again.
	area, err := staging.Load(repo)
	require.NoError(t, err)
	assert.True(t, area.IsEmpty())
}

func TestMergeRemovedInOther(t *testing.T) {
	repo := initRepo(t)
	writeWorkFile(t, repo, "f", "A\n")
	writeWorkFile(t, repo, "keep", "stay\n")
	commitFiles(t, repo, "c1", "f", "keep")

	branch(t, repo, "dev")
	checkout(t, repo, "dev")
	removeFile(t, repo, "f")

	checkout(t, repo, "master")
	writeWorkFile(t, repo, "keep", "changed on master\n")
	commitFiles(t, repo, "m", "keep")

	require.NoError(t, merge.Merge(repo, "dev", tick()))

	// Removed in other, unchanged here (case 6): gone from tree and WD.
	assert.False(t, core.FileExists(repo.WorkFile("f")))
	mergeCommit := headCommit(t, repo)
	assert.NotContains(t, mergeCommit.Tree, "f")
	assert.Contains(t, mergeCommit.Tree, "keep")
}

func TestMergeConflictBothModified(t *testing.T) {
	repo := initRepo(t)
	writeWorkFile(t, repo, "f", "A\n")
	commitFiles(t, repo, "c1", "f")

	branch(t, repo, "dev")
	writeWorkFile(t, repo, "f", "MASTER\n")
	commitFiles(t, repo, "m", "f")

	checkout(t, repo, "dev")
	writeWorkFile(t, repo, "f", "DEV\n")
	commitFiles(t, repo, "d", "f")

	checkout(t, repo, "master")
	require.NoError(t, merge.Merge(repo, "dev", tick()))

	expected := "<<<<<<< HEAD\nMASTER\n=======\nDEV\n>>>>>>>\n"
	assert.Equal(t, expected, readWorkFile(t, repo, "f"))

	// The conflict blob is committed in the merge commit.
	mergeCommit := headCommit(t, repo)
	require.True(t, mergeCommit.IsMerge())
	blob, err := objects.GetBlob(repo, mergeCommit.Tree["f"])
	require.NoError(t, err)
	assert.Equal(t, expected, string(blob))
}

func TestMergeConflictModifiedVersusDeleted(t *testing.T) {
	repo := initRepo(t)
	writeWorkFile(t, repo, "f", "A\n")
	commitFiles(t, repo, "c1", "f")

	branch(t, repo, "dev")
	writeWorkFile(t, repo, "f", "MASTER\n")
	commitFiles(t, repo, "m", "f")

	checkout(t, repo, "dev")
	removeFile(t, repo, "f")

	checkout(t, repo, "master")
	require.NoError(t, merge.Merge(repo, "dev", tick()))

	// The absent side contributes an empty region.
	expected := "<<<<<<< HEAD\nMASTER\n=======\n>>>>>>>\n"
	assert.Equal(t, expected, readWorkFile(t, repo, "f"))
}

func TestMergeGivenBranchIsAncestor(t *testing.T) {
	repo := initRepo(t)
	writeWorkFile(t, repo, "f", "A\n")
	commitFiles(t, repo, "c1", "f")

	branch(t, repo, "dev")
	writeWorkFile(t, repo, "f", "B\n")
	tip := commitFiles(t, repo, "c2", "f")

	// dev points at an ancestor of master's head: nothing to do.
	require.NoError(t, merge.Merge(repo, "dev", tick()))
	head, err := refs.ReadHead(repo)
	require.NoError(t, err)
	assert.Equal(t, tip, head.CommitID)
	assert.Equal(t, "master", head.Branch)
}

func TestMergeFastForward(t *testing.T) {
	repo := initRepo(t)
	writeWorkFile(t, repo, "f", "A\n")
	base := commitFiles(t, repo, "c1", "f")

	branch(t, repo, "dev")
	checkout(t, repo, "dev")
	writeWorkFile(t, repo, "f", "B\n")
	tip := commitFiles(t, repo, "c2", "f")

	// Switch HEAD back to master, still at the base, and merge dev into it.
	require.NoError(t, refs.WriteHead(repo, &refs.Head{Branch: "master", CommitID: base}))
	require.NoError(t, merge.Merge(repo, "dev", tick()))

	head, err := refs.ReadHead(repo)
	require.NoError(t, err)
	assert.Equal(t, tip, head.CommitID)
	assert.Equal(t, "B\n", readWorkFile(t, repo, "f"))
}

func TestMergePreconditions(t *testing.T) {
	repo := initRepo(t)
	writeWorkFile(t, repo, "f", "A\n")
	commitFiles(t, repo, "c1", "f")
	branch(t, repo, "dev")

	// Dirty staging area is rejected first.
	writeWorkFile(t, repo, "g", "staged\n")
	area := stageAll(t, repo, "g")
	require.False(t, area.IsEmpty())
	requireUserError(t, merge.Merge(repo, "dev", tick()), "You have uncommitted changes.")
	area.Clear()
	require.NoError(t, area.Write())
	require.NoError(t, os.Remove(repo.WorkFile("g")))

	requireUserError(t, merge.Merge(repo, "ghost", tick()), "A branch with that name does not exist.")
	requireUserError(t, merge.Merge(repo, "master", tick()), "Cannot merge a branch with itself.")
}

func TestMergeUntrackedFileInTheWay(t *testing.T) {
	repo := initRepo(t)
	writeWorkFile(t, repo, "f", "A\n")
	commitFiles(t, repo, "c1", "f")

	branch(t, repo, "dev")
	checkout(t, repo, "dev")
	writeWorkFile(t, repo, "new.txt", "X\n")
	commitFiles(t, repo, "c", "new.txt")

	checkout(t, repo, "master")
	writeWorkFile(t, repo, "new.txt", "other\n")

	requireUserError(t, merge.Merge(repo, "dev", tick()),
		"There is an untracked file in the way; delete it, or add and commit it first.")

	// No state change: master's head and the working file are untouched.
	assert.Equal(t, "other\n", readWorkFile(t, repo, "new.txt"))
	head, err := refs.ReadHead(repo)
	require.NoError(t, err)
	assert.Equal(t, "master", head.Branch)
}
