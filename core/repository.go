package core

import (
	"os"
	"path/filepath"
)

// Common constants
const (
	GitletDirName = ".gitlet"
)

// Repository carries the resolved filesystem layout of one Gitlet
// repository. Every engine operation takes a *Repository instead of
// consulting process-global state, so tests can point the engine at a
// temporary directory.
type Repository struct {
	Root        string // working directory containing .gitlet
	GitletDir   string // Root/.gitlet
	CommitsDir  string // Root/.gitlet/commits
	BlobsDir    string // Root/.gitlet/blobs
	BranchesDir string // Root/.gitlet/branches
	HeadFile    string // Root/.gitlet/repo
	StagingFile string // Root/.gitlet/stagingArea
	ConfigFile  string // Root/.gitlet/config
}

// NewRepository builds a Repository rooted at the given directory. It does
// not touch the filesystem.
func NewRepository(root string) *Repository {
	gitletDir := filepath.Join(root, GitletDirName)
	return &Repository{
		Root:        root,
		GitletDir:   gitletDir,
		CommitsDir:  filepath.Join(gitletDir, "commits"),
		BlobsDir:    filepath.Join(gitletDir, "blobs"),
		BranchesDir: filepath.Join(gitletDir, "branches"),
		HeadFile:    filepath.Join(gitletDir, "repo"),
		StagingFile: filepath.Join(gitletDir, "stagingArea"),
		ConfigFile:  filepath.Join(gitletDir, "config"),
	}
}

// Exists reports whether the repository directory is present on disk.
func (r *Repository) Exists() bool {
	return FileExists(r.GitletDir)
}

// WorkFile returns the absolute path of a working-directory file.
func (r *Repository) WorkFile(relPath string) string {
	return filepath.Join(r.Root, relPath)
}

// FindRepository locates the repository containing the current working
// directory, searching upward the way the repo root is normally discovered.
// GITLET_REPOSITORY_PATH, when set, forces a specific root.
func FindRepository() (*Repository, error) {
	if forcedRoot := os.Getenv("GITLET_REPOSITORY_PATH"); forcedRoot != "" {
		repo := NewRepository(forcedRoot)
		if repo.Exists() {
			return repo, nil
		}
		return nil, RepositoryError("GITLET_REPOSITORY_PATH is set but no repository found there", nil)
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return nil, RepositoryError("failed to get current directory", err)
	}

	for {
		repo := NewRepository(currentDir)
		if repo.Exists() {
			return repo, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir { // Reached root
			return nil, RepositoryError("not a gitlet repository", nil)
		}
		currentDir = parentDir
	}
}
