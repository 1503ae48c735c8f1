package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"go.uber.org/zap"
)

// LockFile is created in the work dir while a writer holds the lock.
const LockFile = ".quire.lock"

// Client drives a git repository in-process and serializes writers across
// processes with a lock file.
type Client struct {
	WorkDir     string
	Logger      *zap.Logger
	AuthorName  string
	AuthorEmail string

	lockPath string
	repo     *gogit.Repository
}

// NewClient creates a new git client for the given working directory.
func NewClient(workDir string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		WorkDir:     workDir,
		Logger:      logger,
		AuthorName:  "Quire",
		AuthorEmail: "quire@localhost",
		lockPath:    LockFile,
	}
}

// Lock acquires the file lock, polling until it is free or ctx is done.
func (c *Client) Lock(ctx context.Context) (func(), error) {
	fullLockPath := filepath.Join(c.WorkDir, c.lockPath)

	for {
		f, err := os.OpenFile(fullLockPath, os.O_CREATE|os.O_EXCL, 0666)
		if err == nil {
			f.Close()
			return func() {
				os.Remove(fullLockPath)
			}, nil
		}

		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to acquire lock: %w", ctx.Err())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// IsRepo reports whether WorkDir already holds a git repository.
func (c *Client) IsRepo() bool {
	_, err := c.open()
	return err == nil
}

// Init opens the repository in WorkDir, creating it if needed.
func (c *Client) Init() error {
	if _, err := c.open(); err == nil {
		return nil
	} else if !errors.Is(err, gogit.ErrRepositoryNotExists) {
		return err
	}

	if err := os.MkdirAll(c.WorkDir, 0755); err != nil {
		return err
	}
	r, err := gogit.PlainInit(c.WorkDir, false)
	if err != nil {
		return fmt.Errorf("git init failed: %w", err)
	}
	c.repo = r
	c.Logger.Info("initialized git repository", zap.String("dir", c.WorkDir))
	return nil
}

func (c *Client) open() (*gogit.Repository, error) {
	if c.repo != nil {
		return c.repo, nil
	}
	r, err := gogit.PlainOpen(c.WorkDir)
	if err != nil {
		return nil, err
	}
	c.repo = r
	return r, nil
}

func (c *Client) worktree() (*gogit.Worktree, error) {
	r, err := c.open()
	if err != nil {
		return nil, err
	}
	return r.Worktree()
}

// Add stages files given relative to WorkDir.
func (c *Client) Add(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	wt, err := c.worktree()
	if err != nil {
		return err
	}
	for _, f := range files {
		c.Logger.Debug("git add", zap.String("file", f), zap.String("dir", c.WorkDir))
		if _, err := wt.Add(f); err != nil {
			return fmt.Errorf("git add %s failed: %w", f, err)
		}
	}
	return nil
}

// Commit records the staged changes and returns the new commit hash.
// A clean worktree is not an error; it returns an empty hash.
func (c *Client) Commit(msg string) (string, error) {
	wt, err := c.worktree()
	if err != nil {
		return "", err
	}
	status, err := wt.Status()
	if err != nil {
		return "", err
	}
	if !hasStaged(status) {
		c.Logger.Debug("nothing to commit", zap.String("dir", c.WorkDir))
		return "", nil
	}

	hash, err := wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  c.AuthorName,
			Email: c.AuthorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("git commit failed: %w", err)
	}
	return hash.String(), nil
}

// hasStaged ignores untracked files such as the lock itself.
func hasStaged(status gogit.Status) bool {
	for _, fs := range status {
		if fs.Staging != gogit.Unmodified && fs.Staging != gogit.Untracked {
			return true
		}
	}
	return false
}

// Status returns the porcelain-style status of the worktree.
func (c *Client) Status() (string, error) {
	wt, err := c.worktree()
	if err != nil {
		return "", err
	}
	status, err := wt.Status()
	if err != nil {
		return "", err
	}
	return status.String(), nil
}

// Head returns the commit HEAD points at.
func (c *Client) Head() (*object.Commit, error) {
	r, err := c.open()
	if err != nil {
		return nil, err
	}
	ref, err := r.Head()
	if err != nil {
		return nil, err
	}
	return r.CommitObject(ref.Hash())
}
