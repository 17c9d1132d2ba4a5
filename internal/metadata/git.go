package metadata

import (
	"strings"

	"github.com/go-git/go-git/v5"
	"go.uber.org/zap"
)

// GitProvider reads branch, commit and repository name from a local git
// checkout. Any field it cannot determine is left empty.
type GitProvider struct {
	path   string
	logger *zap.Logger
}

// NewGitProvider opens the repository containing path on each Lookup.
func NewGitProvider(path string, logger *zap.Logger) *GitProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitProvider{path: path, logger: logger.Named("git_metadata")}
}

func (g *GitProvider) Lookup() Fields {
	repo, err := git.PlainOpenWithOptions(g.path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		g.logger.Debug("No git repository available for metadata", zap.String("path", g.path), zap.Error(err))
		return Fields{}
	}

	var f Fields
	if head, err := repo.Head(); err == nil {
		if head.Name().IsBranch() {
			f.Branch = head.Name().String()
		}
		f.Commit = head.Hash().String()
	} else {
		g.logger.Debug("Could not resolve HEAD", zap.Error(err))
	}

	if remote, err := repo.Remote("origin"); err == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			f.Repository = RepositoryFromURL(urls[0])
		}
	}
	return f
}

// RepositoryFromURL extracts "owner/name" from an https or scp-style remote URL.
func RepositoryFromURL(url string) string {
	u := strings.TrimSuffix(strings.TrimSpace(url), "/")
	u = strings.TrimSuffix(u, ".git")
	if i := strings.Index(u, "://"); i != -1 {
		u = u[i+3:]
	} else if i := strings.Index(u, ":"); i != -1 {
		// git@host:owner/name
		u = strings.Replace(u, ":", "/", 1)
	}
	parts := strings.Split(u, "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1]
}
