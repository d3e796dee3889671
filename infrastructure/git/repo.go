package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// ErrNoRemote is returned when .git/config has no URL for the remote
var ErrNoRemote = errors.New("git remote not configured")

// RemoteURL reads the URL of a remote from <dir>/.git/config
func RemoteURL(dir, remote string) (string, error) {
	cfgPath := filepath.Join(dir, ".git", "config")

	cfg, err := ini.Load(cfgPath)
	if err != nil {
		return "", fmt.Errorf("failed to read git config: %w", err)
	}

	url := cfg.Section(fmt.Sprintf("remote %q", remote)).Key("url").String()
	if url == "" {
		return "", fmt.Errorf("%w: %s", ErrNoRemote, remote)
	}
	return url, nil
}

// RepositorySlug returns "owner/repo" for the origin remote of dir
func RepositorySlug(dir string) (string, error) {
	url, err := RemoteURL(dir, "origin")
	if err != nil {
		return "", err
	}
	return ParseSlug(url)
}

// ParseSlug extracts "owner/repo" from an https or ssh remote URL, e.g.
// https://github.com/acme/web.git or git@github.com:acme/web.git
func ParseSlug(url string) (string, error) {
	path := strings.TrimSpace(url)
	path = strings.TrimSuffix(path, "/")
	path = strings.TrimSuffix(path, ".git")

	if i := strings.Index(path, "://"); i >= 0 {
		path = path[i+3:]
		if j := strings.Index(path, "/"); j >= 0 {
			path = path[j+1:]
		} else {
			path = ""
		}
	} else if i := strings.Index(path, ":"); i >= 0 {
		path = path[i+1:]
	}

	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", fmt.Errorf("cannot determine owner/repo from remote %q", url)
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1], nil
}
