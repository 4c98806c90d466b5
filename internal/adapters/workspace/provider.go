package workspace

import (
	"os"
	"path/filepath"
	"strings"
)

// Marker is the file that identifies a NuttX source root
const Marker = "tools/configure.sh"

// Provider implements ports.WorkspaceProvider for a single directory
type Provider struct {
	root string
}

// NewProvider creates a provider for path. A path that is empty or not an
// existing directory means no workspace is open.
func NewProvider(path string) *Provider {
	return &Provider{root: normalize(path)}
}

// Discover walks up from start looking for a directory containing Marker.
// When none is found the provider uses start itself.
func Discover(start string) *Provider {
	dir := normalize(start)
	if dir == "" {
		return &Provider{}
	}
	for cur := dir; ; {
		if _, err := os.Stat(filepath.Join(cur, filepath.FromSlash(Marker))); err == nil {
			return &Provider{root: cur}
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	return &Provider{root: dir}
}

// Root returns the absolute workspace root, or "" when there is none
func (p *Provider) Root() string {
	return p.root
}

func normalize(path string) string {
	if path == "" {
		return ""
	}
	// Expand ~ to home directory
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return ""
	}
	return abs
}
