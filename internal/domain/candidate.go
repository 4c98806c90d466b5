package domain

import (
	"fmt"
	"strings"
)

const (
	// WorkspacePlaceholder is substituted with the workspace root in script paths
	WorkspacePlaceholder = "${workspaceFolder}"
	// DefconfigName is the file opened inside a resolved configuration directory
	DefconfigName = "defconfig"
)

// Candidate is one selectable "board:conf" line from the listing script
type Candidate string

// Split separates a candidate into board and conf on the first colon.
// Any further colons stay part of conf.
func (c Candidate) Split() (board, conf string, err error) {
	board, conf, ok := strings.Cut(string(c), ":")
	if !ok {
		return "", "", fmt.Errorf("candidate %q has no ':' separator", string(c))
	}
	return board, conf, nil
}

// ParseListingRaw splits raw listing output on newlines and trims each line.
// Blank lines are kept, one candidate per line.
func ParseListingRaw(raw string) []Candidate {
	if raw == "" {
		return nil
	}
	lines := strings.Split(raw, "\n")
	candidates := make([]Candidate, 0, len(lines))
	for _, line := range lines {
		candidates = append(candidates, Candidate(strings.TrimSpace(line)))
	}
	return candidates
}

// ParseListing is ParseListingRaw without the blank lines
func ParseListing(raw string) []Candidate {
	var candidates []Candidate
	for _, c := range ParseListingRaw(raw) {
		if c == "" {
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// CandidateStrings converts candidates to plain strings for a prompt
func CandidateStrings(candidates []Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = string(c)
	}
	return out
}

// SearchPattern returns the -wholename pattern locating a board configuration
func SearchPattern(board, conf string) string {
	return "*/" + board + "/configs/" + conf
}

// ExpandScriptPath substitutes every workspace placeholder in template with root
func ExpandScriptPath(template, root string) string {
	return strings.ReplaceAll(template, WorkspacePlaceholder, root)
}

// ComposeDefconfigPath joins the workspace root, a directory search match
// ("./board/configs/conf" or "/board/configs/conf") and the defconfig name.
func ComposeDefconfigPath(root, match string) string {
	match = strings.TrimSpace(match)
	if strings.HasPrefix(match, "./") {
		match = match[1:]
	}
	if !strings.HasPrefix(match, "/") {
		match = "/" + match
	}
	match = strings.TrimSuffix(match, "/")
	root = strings.TrimSuffix(root, "/")
	return root + match + "/" + DefconfigName
}
