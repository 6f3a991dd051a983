package git

import (
	"strconv"
	"strings"
)

// ChangeRecord describes one file reported by the status query.
type ChangeRecord struct {
	// Path is the file path relative to the repository root
	Path string `json:"path"`

	// Kind is the single-letter change kind (M, A, D, R, U, ...)
	Kind string `json:"kind"`
}

// StatusResult contains the parsed working-tree status.
type StatusResult struct {
	// Branch is the current branch name
	Branch string `json:"branch"`

	// Files lists changed files in the order git reported them
	Files []ChangeRecord `json:"files"`

	// AheadCount is the number of commits ahead of the upstream branch
	AheadCount int `json:"ahead_count"`

	// BehindCount is the number of commits behind the upstream branch
	BehindCount int `json:"behind_count"`

	// HasUpstream indicates if the branch has an upstream tracking branch
	HasUpstream bool `json:"has_upstream"`
}

// IsDirty reports whether the working tree has any changes.
func (s *StatusResult) IsDirty() bool {
	return len(s.Files) > 0
}

// BranchInfo lists local branches.
type BranchInfo struct {
	All     []string `json:"all"`
	Current string   `json:"current"`
}

// parseStatus parses `git status --porcelain=v2 --branch` output.
// File order is preserved exactly as git reported it.
func parseStatus(output string) *StatusResult {
	status := &StatusResult{}

	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}

		// Header lines start with '#'
		if strings.HasPrefix(line, "# ") {
			parts := strings.Fields(line)
			if len(parts) < 3 {
				continue
			}
			switch parts[1] {
			case "branch.head":
				status.Branch = parts[2]
			case "branch.upstream":
				status.HasUpstream = true
			case "branch.ab":
				// format is +<ahead> -<behind>
				if len(parts) > 2 {
					status.AheadCount = parseSigned(parts[2], "+")
				}
				if len(parts) > 3 {
					status.BehindCount = parseSigned(parts[3], "-")
				}
			}
			continue
		}

		if rec, ok := parseEntry(line); ok {
			status.Files = append(status.Files, rec)
		}
	}

	return status
}

// parseEntry parses a single non-header porcelain v2 line into a ChangeRecord.
func parseEntry(line string) (ChangeRecord, bool) {
	parts := strings.SplitN(line, " ", 9)
	if len(parts) == 0 {
		return ChangeRecord{}, false
	}

	switch parts[0] {
	case "?": // untracked
		if len(parts) < 2 {
			return ChangeRecord{}, false
		}
		return ChangeRecord{Path: strings.Join(parts[1:], " "), Kind: "U"}, true

	case "1": // ordinary change: 1 XY sub mH mI mW hH hI path
		if len(parts) < 9 {
			return ChangeRecord{}, false
		}
		return ChangeRecord{Path: parts[8], Kind: changeKind(parts[1])}, true

	case "2": // rename or copy: path is "new\told"
		if len(parts) < 9 {
			return ChangeRecord{}, false
		}
		// Rename entries carry a score field before the paths
		fields := strings.SplitN(line, " ", 10)
		if len(fields) < 10 {
			return ChangeRecord{}, false
		}
		path := fields[9]
		if idx := strings.IndexByte(path, '\t'); idx >= 0 {
			path = path[:idx]
		}
		return ChangeRecord{Path: path, Kind: "R"}, true

	case "u": // unmerged: u XY sub m1 m2 m3 mW h1 h2 h3 path
		fields := strings.SplitN(line, " ", 11)
		if len(fields) < 11 {
			return ChangeRecord{}, false
		}
		return ChangeRecord{Path: fields[10], Kind: "C"}, true
	}

	return ChangeRecord{}, false
}

// changeKind collapses a porcelain XY pair into a single-letter kind.
// The working-tree column wins when both sides changed.
func changeKind(xy string) string {
	if len(xy) < 2 {
		return "M"
	}
	if xy[1] != '.' {
		return string(xy[1])
	}
	return string(xy[0])
}

func parseSigned(field, sign string) int {
	n, _ := strconv.Atoi(strings.TrimPrefix(field, sign))
	return n
}
