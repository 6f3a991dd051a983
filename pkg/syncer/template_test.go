package syncer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/grovetools/autosync/git"
)

func TestFormatMessage(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	snapshot := []git.ChangeRecord{
		{Path: "a.md", Kind: "M"},
		{Path: "b.md", Kind: "M"},
		{Path: "c.md", Kind: "A"},
	}

	t.Run("no placeholders returns template unchanged", func(t *testing.T) {
		got := FormatMessage("plain backup message", "%Y-%m-%d", snapshot, now)
		assert.Equal(t, "plain backup message", got)
	})

	t.Run("date placeholder uses strftime pattern", func(t *testing.T) {
		got := FormatMessage("backup: {{date}}", "%Y-%m-%d %H:%M:%S", nil, now)
		assert.Equal(t, "backup: 2025-03-14 09:26:53", got)
	})

	t.Run("numFiles expands to decimal count", func(t *testing.T) {
		got := FormatMessage("changed {{numFiles}} files", "%Y-%m-%d", snapshot, now)
		assert.Equal(t, "changed 3 files", got)
	})

	t.Run("files groups by first-seen kind order", func(t *testing.T) {
		got := FormatMessage("{{files}}", "%Y-%m-%d", snapshot, now)
		assert.Equal(t, "M a.md b.md, A c.md", got)
	})

	t.Run("all placeholders combined", func(t *testing.T) {
		got := FormatMessage("{{date}}: {{numFiles}} ({{files}})", "%Y", snapshot, now)
		assert.Equal(t, "2025: 3 (M a.md b.md, A c.md)", got)
	})

	t.Run("unrecognized placeholders stay verbatim", func(t *testing.T) {
		got := FormatMessage("backup {{hostname}} at {{date}}", "%Y", nil, now)
		assert.Equal(t, "backup {{hostname}} at 2025", got)
	})

	t.Run("invalid date pattern falls back", func(t *testing.T) {
		got := FormatMessage("{{date}}", "%Q", nil, now)
		assert.Equal(t, "2025-03-14 09:26:53", got)
	})

	t.Run("empty snapshot", func(t *testing.T) {
		got := FormatMessage("{{numFiles}} [{{files}}]", "%Y", nil, now)
		assert.Equal(t, "0 []", got)
	})
}

func TestDescribeFiles(t *testing.T) {
	t.Run("interleaved kinds keep first-seen group order", func(t *testing.T) {
		snapshot := []git.ChangeRecord{
			{Path: "one.md", Kind: "A"},
			{Path: "two.md", Kind: "M"},
			{Path: "three.md", Kind: "A"},
			{Path: "four.md", Kind: "D"},
		}
		assert.Equal(t, "A one.md three.md, M two.md, D four.md", describeFiles(snapshot))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", describeFiles(nil))
	})
}
