package notify

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole().WithWriter(&buf)

	console.Info("pulling from origin")
	console.Success("Committed 3 files")
	console.Warn("nothing staged")
	console.Error("push failed", fmt.Errorf("exit status 1"))

	out := buf.String()
	assert.Contains(t, out, "pulling from origin")
	assert.Contains(t, out, "Committed 3 files")
	assert.Contains(t, out, "nothing staged")
	assert.Contains(t, out, "push failed")
	assert.Contains(t, out, "exit status 1")
}

func TestMulti(t *testing.T) {
	var a, b bytes.Buffer
	m := Multi(NewConsole().WithWriter(&a), NewConsole().WithWriter(&b))

	m.Success("Pushed 2 files to remote")

	assert.Contains(t, a.String(), "Pushed 2 files to remote")
	assert.Contains(t, b.String(), "Pushed 2 files to remote")
}

func TestSilent(t *testing.T) {
	// Must not panic; output goes nowhere.
	var s Silent
	s.Info("x")
	s.Success("x")
	s.Warn("x")
	s.Error("x", nil)
}
