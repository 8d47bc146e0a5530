// Package gitstate identifies the revision of a competition state
// directory: its git commit if it's a worktree, or a synthetic id generated
// afresh on each Resolve call otherwise.
package gitstate

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/google/uuid"
)

// State is a competition state directory's resolved revision. A fresh
// State is computed once per directory and cached on the value returned,
// never behind a package-level variable, so two CompStates built from two
// different directories in the same process never observe each other's id.
type State struct {
	Dir      string
	Revision string
	IsGit    bool
}

// Resolve shells out to `git rev-parse HEAD` in dir; if that fails (dir is
// not a git worktree, or git isn't installed), it falls back to a fresh
// uuid.NewString() stamped for this one State value.
func Resolve(dir string) State {
	if rev, ok := gitRevision(dir); ok {
		return State{Dir: dir, Revision: rev, IsGit: true}
	}
	return State{Dir: dir, Revision: uuid.NewString(), IsGit: false}
}

func gitRevision(dir string) (string, bool) {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", false
	}
	return strings.TrimSpace(out.String()), true
}
