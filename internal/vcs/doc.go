// Package vcs snapshots the project in git once the installation is done.
//
// Git stages every change in the worktree, commits it and pushes a branch to
// a remote using go-git, so no git binary is required. Commit authorship
// comes from an explicit signature when one is configured and from the
// repository and global git configuration otherwise.
package vcs
