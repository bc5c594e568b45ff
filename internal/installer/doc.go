// Package installer orchestrates the one-shot Neovim configuration
// install.
//
// The flow is a single forward pass with no state machine:
//
//  1. Detect the host package manager (pacman, apt, dnf, or unknown).
//  2. Verify the nvim binary exists; abort before any filesystem
//     mutation if it does not.
//  3. Back up an existing config directory by renaming it to a
//     timestamped sibling (at most one backup per run).
//  4. Create the destination directory and install init.lua, either
//     copied from a source file or written from the embedded default.
//  5. Run the fixed dependency-install command list for the detected
//     package manager. An unknown package manager prints manual
//     instructions and succeeds as a no-op.
//
// By default a failing dependency command aborts the run and its exit
// code is propagated; with KeepGoing every command is attempted and the
// failures are aggregated. There is no rollback: packages installed
// before a failure stay installed.
//
// All external command execution goes through an injected execx.Runner,
// so the whole flow can be exercised in tests with a recording fake.
package installer
