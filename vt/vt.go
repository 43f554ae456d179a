// Package vt maintains a styled cell grid driven by a stream of VT100/ANSI
// escape sequences.
//
// A Buffer is fed raw bytes (typically read from a PTY or a tmux
// capture-pane dump) and keeps a rows×cols grid of cells plus a cursor.
// The parser is chunk-boundary safe: a sequence split across two Write
// calls resumes where it left off. Sequences the buffer does not
// understand are discarded so that varied TUI output never aborts a test.
package vt
