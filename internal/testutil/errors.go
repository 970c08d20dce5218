// Package testutil provides testing utilities for svnop.
//
// This package contains mock errors and a scripted svn executor used across
// test files. It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
var (
	// ErrMockSpawnFailed simulates an executor that could not start a process.
	ErrMockSpawnFailed = errors.New("spawn failed")

	// ErrMockJournalUnavailable simulates a journal that rejects writes.
	ErrMockJournalUnavailable = errors.New("journal unavailable")

	// ErrMockPrompt simulates a confirmation prompt failure.
	ErrMockPrompt = errors.New("prompt failed")
)
