package domain

import "time"

// Request describes one operation invocation.
type Request struct {
	// Operation is the action to perform.
	Operation Operation `json:"operation"`

	// Path is the target file.
	Path string `json:"path"`

	// Message overrides the configured commit message. Commit only.
	Message string `json:"message,omitempty"`

	// RepoName overrides the configured repository naming policy.
	// Create-and-import only.
	RepoName string `json:"repo_name,omitempty"`

	// RepoHome overrides the configured repository home directory.
	// Create-and-import only.
	RepoHome string `json:"repo_home,omitempty"`
}

// Message is a single severity-tagged user-facing message.
type Message struct {
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}

// Report is the outcome of one operation. It always carries exactly one
// terminal message: INFO when Err is nil, ERROR otherwise.
type Report struct {
	// ID uniquely identifies the invocation.
	ID string `json:"id"`

	// Operation is the action that was requested.
	Operation Operation `json:"operation"`

	// Path is the file the request targeted.
	Path string `json:"path"`

	// Paths lists what the final command acted on. After commit recovery
	// this is the expanded ancestor list.
	Paths []string `json:"paths,omitempty"`

	// Message is the terminal message.
	Message Message `json:"message"`

	// Err is the error category, nil on success.
	Err error `json:"-"`

	// Recovered is true when the commit succeeded on the recovery retry.
	Recovered bool `json:"recovered,omitempty"`

	// Detail carries operation specific output, such as a diff summary.
	Detail string `json:"detail,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// OK reports whether the operation succeeded.
func (r Report) OK() bool {
	return r.Err == nil
}

// Duration returns how long the operation took.
func (r Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
