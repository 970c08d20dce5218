package svn

import (
	"slices"
	"strings"
)

// Result is the captured outcome of one invocation. It is produced fresh
// for every call and never persisted.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Outcome is the classification of a Result.
type Outcome int

const (
	// OutcomeSuccess means stdout carried the payload.
	OutcomeSuccess Outcome = iota
	// OutcomeBenign means stderr carried a recognized non-error code.
	OutcomeBenign
	// OutcomeError means stderr carried an error.
	OutcomeError
	// OutcomeAmbiguous means both streams were empty.
	OutcomeAmbiguous
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeBenign:
		return "benign"
	case OutcomeError:
		return "error"
	case OutcomeAmbiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// Classification is the interpreted form of a Result.
type Classification struct {
	Outcome Outcome
	// Payload is stdout on success and stderr on error or benign outcomes.
	Payload string
	// Code is the matched benign code, or the first code found in error text.
	Code     Code
	ExitCode int
}

// Classify interprets a result: non-empty stdout is success, otherwise
// non-empty stderr is benign when it carries one of the given codes and an
// error if not, and empty output on both streams is ambiguous.
//
// Stdout accompanied by stderr and a non-zero exit status counts as an error,
// since svn prints partial output before failing.
func Classify(res Result, benign ...Code) Classification {
	stdout := strings.TrimSpace(res.Stdout)
	stderr := strings.TrimSpace(res.Stderr)

	switch {
	case stdout != "" && (res.ExitCode == 0 || stderr == ""):
		return Classification{Outcome: OutcomeSuccess, Payload: res.Stdout, ExitCode: res.ExitCode}
	case stderr != "":
		codes := Codes(stderr)
		if stdout == "" {
			for _, c := range codes {
				if slices.Contains(benign, c) {
					return Classification{Outcome: OutcomeBenign, Payload: stderr, Code: c, ExitCode: res.ExitCode}
				}
			}
		}
		c := Classification{Outcome: OutcomeError, Payload: stderr, ExitCode: res.ExitCode}
		if len(codes) > 0 {
			c.Code = codes[0]
		}
		return c
	default:
		return Classification{Outcome: OutcomeAmbiguous, ExitCode: res.ExitCode}
	}
}

// OK reports whether the outcome is success or benign.
func (c Classification) OK() bool {
	return c.Outcome == OutcomeSuccess || c.Outcome == OutcomeBenign
}

// Succeeded reports whether the invocation of t worked. Besides success and
// benign outcomes, an empty result with exit status 0 counts for quiet templates.
func (c Classification) Succeeded(t Template) bool {
	return c.OK() || (c.Outcome == OutcomeAmbiguous && c.ExitCode == 0 && t.Quiet())
}

// Err returns a *CommandError for error and ambiguous outcomes, nil when
// Succeeded(t) holds.
func (c Classification) Err(t Template) error {
	if c.Succeeded(t) {
		return nil
	}
	switch c.Outcome {
	case OutcomeError:
		return &CommandError{Template: t, Code: c.Code, Text: c.Payload, ExitCode: c.ExitCode}
	case OutcomeAmbiguous:
		return &CommandError{Template: t, ExitCode: c.ExitCode, Ambiguous: true}
	case OutcomeSuccess, OutcomeBenign:
		return nil
	default:
		return nil
	}
}
