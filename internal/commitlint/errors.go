// SPDX-License-Identifier: AGPL-3.0-or-later

package commitlint

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is classification.
var (
	ErrCountExceeded  = errors.New("too many commits in pull request")
	ErrInvalidMessage = errors.New("invalid commit message")
)

// CountExceededError is returned when a pull request carries at least Max commits.
type CountExceededError struct {
	Count int
	Max   int
}

func (e *CountExceededError) Error() string {
	return fmt.Sprintf("Pull request must contain fewer than %d commits (found %d).", e.Max, e.Count)
}

func (e *CountExceededError) Unwrap() error { return ErrCountExceeded }

// InvalidMessageError is returned for the first commit whose message fails the rule.
type InvalidMessageError struct {
	Commit Commit
	Rule   string
}

func (e *InvalidMessageError) Error() string {
	return "INVALID: " + e.Commit.Message
}

func (e *InvalidMessageError) Unwrap() error { return ErrInvalidMessage }
