package encoding

import (
	"fmt"
	"strings"
)

// Policy decides what happens to a value that Repair cannot recover.
type Policy string

const (
	// PolicyAbort returns the repair error and stops the run.
	PolicyAbort Policy = "abort"
	// PolicyKeep writes the original, unrepaired text.
	PolicyKeep Policy = "keep"
	// PolicySkip drops the row holding the value.
	PolicySkip Policy = "skip"
)

// ParsePolicy parses a flag value. The empty string selects PolicyKeep.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyKeep:
		return PolicyKeep, nil
	case PolicyAbort:
		return PolicyAbort, nil
	case PolicySkip:
		return PolicySkip, nil
	default:
		return "", fmt.Errorf("invalid encoding policy '%s' (valid: abort, keep, skip)", s)
	}
}

// Apply repairs text and resolves a failure according to the policy.
// keep is false when the row should be dropped; err is non-nil only under
// PolicyAbort. failed reports whether Repair itself failed.
func (p Policy) Apply(text string) (out string, keep bool, failed bool, err error) {
	fixed, rerr := Repair(text)
	if rerr == nil {
		return fixed, true, false, nil
	}

	switch p {
	case PolicyAbort:
		return "", false, true, rerr
	case PolicySkip:
		return "", false, true, nil
	default:
		return text, true, true, nil
	}
}
