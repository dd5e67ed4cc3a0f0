package bumpcheck

import "fmt"

const (
	environmentErrorTemplateConstant = "git invocation failed: %v"
	policyViolationExitCodeConstant  = 1
)

// EnvironmentError reports a git invocation failure unrelated to the bump
// policy. The exit code of the underlying subprocess is preserved so the
// process boundary can propagate it verbatim.
type EnvironmentError struct {
	Cause       error
	GitExitCode int
}

// Error renders the underlying git failure.
func (environmentError EnvironmentError) Error() string {
	return fmt.Sprintf(environmentErrorTemplateConstant, environmentError.Cause)
}

// Unwrap exposes the underlying git failure.
func (environmentError EnvironmentError) Unwrap() error {
	return environmentError.Cause
}

// ExitCode exposes the exit status of the failed git subprocess.
func (environmentError EnvironmentError) ExitCode() int {
	return environmentError.GitExitCode
}

// PolicyViolationError reports a staged version that is not strictly greater
// than the head version. This is the expected failure mode of the hook, not a
// bug condition.
type PolicyViolationError struct {
	ManifestPath  string
	StagedVersion string
	HeadVersion   string
	message       string
}

// Error renders the diagnostic naming both versions.
func (policyError PolicyViolationError) Error() string {
	return policyError.message
}

// ExitCode reports the conventional policy-violation exit status.
func (policyError PolicyViolationError) ExitCode() int {
	return policyViolationExitCodeConstant
}
