package errors

import "github.com/cockroachdb/errors"

// Aliases to cockroachdb/errors so callers that need both the CLI error
// conventions and general error construction can import a single package.
var (
	New    = errors.New
	Newf   = errors.Newf
	Wrap   = errors.Wrap
	Wrapf  = errors.Wrapf
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)
