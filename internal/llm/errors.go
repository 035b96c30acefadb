package llm

import "errors"

// ErrGenerationFailed is the coarse failure signal for the generation
// pipeline. Every gateway error matches it via errors.Is; the specific
// sentinels below exist for logging and tests, not for control flow.
var ErrGenerationFailed = errors.New("AI generation failed")

var (
	// ErrUpstream indicates the completion endpoint returned an error
	// status or was unreachable.
	ErrUpstream = wrap("upstream call failed")

	// ErrContentBlocked indicates the provider refused the request on
	// safety grounds. The block reason is carried in the error message.
	ErrContentBlocked = wrap("content blocked")

	// ErrEmptyResponse indicates a successful call whose envelope held
	// no usable candidate text.
	ErrEmptyResponse = wrap("empty or invalid response")
)

type sentinel struct {
	msg string
}

func (s *sentinel) Error() string { return s.msg }

func (s *sentinel) Unwrap() error { return ErrGenerationFailed }

func wrap(msg string) error {
	return &sentinel{msg: msg}
}
