package quiz

import "errors"

// ErrInvalidRequest is the only generation error surfaced to the end
// user: the request carried neither a topic nor a file. Everything else
// is absorbed by the fallback path.
var ErrInvalidRequest = errors.New("a topic or a file must be provided")

// Validation stage failures. All of them cause a fallback quiz; they
// are distinct for logging only.
var (
	// ErrMalformedJSON indicates the candidate text was not a JSON object.
	ErrMalformedJSON = errors.New("response is not a JSON object")

	// ErrMissingQuestions indicates the JSON lacked a questions array.
	ErrMissingQuestions = errors.New("response has no questions array")

	// ErrNoValidQuestions indicates every item in the batch failed its
	// type contract.
	ErrNoValidQuestions = errors.New("no valid questions in response")
)
