package textgen

import "errors"

var (
	ErrAPIKeyRequired  = errors.New("completion API key is required")
	ErrEmptyPrompt     = errors.New("prompt is empty")
	ErrUpstreamFailure = errors.New("completion provider request failed")
	ErrEmptyCompletion = errors.New("completion provider returned no text")
)
