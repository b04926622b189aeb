package cmd

import "errors"

// ErrConfiguration is wrapped by errors about missing or invalid settings.
var ErrConfiguration = errors.New("invalid configuration")

// Error is printed to the user as is by main. It wraps OriginalError so
// callers can still match ErrConfiguration, token.ErrKeyRead and the like.
type Error struct {
	// Cause is a short summary, shown after "Error: ".
	Cause string

	// OriginalError is shown on the line after Cause.
	OriginalError error

	// Suggestion tells the user how to fix the problem, in full sentences.
	Suggestion string
}

// Error renders as
//
//	Error: <Cause>
//	<OriginalError>
//
//	<Suggestion>
//
// leaving out the parts that are empty. With no Cause and no OriginalError
// only the Suggestion is printed.
func (e Error) Error() string {
	if e.OriginalError == nil && e.Cause == "" {
		return e.Suggestion
	}

	msg := "Error: " + e.Cause
	if e.OriginalError != nil {
		msg += "\n" + e.OriginalError.Error()
	}

	if e.Suggestion != "" {
		msg += "\n\n" + e.Suggestion
	}

	return msg
}

func (e Error) Unwrap() error {
	return e.OriginalError
}
