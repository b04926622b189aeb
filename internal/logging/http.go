package logging

import (
	"io"
	"regexp"
)

var secretPatterns = []struct {
	re   *regexp.Regexp
	repl []byte
}{
	{re: regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9\-._~+/]+=*`), repl: []byte("${1}{redacted}")},
	{re: regexp.MustCompile(`(assertion=)[^&\s"\\]+`), repl: []byte("${1}{redacted}")},
	{re: regexp.MustCompile(`(\\?"access_token\\?"\s*:\s*\\?")[^"\\]+`), repl: []byte("${1}{redacted}")},
}

// redactingWriter masks bearer tokens, signed assertions and access tokens
// before a log line reaches out. HTTP error bodies and request dumps end up in
// log messages, and credentials must not.
type redactingWriter struct {
	out io.Writer
}

func (w *redactingWriter) Write(b []byte) (int, error) {
	redacted := b
	for _, p := range secretPatterns {
		redacted = p.re.ReplaceAll(redacted, p.repl)
	}

	if _, err := w.out.Write(redacted); err != nil {
		return 0, err
	}

	return len(b), nil
}
