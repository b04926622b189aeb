package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gotest.tools/v3/assert"
)

func TestSetLevel(t *testing.T) {
	orig := level.Level()
	t.Cleanup(func() { level.SetLevel(orig) })

	origL, origS := L, S
	t.Cleanup(func() { L, S = origL, origS })

	var buf bytes.Buffer
	setLogger(newLogger(level, &buf, false))

	assert.NilError(t, SetLevel("error"))
	assert.Equal(t, Level(), "error")

	Warnf("hidden %d", 1)
	assert.Equal(t, buf.Len(), 0)

	Errorf("shown %d", 2)
	assert.Assert(t, strings.Contains(buf.String(), "shown 2"))

	err := SetLevel("loud")
	assert.ErrorContains(t, err, `invalid log level "loud"`)
	assert.Equal(t, Level(), "error")
}

func TestPatchLogger(t *testing.T) {
	var buf bytes.Buffer
	PatchLogger(t, &buf)

	Debugf("reading cache %s", "access_token.json")

	var entry map[string]interface{}
	assert.NilError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, entry["level"], "debug")
	assert.Equal(t, entry["msg"], "reading cache access_token.json")
	assert.Assert(t, strings.HasPrefix(entry["caller"].(string), "logging/logger_test.go"))
}

func TestRedactingWriter(t *testing.T) {
	type testCase struct {
		name     string
		input    string
		expected string
	}

	run := func(t *testing.T, tc testCase) {
		var buf bytes.Buffer
		w := &redactingWriter{out: &buf}

		n, err := w.Write([]byte(tc.input))
		assert.NilError(t, err)
		assert.Equal(t, n, len(tc.input))
		assert.Equal(t, buf.String(), tc.expected)
	}

	testCases := []testCase{
		{
			name:     "bearer header",
			input:    "Authorization: Bearer abc.def-ghi_jkl==",
			expected: "Authorization: Bearer {redacted}",
		},
		{
			name:     "lowercase bearer",
			input:    "authorization: bearer abc",
			expected: "authorization: bearer {redacted}",
		},
		{
			name:     "grant form body",
			input:    "grant_type=urn%3Aietf&assertion=eyJhbGciOi.eyJpc3Mi.c2ln&x=1",
			expected: "grant_type=urn%3Aietf&assertion={redacted}&x=1",
		},
		{
			name:     "token response",
			input:    `{"access_token": "secret", "token_type": "bearer"}`,
			expected: `{"access_token": "{redacted}", "token_type": "bearer"}`,
		},
		{
			name:     "escaped token response inside a json log line",
			input:    `{"msg":"200 - {\"access_token\":\"secret\"}"}`,
			expected: `{"msg":"200 - {\"access_token\":\"{redacted}\"}"}`,
		},
		{
			name:     "nothing to hide",
			input:    "403 - forbidden",
			expected: "403 - forbidden",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			run(t, tc)
		})
	}
}

func TestLoggerRedactsMessages(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(zap.NewAtomicLevelAt(zapcore.InfoLevel), &buf, false)

	logger.Info("GET /api/v1/courses with Bearer tok123")
	assert.Assert(t, !strings.Contains(buf.String(), "tok123"))
	assert.Assert(t, strings.Contains(buf.String(), "Bearer {redacted}"))
}

func TestConsoleEncoder(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(zap.NewAtomicLevelAt(zapcore.InfoLevel), &buf, true)

	logger.Warn("token cache not written")
	assert.Assert(t, strings.Contains(buf.String(), "token cache not written"))
	assert.Assert(t, strings.Contains(buf.String(), "WARN"))
}
