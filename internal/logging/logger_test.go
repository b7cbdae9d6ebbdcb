package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{input: "ERROR", want: LevelError},
		{input: "warn", want: LevelWarn},
		{input: " Info ", want: LevelInfo},
		{input: "debug", want: LevelDebug},
		{input: "TRACE", want: LevelTrace},
		{input: "verbose", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("TEST", &buf)
	l.SetLevel(LevelInfo)

	l.Debug("hidden %d", 1)
	l.Info("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] shown 2")
}

func TestWithPrefixSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("TEST", &buf)
	child := l.WithPrefix("tree").WithPrefix("rm")

	child.Debug("before")
	l.SetLevel(LevelDebug)
	child.Debug("after")

	out := buf.String()
	assert.NotContains(t, out, "before")
	assert.Contains(t, out, "[DEBUG] tree.rm: after")
	assert.Equal(t, LevelDebug, child.Level())
}

func TestSetOutput(t *testing.T) {
	var first, second bytes.Buffer
	l := NewLogger("TEST", &first)
	l.WithPrefix("x").SetOutput(&second)

	l.Error("boom")

	assert.Empty(t, first.String())
	assert.Contains(t, second.String(), "[ERROR] boom")
}
