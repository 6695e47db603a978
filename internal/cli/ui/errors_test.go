package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageFormat(t *testing.T) {
	tests := []struct {
		name     string
		msg      Message
		contains []string
		absent   []string
	}{
		{
			name: "error with context",
			msg: Message{
				Context:     "meter not found",
				Problem:     "Cannot find meter 'x'.",
				Suggestions: []string{"الطويل", "المديد"},
				Help:        []string{"List meters: arud meters"},
				NoColor:     true,
			},
			contains: []string{
				"✗ METER NOT FOUND: Cannot find meter 'x'.",
				"   Cannot find meter 'x'.",
				"Did you mean: الطويل, المديد?",
				"→ List meters: arud meters",
			},
		},
		{
			name:     "warning without context",
			msg:      Message{Level: LevelWarning, Problem: "low confidence", NoColor: true},
			contains: []string{"! low confidence"},
			absent:   []string{"Did you mean", "→"},
		},
		{
			name:     "info with detail",
			msg:      Message{Level: LevelInfo, Problem: "cached", Detail: "served from redis", NoColor: true},
			contains: []string{"i cached", "   served from redis"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.msg.Format()
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
			assert.NotContains(t, out, "\x1b[", "no ANSI codes with NoColor")
		})
	}
}

func TestMessageWrite(t *testing.T) {
	var buf bytes.Buffer
	Warning("careful", true).Write(&buf)
	assert.Equal(t, "! careful\n", buf.String())
}

func TestPresetMessages(t *testing.T) {
	out := MeterNotFound("الطويلل", []string{"الطويل"}, true).Format()
	assert.Contains(t, out, "METER NOT FOUND")
	assert.Contains(t, out, "Did you mean: الطويل?")

	out = TafilaNotFound("فعولم", nil, true).Format()
	assert.Contains(t, out, "TAFILA NOT FOUND")
	assert.NotContains(t, out, "Did you mean")

	out = InvalidPattern("abc", true).Format()
	assert.Contains(t, out, "'abc' is not a prosodic pattern.")
	assert.Contains(t, out, "'/' for a moving letter")

	out = ConfigError("bad ttl", true).Format()
	assert.Contains(t, out, "CONFIGURATION ERROR: bad ttl")

	assert.Equal(t, "i hello\n", Info("hello", true).Format())
}

func TestWriteSuccess(t *testing.T) {
	var buf bytes.Buffer
	WriteSuccess(&buf, "pattern is licensed", true)
	assert.Equal(t, "✓ pattern is licensed\n", buf.String())
	assert.True(t, strings.HasPrefix(FormatSuccess("ok", true), "✓"))
}
