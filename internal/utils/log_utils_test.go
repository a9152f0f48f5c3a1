package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openedu/crooms/internal/utils"
)

func TestSanitizeLogString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"plain text untouched", "Group study session", "Group study session"},
		{"newline injection", "purpose\nfake log line", "purpose fake log line"},
		{"crlf collapses to one space", "a\r\nb", "a b"},
		{"tab replaced", "a\tb", "a b"},
		{"percent escaped", "50% off", "50%% off"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, utils.SanitizeLogString(tc.input))
		})
	}
}

func TestSanitizeLogStringTruncates(t *testing.T) {
	long := strings.Repeat("a", utils.MaxLogStringLength+50)
	got := utils.SanitizeLogString(long)

	assert.True(t, strings.HasSuffix(got, "... (truncated)"))
	assert.Len(t, got, utils.MaxLogStringLength+len("... (truncated)"))
}
