package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstMatch(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pattern string
		want    string
		wantOK  bool
	}{
		{
			name:    "capture group",
			text:    "Email: jane@example.com",
			pattern: `Email:\s*(\S+)`,
			want:    "jane@example.com",
			wantOK:  true,
		},
		{
			name:    "whole match without group",
			text:    "born 1970, measured 2024",
			pattern: `20\d{2}`,
			want:    "2024",
			wantOK:  true,
		},
		{
			name:    "first of several groups",
			text:    "Mean 120 80",
			pattern: `Mean (\d+) (\d+)`,
			want:    "120",
			wantOK:  true,
		},
		{
			name:    "no match",
			text:    "nothing here",
			pattern: `Weight:\s*(\d+)`,
			wantOK:  false,
		},
		{
			name:    "invalid pattern is no match",
			text:    "Weight: 80",
			pattern: `Weight:(\d+`,
			wantOK:  false,
		},
		{
			name:    "unsupported syntax is no match",
			text:    "aaa",
			pattern: `(?=a)a`,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstMatch(tt.text, tt.pattern)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubmatches_ReturnsAllGroups(t *testing.T) {
	m, ok := Submatches("Daytime Mean 131 84 70", `Mean (\d+) (\d+) (\d+)`)
	assert.True(t, ok)
	assert.Equal(t, []string{"Mean 131 84 70", "131", "84", "70"}, m)
}
