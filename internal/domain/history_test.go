package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryWindowReturnsSuffixCopy(t *testing.T) {
	t.Parallel()

	var h History
	for i := 0; i < 20; i++ {
		h.Append(Message{Role: RolePrompt, Content: string(rune('a' + i))})
	}

	window := h.Window(12)
	assert.Len(t, window, 12)
	assert.Equal(t, "i", window[0].Content)
	assert.Equal(t, "t", window[11].Content)

	window[0].Content = "changed"
	assert.Equal(t, "i", h.Messages()[8].Content)
}

func TestHistoryWindowShorterThanLimit(t *testing.T) {
	t.Parallel()

	var h History
	h.Append(
		Message{Role: RolePrompt, Content: "Course 1"},
		Message{Role: RoleAgent, Content: "T + basil"},
	)

	assert.Equal(t, []Message{
		{Role: RolePrompt, Content: "Course 1"},
		{Role: RoleAgent, Content: "T + basil"},
	}, h.Window(12))
	assert.Nil(t, h.Window(0))
}
