package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid(t *testing.T) {
	rows := Grid([]string{"A", "B", "C"}, 2)

	require.Len(t, rows, 2)
	assert.Equal(t, []Button{{Text: "A", CallbackData: "A"}, {Text: "B", CallbackData: "B"}}, rows[0])
	assert.Equal(t, []Button{{Text: "C", CallbackData: "C"}}, rows[1])

	assert.Empty(t, Grid(nil, 2))
}

func TestInlineKeyboard(t *testing.T) {
	kb := InlineKeyboard(Grid([]string{"A", "B", "C"}, 2))

	require.Len(t, kb.InlineKeyboard, 2)
	require.NotNil(t, kb.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, "C", *kb.InlineKeyboard[1][0].CallbackData)
}

func TestContactKeyboard(t *testing.T) {
	kb := ContactKeyboard("share")

	assert.True(t, kb.OneTimeKeyboard)
	assert.True(t, kb.ResizeKeyboard)
	require.Len(t, kb.Keyboard, 1)
	assert.True(t, kb.Keyboard[0][0].RequestContact)
}
