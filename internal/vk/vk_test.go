package vk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVkCanonicalAndAlias(t *testing.T) {
	v, err := ParseVk("lwin")
	require.NoError(t, err)
	assert.Equal(t, LWin, v)

	v, err = ParseVk("ctrl")
	require.NoError(t, err)
	assert.Equal(t, Control, v)
}

func TestParseVkUnknown(t *testing.T) {
	_, err := ParseVk("not-a-key")
	assert.Error(t, err)
}

func TestParseChordBuildsUnorderedSet(t *testing.T) {
	keys, err := ParseChord("LWin+Shift+J")
	require.NoError(t, err)
	assert.True(t, NewChord(keys...).Equal(NewChord(LWin, Shift, KeyJ)))
}

func TestParseChordRejectsRepeatedKey(t *testing.T) {
	_, err := ParseChord("LWin+LWin")
	assert.Error(t, err)
}

func TestChordEqualIgnoresOrder(t *testing.T) {
	a := NewChord(LWin, KeyJ)
	b := NewChord(KeyJ, LWin)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewChord(LWin, KeyK)))
}

func TestVkStringFallsBackToHex(t *testing.T) {
	assert.Equal(t, "LWIN", LWin.String())
	assert.Contains(t, Vk(0x9999).String(), "VK_0x")
}
