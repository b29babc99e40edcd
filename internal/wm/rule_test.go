package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleMatchesExeRegex(t *testing.T) {
	r := Rule{ExeRegex: `(?i)chrome\.exe$`, Float: true}
	assert.True(t, r.Matches(`C:\Program Files\Google\Chrome\chrome.exe`, "", "Chrome_WidgetWin_1"))
	assert.False(t, r.Matches(`C:\Windows\explorer.exe`, "", "Progman"))
}

func TestRuleWithNoPatternsNeverMatches(t *testing.T) {
	var r Rule
	assert.False(t, r.Matches("anything.exe", "anything", "anything"))
}

func TestConfigResolveFallsBackToTilable(t *testing.T) {
	c := Config{Rules: []Rule{{ExeRegex: `(?i)chrome`, Float: true, PreferredMonitor: -1, PreferredWorkspace: -1}}}
	r := c.Resolve(`notepad.exe`, "Untitled - Notepad", "Notepad")
	assert.False(t, r.Float)
	assert.Equal(t, -1, r.PreferredMonitor)
}

func TestConfigResolveUsesFirstMatchInDeclarationOrder(t *testing.T) {
	c := Config{Rules: []Rule{
		{ExeRegex: `(?i)code`, PreferredWorkspace: 1, PreferredMonitor: -1},
		{ExeRegex: `(?i)code`, PreferredWorkspace: 2, PreferredMonitor: -1},
	}}
	r := c.Resolve("Code.exe", "main.go - repo", "Chrome_WidgetWin_1")
	assert.Equal(t, 1, r.PreferredWorkspace)
}

// TestConfigResolveStaticIndex covers spec §8 scenario S4: a title-regex
// rule pins a window to a fixed workspace slot.
func TestConfigResolveStaticIndex(t *testing.T) {
	c := Config{Rules: []Rule{
		{ExeRegex: `(?i)^cmd\.exe$`, TitleRegex: `(?i)nvim`, StaticIndex: 0},
	}}
	r := c.Resolve("cmd.exe", "nvim ~/repo/README.md", "ConsoleWindowClass")
	assert.Equal(t, 0, r.StaticIndex)
}

func TestConfigAllowRejectsIgnoredExe(t *testing.T) {
	c := Config{IgnoredExeNames: []string{"searchui"}}
	assert.False(t, c.Allow(`C:\Windows\SystemApps\SearchUI.exe`, ""))
	assert.True(t, c.Allow(`C:\Windows\explorer.exe`, ""))
}

func TestValidateRejectsDuplicateStaticIndex(t *testing.T) {
	c := Config{Rules: []Rule{
		{ExeRegex: "a", StaticIndex: 0},
		{ExeRegex: "b", StaticIndex: 0},
	}}
	err := c.Validate()
	require.Error(t, err)
}

func TestValidateRejectsBadRegex(t *testing.T) {
	c := Config{Rules: []Rule{{ExeRegex: "("}}}
	require.Error(t, c.Validate())
}
