// Package wm implements the tiling window-manager controller: workspace
// state, window rules and the full command surface, grounded on
// original_source/src/jigsawwm/wm/manager.py,
// wm/workspace_state.py, wm/monitor_state.py and wm/config.py.
package wm

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule decides whether a window should be managed (tiled) at all, and
// which workspace/monitor/slot it prefers, grounded on
// original_source/src/jigsawwm/wm/config.py's WmRule plus the
// exe-name/class exclusion style of
// lovlygod-Rewinder/internal/policy/config.go's Rules.Allow. A Rule with
// no regex set at all never matches (spec §3 WindowRule is a matcher,
// not a catch-all).
type Rule struct {
	ExeRegex   string // matched against the full process executable path
	TitleRegex string // matched against the window title
	ClassRegex string // matched against the window class name

	Ignore             bool // manageable=false: the window is never tracked at all
	Float              bool // true = the window floats at its own geometry once managed instead of being tiled (zero value: tilable, the common case)
	PreferredMonitor   int  // -1 = no preference
	PreferredWorkspace int  // -1 = no preference
	StaticIndex        int  // pins the window to a fixed workspace slot; -1 = unset
}

// Matches reports whether the rule applies to a window with the given
// process executable path, title and class name. An empty regex field is
// skipped (not a wildcard-false); a Rule with every field empty never
// matches.
func (r Rule) Matches(exeName, title, className string) bool {
	any := false
	if r.ExeRegex != "" {
		any = true
		if !regexp.MustCompile(r.ExeRegex).MatchString(exeName) {
			return false
		}
	}
	if r.TitleRegex != "" {
		any = true
		if !regexp.MustCompile(r.TitleRegex).MatchString(title) {
			return false
		}
	}
	if r.ClassRegex != "" {
		any = true
		if !regexp.MustCompile(r.ClassRegex).MatchString(className) {
			return false
		}
	}
	return any
}

// Config is the static tiling configuration: rules plus ignore lists,
// grounded on wm/config.py's WmConfig. There is no config FILE format
// (spec.md's "configuration is code" stance, SPEC_FULL.md §6) - callers
// build this struct directly in their own main package.
type Config struct {
	Rules             []Rule
	IgnoredExeNames   []string
	IgnoredClassNames []string
}

// Allow reports whether a window with the given process/class should be
// considered manageable at all, checked before Rules (spec §4.4 edge
// cases: tool windows, owned dialogs).
func (c Config) Allow(exeName, className string) bool {
	low := strings.ToLower(exeName)
	for _, ignored := range c.IgnoredExeNames {
		if strings.Contains(low, strings.ToLower(ignored)) {
			return false
		}
	}
	for _, ignored := range c.IgnoredClassNames {
		if strings.EqualFold(ignored, className) {
			return false
		}
	}
	return true
}

// Resolve finds the first matching rule for a window, or a default Rule
// (tilable, no monitor/workspace preference, no static index) if none
// match - declaration order is the tie-break, per DESIGN.md's resolution
// of the Open Question on rule ordering.
func (c Config) Resolve(exeName, title, className string) Rule {
	for _, r := range c.Rules {
		if r.Matches(exeName, title, className) {
			return r
		}
	}
	return Rule{PreferredMonitor: -1, PreferredWorkspace: -1, StaticIndex: -1}
}

// Validate fails fast on configuration that can't be resolved
// unambiguously at runtime: overlapping StaticIndex pins and regexes that
// don't compile, per spec §7's "invalid configuration" taxonomy (fail at
// daemon start with a diagnostic naming the offending entry).
func (c Config) Validate() error {
	seenStatic := map[int]int{}
	for i, r := range c.Rules {
		for _, pat := range []string{r.ExeRegex, r.TitleRegex, r.ClassRegex} {
			if pat == "" {
				continue
			}
			if _, err := regexp.Compile(pat); err != nil {
				return fmt.Errorf("wm: rule %d: invalid regex %q: %w", i, pat, err)
			}
		}
		if r.StaticIndex >= 0 {
			if prev, ok := seenStatic[r.StaticIndex]; ok {
				return fmt.Errorf("wm: rule %d and rule %d both claim static index %d", prev, i, r.StaticIndex)
			}
			seenStatic[r.StaticIndex] = i
		}
	}
	return nil
}
