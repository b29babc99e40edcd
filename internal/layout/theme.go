package layout

// Theme names a complete tiling behavior: which layout tiler to use, how
// many areas to tile before overflowing into a stack, spacing, and
// ordering policy, grounded on original_source/src/jigsawwm/wm/theme.py.
type Theme struct {
	Name              string
	LayoutTiler       func(work PhysicalRect, n int) []PhysicalRect
	Gap               int32
	MaxTilingAreas    int // 0 means unbounded
	NewWindowAsMaster bool
	StaticLayout      bool
	StrictRestrict    bool // re-assert window rects that drift (e.g. apps that resist resize)
	StackingWindowW   float64
	StackingWindowH   float64
	AffinityIndex     func(Affinity) int // higher wins when picking a per-monitor default theme
}

// Built-in themes mirroring the teacher's predefined theme table.
var (
	MonoTheme = Theme{
		Name:            "mono",
		LayoutTiler:     DirectTiler(Mono),
		MaxTilingAreas:  1,
		StackingWindowW: 1,
		StackingWindowH: 1,
		AffinityIndex: func(a Affinity) int {
			if a.Inches < 20 {
				return 10
			}
			return 0
		},
	}
	DwindleTheme = Theme{
		Name:              "dwindle",
		LayoutTiler:       DirectTiler(Dwindle),
		Gap:               4,
		NewWindowAsMaster: true,
		AffinityIndex: func(a Affinity) int {
			score := 0
			if a.Inches >= 20 {
				score += 4
			}
			if a.Ratio > 1 && a.Ratio < 2 {
				score += 5
			}
			return score
		},
	}
	WidescreenDwindleTheme = Theme{
		Name:              "widescreen-dwindle",
		LayoutTiler:       DirectTiler(WidescreenDwindle),
		Gap:               4,
		NewWindowAsMaster: true,
		AffinityIndex: func(a Affinity) int {
			score := 0
			if a.Inches >= 20 {
				score += 4
			}
			if a.Ratio < 1 || a.Ratio >= 2 {
				score += 5
			}
			return score
		},
	}
	OBSDwindleTheme = Theme{
		Name:              "obs-dwindle",
		LayoutTiler:       ObsTiler(Dwindle, 0.5),
		Gap:               4,
		NewWindowAsMaster: true,
		// no affinity: OBS scenes are opted into explicitly (next/prev-theme
		// or set_theme), never picked automatically for a monitor.
	}
	StaticBigscreen8Theme = Theme{
		Name:            "static-8",
		LayoutTiler:     DirectTiler(StaticBigscreen8),
		Gap:             4,
		MaxTilingAreas:  8,
		StaticLayout:    true,
		StackingWindowW: 0.7,
		StackingWindowH: 0.7,
		AffinityIndex: func(a Affinity) int {
			if a.Inches >= 40 {
				return 10
			}
			return 0
		},
	}
)

// DefaultThemes is the ordered list cycled by next/prev-theme commands,
// matching the teacher's theme rotation order.
var DefaultThemes = []Theme{DwindleTheme, WidescreenDwindleTheme, OBSDwindleTheme, StaticBigscreen8Theme, MonoTheme}
