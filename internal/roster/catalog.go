// internal/roster/catalog.go
//
// Skill catalogs and profession colors. The catalogs are operator-editable;
// the only hard rule is that the "无" sentinel stays present. Members may
// reference values that were later removed from a catalog — display keeps
// working, the value just stops being offered as a selectable default.

package roster

import "strings"

const (
	defaultGroupColor   = "#3d5a80"
	fallbackMemberColor = "#8d99ae"
)

var defaultUltSkills = []string{
	SkillNone, "风袖低昂", "红莲", "寒江", "玉石俱焚", "惊鸿照影", "万象更新",
}

var defaultClanSkills = []string{
	SkillNone, "金戈铁马", "青竹如歌", "岐黄之术", "破阵", "同舟共济",
}

var defaultProfessionColors = map[string]string{
	"碎梦": "#9d4edd",
	"素问": "#52b788",
	"神相": "#4ea8de",
	"铁衣": "#c9a227",
	"血河": "#e5383b",
	"九灵": "#f4845f",
	"龙吟": "#5390d9",
	"潜渊": "#2a9d8f",
	"鸿音": "#ff8fa3",
}

// DefaultGameConfig returns a fresh copy of the built-in catalogs.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		UltSkills:        cloneStrings(defaultUltSkills),
		ClanSkills:       cloneStrings(defaultClanSkills),
		ProfessionColors: cloneColorMap(defaultProfessionColors),
	}
}

// EnsureConfig completes a loaded document: a missing gameConfig is
// synthesized from the defaults, and the sentinel is restored to both
// catalogs if an external edit dropped it. Called once at load time, before
// any other operation runs.
func EnsureConfig(data *AppData) {
	if data.GameConfig == nil {
		data.GameConfig = DefaultGameConfig()
		return
	}
	data.GameConfig.UltSkills = ensureSentinel(data.GameConfig.UltSkills)
	data.GameConfig.ClanSkills = ensureSentinel(data.GameConfig.ClanSkills)
}

// ensureSentinel normalizes a catalog: entries are trimmed, duplicates and
// blanks dropped, and the sentinel guaranteed to lead the list.
func ensureSentinel(values []string) []string {
	out := []string{SkillNone}
	seen := map[string]struct{}{SkillNone: {}}
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func catalogContains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// ProfessionColor resolves the display color for a profession: the document
// catalog first, the built-in map second, a neutral fallback last.
func (c *GameConfig) ProfessionColor(profession string) string {
	if c != nil {
		if color, ok := c.ProfessionColors[profession]; ok && color != "" {
			return color
		}
	}
	if color, ok := defaultProfessionColors[profession]; ok {
		return color
	}
	return fallbackMemberColor
}

// EffectiveColor returns the group's display color, deriving it from the
// legacy theme descriptor when no explicit color was ever written.
func (g Group) EffectiveColor() string {
	if g.Color != "" {
		return g.Color
	}
	if _, label := parseTheme(g.Theme); label != "" {
		if hex, ok := legacyThemeColors[label]; ok {
			return hex
		}
		if strings.HasPrefix(label, "#") {
			return label
		}
	}
	return defaultGroupColor
}

// EffectiveStrategy returns the group's strategy tag, falling back to the
// legacy theme descriptor. The stored theme is never mutated.
func (g Group) EffectiveStrategy() string {
	if g.Strategy != "" {
		return g.Strategy
	}
	strategy, _ := parseTheme(g.Theme)
	return strategy
}

// legacyThemeColors maps the color labels the old combined theme field used
// to concrete hex values.
var legacyThemeColors = map[string]string{
	"红": "#e5383b",
	"蓝": "#4ea8de",
	"绿": "#52b788",
	"紫": "#9d4edd",
	"金": "#c9a227",
	"青": "#2a9d8f",
}

// parseTheme splits the legacy "<strategy>(<colorLabel>)" descriptor. Both
// halves are optional; a theme without parentheses is all strategy.
func parseTheme(theme string) (strategy, colorLabel string) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return "", ""
	}
	open := strings.IndexAny(theme, "(（")
	if open < 0 {
		return theme, ""
	}
	strategy = strings.TrimSpace(theme[:open])
	rest := theme[open:]
	rest = strings.TrimLeft(rest, "(（")
	rest = strings.TrimRight(strings.TrimSpace(rest), ")）")
	return strategy, strings.TrimSpace(rest)
}
