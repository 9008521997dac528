package roster

import (
	"reflect"
	"testing"
)

func TestEnsureConfigSynthesizesDefaults(t *testing.T) {
	data := AppData{}
	EnsureConfig(&data)
	if data.GameConfig == nil {
		t.Fatalf("missing gameConfig must be synthesized")
	}
	if !reflect.DeepEqual(data.GameConfig, DefaultGameConfig()) {
		t.Fatalf("synthesized config must equal the defaults")
	}
}

func TestEnsureConfigRestoresSentinel(t *testing.T) {
	data := AppData{GameConfig: &GameConfig{
		UltSkills:  []string{"红莲", "寒江"},
		ClanSkills: []string{"破阵"},
	}}
	EnsureConfig(&data)
	if data.GameConfig.UltSkills[0] != SkillNone {
		t.Fatalf("sentinel must lead the ult catalog, got %v", data.GameConfig.UltSkills)
	}
	if data.GameConfig.ClanSkills[0] != SkillNone {
		t.Fatalf("sentinel must lead the clan catalog, got %v", data.GameConfig.ClanSkills)
	}
}

func TestEnsureSentinelNormalizes(t *testing.T) {
	got := ensureSentinel([]string{" 红莲 ", "", "红莲", SkillNone, "寒江"})
	want := []string{SkillNone, "红莲", "寒江"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestUpdateConfigKeepsSentinelAndToleratesInUseValues(t *testing.T) {
	engine, _ := newTestEngine(t, true)
	member, err := engine.UpsertMember(Member{Name: "Alice", Profession: "碎梦", Ult: "红莲"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// The new ult catalog no longer offers 红莲.
	if err := engine.UpdateConfig([]string{"寒江"}, []string{"破阵"}, map[string]string{"碎梦": "#111111"}); err != nil {
		t.Fatalf("update config: %v", err)
	}
	cfg := engine.Config()
	if cfg.UltSkills[0] != SkillNone || cfg.ClanSkills[0] != SkillNone {
		t.Fatalf("sentinel must survive a catalog edit")
	}
	if catalogContains(cfg.UltSkills, "红莲") {
		t.Fatalf("removed value must not linger in the catalog")
	}
	got, _ := engine.Document().FindMember(member.ID)
	if got.Ult != "红莲" {
		t.Fatalf("member data must be untouched by catalog edits, got %q", got.Ult)
	}
}

func TestResetConfigRestoresDefaults(t *testing.T) {
	engine, _ := newTestEngine(t, true)
	if err := engine.UpdateConfig([]string{"x"}, []string{"y"}, nil); err != nil {
		t.Fatalf("update config: %v", err)
	}
	if err := engine.ResetConfig(); err != nil {
		t.Fatalf("reset config: %v", err)
	}
	if !reflect.DeepEqual(engine.Config(), DefaultGameConfig()) {
		t.Fatalf("reset must restore the built-in catalogs")
	}
}

func TestProfessionColorResolution(t *testing.T) {
	cfg := &GameConfig{ProfessionColors: map[string]string{"碎梦": "#123456"}}
	if got := cfg.ProfessionColor("碎梦"); got != "#123456" {
		t.Fatalf("document catalog must win, got %q", got)
	}
	if got := cfg.ProfessionColor("素问"); got != defaultProfessionColors["素问"] {
		t.Fatalf("built-in map must back a missing entry, got %q", got)
	}
	if got := cfg.ProfessionColor("无名"); got != fallbackMemberColor {
		t.Fatalf("unknown profession must use the neutral fallback, got %q", got)
	}
	var nilCfg *GameConfig
	if got := nilCfg.ProfessionColor("碎梦"); got != defaultProfessionColors["碎梦"] {
		t.Fatalf("nil config must still resolve, got %q", got)
	}
}

func TestEffectiveColorPrefersExplicit(t *testing.T) {
	group := Group{Color: "#abcdef", Theme: "输出(红)"}
	if got := group.EffectiveColor(); got != "#abcdef" {
		t.Fatalf("explicit color must win over the legacy theme, got %q", got)
	}
}

func TestEffectiveColorFromLegacyTheme(t *testing.T) {
	cases := []struct {
		theme string
		want  string
	}{
		{"输出(红)", legacyThemeColors["红"]},
		{"治疗（绿）", legacyThemeColors["绿"]},
		{"自定义(#0f0f0f)", "#0f0f0f"},
		{"只有打法", defaultGroupColor},
		{"", defaultGroupColor},
	}
	for _, tc := range cases {
		group := Group{Theme: tc.theme}
		if got := group.EffectiveColor(); got != tc.want {
			t.Fatalf("theme %q: color = %q, want %q", tc.theme, got, tc.want)
		}
	}
}

func TestEffectiveStrategyFromLegacyTheme(t *testing.T) {
	group := Group{Theme: "速攻(紫)"}
	if got := group.EffectiveStrategy(); got != "速攻" {
		t.Fatalf("strategy = %q, want 速攻", got)
	}
	group.Strategy = "稳扎"
	if got := group.EffectiveStrategy(); got != "稳扎" {
		t.Fatalf("explicit strategy must win, got %q", got)
	}
	if group.Theme != "速攻(紫)" {
		t.Fatalf("the stored theme must never be rewritten")
	}
}
