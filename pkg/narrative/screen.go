package narrative

// Screen is a named state of the narrative state machine.
type Screen int

const (
	ScreenMainMenu Screen = iota

	ScreenAetherianIntro
	ScreenAetherianScenario1
	ScreenAetherianScenario2
	ScreenAetherianScenario3
	ScreenAetherianScenario4
	ScreenAetherianJudgment

	ScreenChronosIntro
	// ScreenChronosScenario is a single screen whose content depends on the session's Era.
	ScreenChronosScenario
	ScreenChronosEnding

	ScreenVoidIntro
	ScreenVoidScenario1
	ScreenVoidScenario2
	ScreenVoidScenario3
	ScreenVoidScenario4
	ScreenVoidEndingMadness
	ScreenVoidEndingSafe
	ScreenVoidEndingMixed
)

const (
	// AetherianScenarios is the number of Aetherian choice screens.
	AetherianScenarios = 4
	// ChronosScenarios is the number of Chronos choices before the ending.
	ChronosScenarios = 3
	// VoidScenarios is the number of Void choice screens.
	VoidScenarios = 4
)

var screenNames = map[Screen]string{
	ScreenMainMenu:           "main_menu",
	ScreenAetherianIntro:     "aetherian_intro",
	ScreenAetherianScenario1: "aetherian_scenario_1",
	ScreenAetherianScenario2: "aetherian_scenario_2",
	ScreenAetherianScenario3: "aetherian_scenario_3",
	ScreenAetherianScenario4: "aetherian_scenario_4",
	ScreenAetherianJudgment:  "aetherian_judgment",
	ScreenChronosIntro:       "chronos_intro",
	ScreenChronosScenario:    "chronos_scenario",
	ScreenChronosEnding:      "chronos_ending",
	ScreenVoidIntro:          "void_intro",
	ScreenVoidScenario1:      "void_scenario_1",
	ScreenVoidScenario2:      "void_scenario_2",
	ScreenVoidScenario3:      "void_scenario_3",
	ScreenVoidScenario4:      "void_scenario_4",
	ScreenVoidEndingMadness:  "void_ending_madness",
	ScreenVoidEndingSafe:     "void_ending_safe",
	ScreenVoidEndingMixed:    "void_ending_mixed",
}

func (s Screen) String() string { return enumName(screenNames, s) }

// ParseScreen converts a wire name into a Screen.
func ParseScreen(name string) (Screen, error) { return parseEnum("screen", screenNames, name) }

// MarshalText encodes the screen by its wire name.
func (s Screen) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText accepts only known screen names.
func (s *Screen) UnmarshalText(text []byte) error {
	v, err := ParseScreen(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// AetherianScenarioScreen returns the screen for Aetherian scenario n (1-based).
func AetherianScenarioScreen(n int) (Screen, bool) {
	if n < 1 || n > AetherianScenarios {
		return ScreenMainMenu, false
	}
	return ScreenAetherianScenario1 + Screen(n-1), true
}

// VoidScenarioScreen returns the screen for Void scenario n (1-based).
func VoidScenarioScreen(n int) (Screen, bool) {
	if n < 1 || n > VoidScenarios {
		return ScreenMainMenu, false
	}
	return ScreenVoidScenario1 + Screen(n-1), true
}

// AetherianScenario reports which Aetherian scenario s shows, if any.
func (s Screen) AetherianScenario() (int, bool) {
	if s >= ScreenAetherianScenario1 && s <= ScreenAetherianScenario4 {
		return int(s-ScreenAetherianScenario1) + 1, true
	}
	return 0, false
}

// VoidScenario reports which Void scenario s shows, if any.
func (s Screen) VoidScenario() (int, bool) {
	if s >= ScreenVoidScenario1 && s <= ScreenVoidScenario4 {
		return int(s-ScreenVoidScenario1) + 1, true
	}
	return 0, false
}

// Story returns the story a screen belongs to.
func (s Screen) Story() Story {
	switch {
	case s >= ScreenAetherianIntro && s <= ScreenAetherianJudgment:
		return StoryAetherian
	case s >= ScreenChronosIntro && s <= ScreenChronosEnding:
		return StoryChronos
	case s >= ScreenVoidIntro && s <= ScreenVoidEndingMixed:
		return StoryVoid
	default:
		return StoryNone
	}
}

// IsTerminal reports whether s is an ending screen. Terminal screens only
// accept ReturnToMenu.
func (s Screen) IsTerminal() bool {
	switch s {
	case ScreenAetherianJudgment, ScreenChronosEnding,
		ScreenVoidEndingMadness, ScreenVoidEndingSafe, ScreenVoidEndingMixed:
		return true
	}
	return false
}

// IntroScreen returns the intro screen of a story.
func IntroScreen(story Story) (Screen, bool) {
	switch story {
	case StoryAetherian:
		return ScreenAetherianIntro, true
	case StoryChronos:
		return ScreenChronosIntro, true
	case StoryVoid:
		return ScreenVoidIntro, true
	}
	return ScreenMainMenu, false
}
