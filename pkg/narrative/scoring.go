package narrative

import "math"

// RoleProfiles are the ideal trait totals for each Aetherian role.
var RoleProfiles = map[Role]Traits{
	RoleWarrior: {Honor: 3, Pragmatism: 2, Curiosity: 1},
	RoleMage:    {Honor: 2, Pragmatism: 1, Curiosity: 3},
	RoleRogue:   {Honor: 1, Pragmatism: 3, Curiosity: 2},
}

// scenarioDeltas[n-1][option] is the trait change for answering Aetherian
// scenario n with option.
var scenarioDeltas = [AetherianScenarios]map[AetherianOption]Traits{
	{ // The Wounded Beast
		OptionA: {Honor: 2},
		OptionB: {Pragmatism: 2},
		OptionC: {Curiosity: 2},
	},
	{ // The Rival
		OptionA: {Honor: 2, Curiosity: 1},
		OptionB: {Pragmatism: 2},
		OptionC: {Honor: 1, Pragmatism: 1, Curiosity: 2},
	},
	{ // The Corrupt Guard
		OptionA: {Honor: 2, Pragmatism: 1},
		OptionB: {Pragmatism: 2, Curiosity: 1},
		OptionC: {Honor: 1, Curiosity: 2},
	},
	{ // The Dark Secret
		OptionA: {Honor: 3},
		OptionB: {Pragmatism: 3},
		OptionC: {Curiosity: 3},
	},
}

// ScenarioDelta returns the trait change for an Aetherian scenario (1-based)
// and option. ok is false for an out-of-range scenario or unknown option.
func ScenarioDelta(scenario int, option AetherianOption) (Traits, bool) {
	if scenario < 1 || scenario > AetherianScenarios {
		return Traits{}, false
	}
	d, ok := scenarioDeltas[scenario-1][option]
	return d, ok
}

const (
	// alignmentPerTrait is the best possible contribution of a single trait.
	alignmentPerTrait = 3
	// alignmentMax is the fixed divisor of the alignment score.
	alignmentMax = 12
	// FavorableAlignment is the percentage at or above which the Judge
	// rules in the player's favour.
	FavorableAlignment = 70.0
)

// Alignment scores how closely traits match role's profile, as a
// percentage. Each trait contributes 3 minus its distance from the profile;
// the sum is divided by 12. Lopsided runs push the raw sum below zero, so
// the result is clamped to [0, 100]. An unknown role scores 0.
func Alignment(role Role, traits Traits) float64 {
	profile, ok := RoleProfiles[role]
	if !ok {
		return 0
	}
	score := alignmentPerTrait - absInt(traits.Honor-profile.Honor)
	score += alignmentPerTrait - absInt(traits.Pragmatism-profile.Pragmatism)
	score += alignmentPerTrait - absInt(traits.Curiosity-profile.Curiosity)

	pct := float64(score) / alignmentMax * 100
	return math.Min(math.Max(pct, 0), 100)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Ending describes the terminal outcome of a story.
type Ending struct {
	Story Story  `json:"story"`
	Key   string `json:"key"`
	Title string `json:"title"`
}

const (
	EndingFavorable   = "favorable"
	EndingUnfavorable = "unfavorable"
	EndingPreserver   = "preserver"
	EndingBalanced    = "balanced"
	EndingBreaker     = "breaker"
	EndingMadness     = "madness"
	EndingSafe        = "safe"
	EndingMixed       = "mixed"
)

var (
	favorableTitles = map[Role]string{
		RoleWarrior: "The Honorable Blade",
		RoleMage:    "The Arcane Prodigy",
		RoleRogue:   "The Whispering Shadow",
	}
	unfavorableTitles = map[Role]string{
		RoleWarrior: "The Oathbreaker",
		RoleMage:    "The Mad Scholar",
		RoleRogue:   "The Unpredictable",
	}
)

// Verdict returns the Aetherian judgment for a role and trait totals.
func Verdict(role Role, traits Traits) Ending {
	if Alignment(role, traits) >= FavorableAlignment {
		return Ending{Story: StoryAetherian, Key: EndingFavorable, Title: favorableTitles[role]}
	}
	return Ending{Story: StoryAetherian, Key: EndingUnfavorable, Title: unfavorableTitles[role]}
}

// ChronosOutcome returns the Chronos ending for a final timeline integrity.
func ChronosOutcome(integrity int) Ending {
	switch {
	case integrity >= 80:
		return Ending{Story: StoryChronos, Key: EndingPreserver, Title: "The Preserver of Time"}
	case integrity >= 50:
		return Ending{Story: StoryChronos, Key: EndingBalanced, Title: "The Balanced Weaver"}
	default:
		return Ending{Story: StoryChronos, Key: EndingBreaker, Title: "The Timeline Breaker"}
	}
}

// voidEndingScreen picks the Void ending screen for a final sanity.
func voidEndingScreen(sanity int) Screen {
	switch {
	case sanity <= 30:
		return ScreenVoidEndingMadness
	case sanity >= 80:
		return ScreenVoidEndingSafe
	default:
		return ScreenVoidEndingMixed
	}
}

// Alignment is the session's Aetherian alignment percentage.
func (s Session) Alignment() float64 {
	return Alignment(s.Role, s.Traits)
}

// Ending returns the outcome shown on the current screen. ok is false
// unless the session is on a terminal screen.
func (s Session) Ending() (Ending, bool) {
	switch s.Screen {
	case ScreenAetherianJudgment:
		return Verdict(s.Role, s.Traits), true
	case ScreenChronosEnding:
		return ChronosOutcome(s.TimelineIntegrity), true
	case ScreenVoidEndingMadness:
		return Ending{Story: StoryVoid, Key: EndingMadness, Title: "Descended into Madness"}, true
	case ScreenVoidEndingSafe:
		return Ending{Story: StoryVoid, Key: EndingSafe, Title: "The Void Contained"}, true
	case ScreenVoidEndingMixed:
		return Ending{Story: StoryVoid, Key: EndingMixed, Title: "A Fragile Balance"}, true
	}
	return Ending{}, false
}
