package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/story-collection/pkg/content"
	"github.com/jwebster45206/story-collection/pkg/narrative"
)

func play(t *testing.T, actions ...narrative.Action) narrative.Session {
	t.Helper()
	s := narrative.NewSession()
	for _, a := range actions {
		var err error
		s, err = narrative.Apply(s, a)
		require.NoError(t, err, "action %s", a)
	}
	return s
}

func TestRender_MainMenu(t *testing.T) {
	v := Render(narrative.NewSession(), nil)

	assert.Equal(t, ThemeMenu, v.Theme)
	assert.Equal(t, "RPG GAME COLLECTION", v.Title)
	assert.Equal(t, "Choose Your Adventure", v.Subtitle)
	assert.Equal(t, "Select a game to begin your adventure...", v.Footer)
	require.Len(t, v.Options, 3)
	assert.Equal(t, "1", v.Options[0].Key)
	assert.Equal(t, narrative.SelectStory(narrative.StoryAetherian), v.Options[0].Action)
	assert.Equal(t, "Echoes of the Void: Cosmic Horror Mystery", v.Options[2].Label)

	_, ok := v.Option(BackKey)
	assert.False(t, ok, "the menu has nothing to go back to")
}

func TestRender_AetherianScenarioAndJudgment(t *testing.T) {
	s := play(t, narrative.SelectStory(narrative.StoryAetherian), narrative.SelectRole(narrative.RoleWarrior))

	v := Render(s, nil)
	assert.Equal(t, "Scenario 1: The Wounded Beast", v.Title)
	require.Len(t, v.Options, 4)
	assert.Equal(t, "A. Finish it quickly and mercifully", v.Options[0].Label)
	assert.Equal(t, narrative.ChooseAetherian(narrative.OptionC), v.Options[2].Action)
	assert.Nil(t, v.Meter)

	s = play(t,
		narrative.SelectStory(narrative.StoryAetherian),
		narrative.SelectRole(narrative.RoleWarrior),
		narrative.ChooseAetherian(narrative.OptionA),
		narrative.ChooseAetherian(narrative.OptionA),
		narrative.ChooseAetherian(narrative.OptionA),
		narrative.ChooseAetherian(narrative.OptionA),
	)

	v = Render(s, nil)
	assert.Equal(t, "Final Judgment", v.Title)
	require.NotNil(t, v.Meter)
	assert.Equal(t, "Alignment with Warrior path: 16.7%", v.Meter.String())
	assert.Equal(t, []string{
		"You are granted freedom, but you are shunned.",
		"You are a cautionary tale. You are now known as The Oathbreaker!",
	}, v.Result)
	require.True(t, v.IsTerminal())
	assert.Equal(t, narrative.EndingUnfavorable, v.Ending.Key)
	require.Len(t, v.Options, 1)
	assert.Equal(t, "Play Again", v.Options[0].Label)
	assert.Equal(t, narrative.ReturnToMenu(), v.Options[0].Action)
}

func TestRender_FavorableJudgment(t *testing.T) {
	s := narrative.NewSession()
	s.Story = narrative.StoryAetherian
	s.Screen = narrative.ScreenAetherianJudgment
	s.Role = narrative.RoleMage
	s.ScenariosCompleted = narrative.AetherianScenarios
	s.Traits = narrative.RoleProfiles[narrative.RoleMage]

	v := Render(s, nil)
	assert.Equal(t, "Alignment with Mage path: 75.0%", v.Meter.String())
	assert.Equal(t, []string{
		"You are hailed as the ideal Mage.",
		"Your story becomes legend. You are now known as The Arcane Prodigy!",
	}, v.Result)
	assert.Equal(t, "'You have walked your chosen path without deviation.", v.Body[2])
}

func TestRender_Chronos(t *testing.T) {
	s := play(t, narrative.SelectStory(narrative.StoryChronos))
	v := Render(s, nil)
	assert.Equal(t, "CHRONOS LEGACY", v.Title)
	assert.Equal(t, "Begin Journey", v.Options[0].Label)
	assert.Equal(t, narrative.Begin(), v.Options[0].Action)

	s = play(t, narrative.SelectStory(narrative.StoryChronos), narrative.Begin(), narrative.ChooseChronos(narrative.ChoiceIntervene))
	v = Render(s, nil)
	assert.Equal(t, "Current Era: Past", v.Title)
	assert.Equal(t, "Timeline Integrity: 90%", v.Meter.String())
	assert.InDelta(t, 0.9, v.Meter.Fraction(), 0.0001)
	assert.Equal(t, "C. Study the mathematical texts first", v.Options[2].Label)

	s = play(t, narrative.SelectStory(narrative.StoryChronos), narrative.Begin(),
		narrative.ChooseChronos(narrative.ChoiceIntervene),
		narrative.ChooseChronos(narrative.ChoiceIntervene),
		narrative.ChooseChronos(narrative.ChoiceIntervene))
	v = Render(s, nil)
	assert.Equal(t, "The Balanced Weaver", v.Title)
	assert.Equal(t, "Final Timeline Integrity: 70%", v.Meter.String())
	assert.Equal(t, "as you continue your training.", v.Body[len(v.Body)-1])
	assert.Equal(t, "Return to Menu", v.Options[0].Label)
}

func TestRender_Void(t *testing.T) {
	s := play(t, narrative.SelectStory(narrative.StoryVoid), narrative.Begin())
	v := Render(s, nil)
	assert.Equal(t, ThemeVoid, v.Theme)
	assert.Equal(t, "Scenario 1: The Artifact", v.Title)
	assert.Equal(t, "Sanity: 100%", v.Meter.String())

	s = play(t, narrative.SelectStory(narrative.StoryVoid), narrative.Begin(),
		narrative.ChooseVoid(narrative.ChoiceUse),
		narrative.ChooseVoid(narrative.ChoiceUse),
		narrative.ChooseVoid(narrative.ChoiceUse),
		narrative.ChooseVoid(narrative.ChoiceUse))
	v = Render(s, nil)
	assert.Equal(t, "Descended into Madness", v.Title)
	assert.Equal(t, "Final Sanity: 20%", v.Meter.String())
	assert.True(t, v.IsTerminal())
}

func TestRender_IsDeterministic(t *testing.T) {
	s := play(t, narrative.SelectStory(narrative.StoryVoid), narrative.Begin(), narrative.ChooseVoid(narrative.ChoiceStudy))
	lib := content.Default()
	assert.Equal(t, Render(s, lib), Render(s, lib))
}

// Every option on every reachable screen must be accepted by the engine, and
// every non-menu screen must offer a way back.
func TestRender_OptionsAreAlwaysLegal(t *testing.T) {
	lib := content.Default()
	seen := map[narrative.Session]bool{}
	queue := []narrative.Session{narrative.NewSession()}
	screens := map[narrative.Screen]bool{}

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if seen[s] {
			continue
		}
		seen[s] = true
		screens[s.Screen] = true

		v := Render(s, lib)
		require.NotEmpty(t, v.Options, "screen %s", s.Screen)
		assert.NotEmpty(t, v.Title, "screen %s", s.Screen)

		if s.Screen != narrative.ScreenMainMenu {
			back, ok := v.Option(BackKey)
			assert.True(t, ok, "screen %s has no back option", s.Screen)
			assert.Equal(t, narrative.ReturnToMenu(), back.Action)
		}

		for _, o := range v.Options {
			next, err := narrative.Apply(s, o.Action)
			require.NoError(t, err, "option %q on %s", o.Label, s.Screen)
			if !seen[next] {
				queue = append(queue, next)
			}
		}
	}

	// The walk reaches every screen.
	for screen := narrative.ScreenMainMenu; screen <= narrative.ScreenVoidEndingMixed; screen++ {
		assert.True(t, screens[screen], "screen %s never reached", screen)
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "Warrior", Display("warrior"))
	assert.Equal(t, "Future", Display(narrative.EraFuture.String()))
}
