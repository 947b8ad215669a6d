package narrative

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition means the action is not accepted on the current screen.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrInvalidOption means the action carries an unknown story, role or option.
	ErrInvalidOption = errors.New("invalid option")
)

// Apply runs one action against s and returns the resulting session. If
// the action is not legal on s.Screen, or its payload is out of range, Apply
// returns s unchanged along with an error wrapping ErrInvalidTransition or
// ErrInvalidOption.
func Apply(s Session, a Action) (Session, error) {
	switch a.Type {
	case ActionSelectStory:
		return selectStory(s, a.Story)
	case ActionSelectRole:
		return selectRole(s, a.Role)
	case ActionBegin:
		return begin(s)
	case ActionChooseAetherian:
		return chooseAetherian(s, AetherianOption(a.Option))
	case ActionChooseChronos:
		return chooseChronos(s, ChronosChoice(a.Option))
	case ActionChooseVoid:
		return chooseVoid(s, VoidChoice(a.Option))
	case ActionReturnToMenu:
		return NewSession(), nil
	default:
		return s, fmt.Errorf("%w: unknown action type %q", ErrInvalidOption, a.Type)
	}
}

func rejectScreen(s Session, a ActionType) (Session, error) {
	return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, a, s.Screen)
}

func selectStory(s Session, story Story) (Session, error) {
	if s.Screen != ScreenMainMenu {
		return rejectScreen(s, ActionSelectStory)
	}
	intro, ok := IntroScreen(story)
	if !ok {
		return s, fmt.Errorf("%w: story %s", ErrInvalidOption, story)
	}
	s.Story = story
	s.Screen = intro
	return s, nil
}

func selectRole(s Session, role Role) (Session, error) {
	if s.Screen != ScreenAetherianIntro {
		return rejectScreen(s, ActionSelectRole)
	}
	if _, ok := RoleProfiles[role]; !ok {
		return s, fmt.Errorf("%w: role %s", ErrInvalidOption, role)
	}
	s.Role = role
	s.Screen = ScreenAetherianScenario1
	return s, nil
}

func begin(s Session) (Session, error) {
	switch s.Screen {
	case ScreenChronosIntro:
		s.Screen = ScreenChronosScenario
	case ScreenVoidIntro:
		s.Screen, _ = VoidScenarioScreen(s.VoidScenario)
	default:
		return rejectScreen(s, ActionBegin)
	}
	return s, nil
}

func chooseAetherian(s Session, option AetherianOption) (Session, error) {
	n, ok := s.Screen.AetherianScenario()
	if !ok || n != s.ScenariosCompleted+1 {
		return rejectScreen(s, ActionChooseAetherian)
	}
	delta, ok := ScenarioDelta(n, option)
	if !ok {
		return s, fmt.Errorf("%w: aetherian option %q", ErrInvalidOption, option)
	}

	s.Traits = s.Traits.Add(delta)
	s.ScenariosCompleted++
	if next, ok := AetherianScenarioScreen(s.ScenariosCompleted + 1); ok {
		s.Screen = next
	} else {
		s.Screen = ScreenAetherianJudgment
	}
	return s, nil
}

func chooseChronos(s Session, choice ChronosChoice) (Session, error) {
	if s.Screen != ScreenChronosScenario || s.ChronosScenario < 1 || s.ChronosScenario > ChronosScenarios {
		return rejectScreen(s, ActionChooseChronos)
	}

	switch choice {
	case ChoicePreserve:
		s.ChronosChoices.Preservation++
		s.TimelineIntegrity = clampStat(s.TimelineIntegrity + 5)
	case ChoiceIntervene:
		s.ChronosChoices.Intervention++
		s.TimelineIntegrity = clampStat(s.TimelineIntegrity - 10)
	case ChoiceKnowledge:
		s.ChronosChoices.Knowledge++
	default:
		return s, fmt.Errorf("%w: chronos choice %q", ErrInvalidOption, choice)
	}

	s.ChronosScenario++
	if s.ChronosScenario <= ChronosScenarios {
		s.Era = s.Era.Next()
		s.Screen = ScreenChronosScenario
	} else {
		s.Screen = ScreenChronosEnding
	}
	return s, nil
}

func chooseVoid(s Session, choice VoidChoice) (Session, error) {
	n, ok := s.Screen.VoidScenario()
	if !ok || n != s.VoidScenario {
		return rejectScreen(s, ActionChooseVoid)
	}

	switch choice {
	case ChoiceDestroy:
		s.Sanity = clampStat(s.Sanity + 10)
	case ChoiceUse:
		s.Sanity = clampStat(s.Sanity - 20)
	case ChoiceStudy:
		s.Sanity = clampStat(s.Sanity - 5)
	default:
		return s, fmt.Errorf("%w: void choice %q", ErrInvalidOption, choice)
	}

	s.VoidScenario++
	if next, ok := VoidScenarioScreen(s.VoidScenario); ok {
		s.Screen = next
	} else {
		s.Screen = voidEndingScreen(s.Sanity)
	}
	return s, nil
}
