package content

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/jwebster45206/story-collection/pkg/narrative"
)

// Validate checks that every section of lib has the copy each screen needs.
// All problems are reported together.
func Validate(lib *Library) error {
	if lib == nil {
		return errors.New("library is nil")
	}
	return errors.Join(
		lib.Menu.Validate(),
		lib.Aetherian.Validate(),
		lib.Chronos.Validate(),
		lib.Void.Validate(),
	)
}

// ValidateFile decodes data as the section named by filename and validates it.
func ValidateFile(filename string, data []byte) error {
	switch filepath.Base(filename) {
	case MenuFile:
		return parseAndValidate[Menu](data)
	case AetherianFile:
		return parseAndValidate[Aetherian](data)
	case ChronosFile:
		return parseAndValidate[Chronos](data)
	case VoidFile:
		return parseAndValidate[Void](data)
	default:
		return fmt.Errorf("no copy section is named %s", filepath.Base(filename))
	}
}

type validator interface {
	Validate() error
}

func parseAndValidate[T validator](data []byte) error {
	v, err := Parse[T](data)
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return v.Validate()
}

func (m Menu) Validate() error {
	var errs []error
	if m.Title == "" {
		errs = append(errs, errors.New("menu: missing title"))
	}
	seen := make(map[narrative.Story]bool)
	for i, e := range m.Entries {
		if _, ok := narrative.IntroScreen(e.Story); !ok {
			errs = append(errs, fmt.Errorf("menu: entry %d: story %s is not playable", i+1, e.Story))
			continue
		}
		if seen[e.Story] {
			errs = append(errs, fmt.Errorf("menu: story %s listed twice", e.Story))
		}
		seen[e.Story] = true
		if e.Label == "" {
			errs = append(errs, fmt.Errorf("menu: story %s has no label", e.Story))
		}
	}
	for _, s := range narrative.Stories {
		if !seen[s] {
			errs = append(errs, fmt.Errorf("menu: story %s is missing", s))
		}
	}
	return errors.Join(errs...)
}

func (a Aetherian) Validate() error {
	errs := validateIntro("aetherian", a.Intro, false)

	seen := make(map[narrative.Role]bool)
	for _, r := range a.Roles {
		if _, ok := narrative.RoleProfiles[r.Role]; !ok {
			errs = append(errs, fmt.Errorf("aetherian: role %s is not selectable", r.Role))
			continue
		}
		if seen[r.Role] {
			errs = append(errs, fmt.Errorf("aetherian: role %s listed twice", r.Role))
		}
		seen[r.Role] = true
		if r.Label == "" {
			errs = append(errs, fmt.Errorf("aetherian: role %s has no label", r.Role))
		}
	}
	for _, r := range narrative.Roles {
		if !seen[r] {
			errs = append(errs, fmt.Errorf("aetherian: role %s is missing", r))
		}
	}

	errs = append(errs, validateScenarios("aetherian", a.Scenarios, narrative.AetherianScenarios, optionNames(narrative.AetherianOptions))...)

	j := a.Judgment
	if j.Title == "" || j.Meter == "" || j.Button == "" {
		errs = append(errs, errors.New("aetherian: judgment needs a title, meter label and button"))
	}
	for _, key := range []string{narrative.EndingFavorable, narrative.EndingUnfavorable} {
		if v := j.Verdict(key); len(v.Lines) == 0 || len(v.Result) == 0 {
			errs = append(errs, fmt.Errorf("aetherian: %s verdict needs judge lines and result lines", key))
		}
	}
	if a.Back == "" {
		errs = append(errs, errors.New("aetherian: missing back label"))
	}
	return errors.Join(errs...)
}

func (c Chronos) Validate() error {
	errs := validateIntro("chronos", c.Intro, true)
	if c.EraHeading == "" || c.Meter == "" || c.FinalMeter == "" {
		errs = append(errs, errors.New("chronos: missing era heading or meter labels"))
	}

	allowed := optionNames(narrative.ChronosOptions)
	seen := make(map[narrative.Era]bool)
	for _, s := range c.Scenes {
		prefix := fmt.Sprintf("chronos: %s scene", s.Era)
		if seen[s.Era] {
			errs = append(errs, fmt.Errorf("%s listed twice", prefix))
		}
		seen[s.Era] = true
		errs = append(errs, validateScene(prefix, s.Scene, false, allowed)...)
	}
	for _, e := range narrative.Eras {
		if !seen[e] {
			errs = append(errs, fmt.Errorf("chronos: no scene for era %s", e))
		}
	}

	errs = append(errs, validateEndings("chronos", c.Endings,
		narrative.EndingPreserver, narrative.EndingBalanced, narrative.EndingBreaker)...)
	if c.Button == "" || c.Back == "" {
		errs = append(errs, errors.New("chronos: missing button or back label"))
	}
	return errors.Join(errs...)
}

func (v Void) Validate() error {
	errs := validateIntro("void", v.Intro, true)
	if v.Meter == "" || v.FinalMeter == "" {
		errs = append(errs, errors.New("void: missing meter labels"))
	}
	errs = append(errs, validateScenarios("void", v.Scenarios, narrative.VoidScenarios, optionNames(narrative.VoidOptions))...)
	errs = append(errs, validateEndings("void", v.Endings,
		narrative.EndingMadness, narrative.EndingSafe, narrative.EndingMixed)...)
	if v.Button == "" || v.Back == "" {
		errs = append(errs, errors.New("void: missing button or back label"))
	}
	return errors.Join(errs...)
}

func validateIntro(story string, in Intro, needButton bool) []error {
	var errs []error
	if in.Title == "" || len(in.Lines) == 0 {
		errs = append(errs, fmt.Errorf("%s: intro needs a title and lines", story))
	}
	if needButton && in.Button == "" {
		errs = append(errs, fmt.Errorf("%s: intro needs a button", story))
	}
	return errs
}

func validateScenarios(story string, scenes []Scene, want int, allowed []string) []error {
	var errs []error
	if len(scenes) != want {
		errs = append(errs, fmt.Errorf("%s: expected %d scenarios, got %d", story, want, len(scenes)))
	}
	for i, s := range scenes {
		errs = append(errs, validateScene(fmt.Sprintf("%s: scenario %d", story, i+1), s, true, allowed)...)
	}
	return errs
}

// validateScene requires three choices that cover allowed exactly once each.
func validateScene(prefix string, s Scene, needTitle bool, allowed []string) []error {
	var errs []error
	if needTitle && s.Title == "" {
		errs = append(errs, fmt.Errorf("%s: missing title", prefix))
	}
	if len(s.Lines) == 0 {
		errs = append(errs, fmt.Errorf("%s: no lines", prefix))
	}
	if len(s.Choices) != len(allowed) {
		errs = append(errs, fmt.Errorf("%s: expected %d choices, got %d", prefix, len(allowed), len(s.Choices)))
	}

	used := make(map[string]bool)
	for _, c := range s.Choices {
		if !slices.Contains(allowed, c.Option) {
			errs = append(errs, fmt.Errorf("%s: unknown option %q", prefix, c.Option))
			continue
		}
		if used[c.Option] {
			errs = append(errs, fmt.Errorf("%s: option %q used twice", prefix, c.Option))
		}
		used[c.Option] = true
		if c.Label == "" {
			errs = append(errs, fmt.Errorf("%s: option %q has no label", prefix, c.Option))
		}
	}
	return errs
}

func validateEndings(story string, endings []EndingCopy, keys ...string) []error {
	var errs []error
	for _, key := range keys {
		lines, ok := endingLines(endings, key)
		if !ok || len(lines) == 0 {
			errs = append(errs, fmt.Errorf("%s: no copy for ending %s", story, key))
		}
	}
	for _, e := range endings {
		if !slices.Contains(keys, e.Key) {
			errs = append(errs, fmt.Errorf("%s: unknown ending %q", story, e.Key))
		}
	}
	return errs
}

func optionNames[T ~string](opts []T) []string {
	names := make([]string, len(opts))
	for i, o := range opts {
		names[i] = string(o)
	}
	return names
}
