// Package view projects a narrative.Session onto the copy in a
// content.Library. Render is pure: the same session and library always
// produce the same View, and every Option carries an action the engine
// accepts on that screen.
package view

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/story-collection/pkg/content"
	"github.com/jwebster45206/story-collection/pkg/narrative"
)

// Theme selects a renderer's palette.
type Theme string

const (
	ThemeMenu      Theme = "menu"
	ThemeAetherian Theme = "aetherian"
	ThemeChronos   Theme = "chronos"
	ThemeVoid      Theme = "void"
)

// BackKey is the hotkey of the option that returns to the main menu.
const BackKey = "b"

// choiceLetters label scene choices in presentation order.
var choiceLetters = []string{"A", "B", "C"}

// Meter is a 0..Max gauge such as sanity or alignment.
type Meter struct {
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	Max       float64 `json:"max"`
	Precision int     `json:"precision"`
}

// String formats the meter as "Label: N%".
func (m Meter) String() string {
	return m.Label + ": " + strconv.FormatFloat(m.Value, 'f', m.Precision, 64) + "%"
}

// Fraction is Value/Max clamped to [0, 1].
func (m Meter) Fraction() float64 {
	if m.Max <= 0 {
		return 0
	}
	return min(max(m.Value/m.Max, 0), 1)
}

// Option is one selectable entry on a screen.
type Option struct {
	Key         string           `json:"key"`
	Label       string           `json:"label"`
	Description string           `json:"description,omitempty"`
	Action      narrative.Action `json:"action"`
}

// View is everything a renderer needs to draw one screen.
type View struct {
	Screen   narrative.Screen  `json:"screen"`
	Theme    Theme             `json:"theme"`
	Title    string            `json:"title"`
	Subtitle string            `json:"subtitle,omitempty"`
	Body     []string          `json:"body,omitempty"`
	Meter    *Meter            `json:"meter,omitempty"`
	Result   []string          `json:"result,omitempty"`
	Ending   *narrative.Ending `json:"ending,omitempty"`
	Footer   string            `json:"footer,omitempty"`
	Options  []Option          `json:"options"`
}

// IsTerminal reports whether the view shows an ending.
func (v View) IsTerminal() bool {
	return v.Ending != nil
}

// Option returns the option bound to key.
func (v View) Option(key string) (Option, bool) {
	for _, o := range v.Options {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

// Display title-cases an enum wire name for the screen: "warrior" becomes
// "Warrior". Casers are stateful, so each call gets its own.
func Display(name string) string {
	return cases.Title(language.English).String(name)
}

// Render builds the view of s. A nil lib uses content.Default().
func Render(s narrative.Session, lib *content.Library) View {
	if lib == nil {
		lib = content.Default()
	}

	switch s.Screen.Story() {
	case narrative.StoryAetherian:
		return renderAetherian(s, lib.Aetherian)
	case narrative.StoryChronos:
		return renderChronos(s, lib.Chronos)
	case narrative.StoryVoid:
		return renderVoid(s, lib.Void)
	default:
		return renderMenu(lib.Menu)
	}
}

func renderMenu(m content.Menu) View {
	v := View{
		Screen:   narrative.ScreenMainMenu,
		Theme:    ThemeMenu,
		Title:    m.Title,
		Subtitle: m.Subtitle,
		Footer:   m.Footer,
	}
	for i, e := range m.Entries {
		v.Options = append(v.Options, Option{
			Key:         digit(i),
			Label:       e.Label,
			Description: e.Description,
			Action:      narrative.SelectStory(e.Story),
		})
	}
	return v
}

func renderAetherian(s narrative.Session, a content.Aetherian) View {
	v := View{Screen: s.Screen, Theme: ThemeAetherian}

	switch {
	case s.Screen == narrative.ScreenAetherianIntro:
		v.Title, v.Subtitle, v.Body = a.Intro.Title, a.Intro.Subtitle, a.Intro.Lines
		for i, r := range a.Roles {
			v.Options = append(v.Options, Option{Key: digit(i), Label: r.Label, Action: narrative.SelectRole(r.Role)})
		}
		v.Options = append(v.Options, backOption(a.Back))

	case s.Screen == narrative.ScreenAetherianJudgment:
		ending, _ := s.Ending()
		verdict := a.Judgment.Verdict(ending.Key)
		expand := placeholders(s, ending)

		v.Title = a.Judgment.Title
		v.Meter = &Meter{Label: expand.Replace(a.Judgment.Meter), Value: s.Alignment(), Max: 100, Precision: 1}
		v.Body = verdict.Lines
		v.Result = expandAll(expand, verdict.Result)
		v.Ending = &ending
		v.Options = []Option{backOption(a.Judgment.Button)}

	default:
		n, _ := s.Screen.AetherianScenario()
		scene, _ := a.Scenario(n)
		v.Title = scenarioTitle(n, scene.Title)
		v.Body = scene.Lines
		v.Options = sceneOptions(scene, func(opt string) narrative.Action {
			return narrative.ChooseAetherian(narrative.AetherianOption(opt))
		})
		v.Options = append(v.Options, backOption(a.Back))
	}
	return v
}

func renderChronos(s narrative.Session, c content.Chronos) View {
	v := View{Screen: s.Screen, Theme: ThemeChronos}

	switch s.Screen {
	case narrative.ScreenChronosIntro:
		v.Title, v.Subtitle, v.Body = c.Intro.Title, c.Intro.Subtitle, c.Intro.Lines
		v.Options = []Option{
			{Key: digit(0), Label: c.Intro.Button, Action: narrative.Begin()},
			backOption(c.Back),
		}

	case narrative.ScreenChronosEnding:
		ending, _ := s.Ending()
		v.Title = ending.Title
		v.Body, _ = c.Ending(ending.Key)
		v.Meter = statMeter(c.FinalMeter, s.TimelineIntegrity)
		v.Ending = &ending
		v.Options = []Option{backOption(c.Button)}

	default:
		scene, _ := c.Scene(s.Era)
		v.Title = placeholders(s, narrative.Ending{}).Replace(c.EraHeading)
		v.Body = scene.Lines
		v.Meter = statMeter(c.Meter, s.TimelineIntegrity)
		v.Options = sceneOptions(scene, func(opt string) narrative.Action {
			return narrative.ChooseChronos(narrative.ChronosChoice(opt))
		})
		v.Options = append(v.Options, backOption(c.Back))
	}
	return v
}

func renderVoid(s narrative.Session, vc content.Void) View {
	v := View{Screen: s.Screen, Theme: ThemeVoid}

	if s.Screen == narrative.ScreenVoidIntro {
		v.Title, v.Subtitle, v.Body = vc.Intro.Title, vc.Intro.Subtitle, vc.Intro.Lines
		v.Options = []Option{
			{Key: digit(0), Label: vc.Intro.Button, Action: narrative.Begin()},
			backOption(vc.Back),
		}
		return v
	}

	if ending, ok := s.Ending(); ok {
		v.Title = ending.Title
		v.Body, _ = vc.Ending(ending.Key)
		v.Meter = statMeter(vc.FinalMeter, s.Sanity)
		v.Ending = &ending
		v.Options = []Option{backOption(vc.Button)}
		return v
	}

	n, _ := s.Screen.VoidScenario()
	scene, _ := vc.Scenario(n)
	v.Title = scenarioTitle(n, scene.Title)
	v.Body = scene.Lines
	v.Meter = statMeter(vc.Meter, s.Sanity)
	v.Options = sceneOptions(scene, func(opt string) narrative.Action {
		return narrative.ChooseVoid(narrative.VoidChoice(opt))
	})
	v.Options = append(v.Options, backOption(vc.Back))
	return v
}

func sceneOptions(scene content.Scene, action func(option string) narrative.Action) []Option {
	opts := make([]Option, 0, len(scene.Choices))
	for i, c := range scene.Choices {
		label := c.Label
		if i < len(choiceLetters) {
			label = choiceLetters[i] + ". " + label
		}
		opts = append(opts, Option{Key: digit(i), Label: label, Action: action(c.Option)})
	}
	return opts
}

func backOption(label string) Option {
	return Option{Key: BackKey, Label: label, Action: narrative.ReturnToMenu()}
}

func statMeter(label string, value int) *Meter {
	return &Meter{Label: label, Value: float64(value), Max: narrative.StatMax}
}

func scenarioTitle(n int, title string) string {
	return "Scenario " + strconv.Itoa(n) + ": " + title
}

func placeholders(s narrative.Session, ending narrative.Ending) *strings.Replacer {
	return strings.NewReplacer(
		"{role}", Display(s.Role.String()),
		"{era}", Display(s.Era.String()),
		"{title}", ending.Title,
	)
}

func expandAll(r *strings.Replacer, lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = r.Replace(l)
	}
	return out
}

func digit(i int) string {
	return strconv.Itoa(i + 1)
}
