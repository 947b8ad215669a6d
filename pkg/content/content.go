package content

import "github.com/jwebster45206/story-collection/pkg/narrative"

// Library is the full set of copy for one build.
type Library struct {
	Menu      Menu
	Aetherian Aetherian
	Chronos   Chronos
	Void      Void
}

type Menu struct {
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle"`
	Entries  []MenuEntry `json:"entries"`
	Footer   string      `json:"footer"`
}

type MenuEntry struct {
	Story       narrative.Story `json:"story"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
}

// Intro is a story's opening screen. Button is empty when the intro offers
// its own choices instead (Aetherian roles).
type Intro struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Lines    []string `json:"lines"`
	Button   string   `json:"button,omitempty"`
}

// Choice is one answer to a scene. Option is the value carried by the
// matching narrative action.
type Choice struct {
	Option string `json:"option"`
	Label  string `json:"label"`
}

type Scene struct {
	Title   string   `json:"title,omitempty"`
	Lines   []string `json:"lines"`
	Choices []Choice `json:"choices"`
}

type RoleButton struct {
	Role  narrative.Role `json:"role"`
	Label string         `json:"label"`
}

// Verdict is the judge's speech and the highlighted result lines. Result
// lines may contain {role} and {title}.
type Verdict struct {
	Lines  []string `json:"lines"`
	Result []string `json:"result"`
}

type Judgment struct {
	Title       string  `json:"title"`
	Meter       string  `json:"meter"`
	Favorable   Verdict `json:"favorable"`
	Unfavorable Verdict `json:"unfavorable"`
	Button      string  `json:"button"`
}

type Aetherian struct {
	Intro     Intro        `json:"intro"`
	Roles     []RoleButton `json:"roles"`
	Scenarios []Scene      `json:"scenarios"`
	Judgment  Judgment     `json:"judgment"`
	Back      string       `json:"back"`
}

// Scenario returns the copy for scenario n (1-based).
func (a Aetherian) Scenario(n int) (Scene, bool) {
	return sceneAt(a.Scenarios, n)
}

// Verdict returns the judge copy for an ending key.
func (j Judgment) Verdict(key string) Verdict {
	if key == narrative.EndingFavorable {
		return j.Favorable
	}
	return j.Unfavorable
}

// EraScene is the Chronos scene shown in one era.
type EraScene struct {
	Era narrative.Era `json:"era"`
	Scene
}

// EndingCopy is the body text of one ending, keyed by narrative ending key.
type EndingCopy struct {
	Key   string   `json:"key"`
	Lines []string `json:"lines"`
}

type Chronos struct {
	Intro      Intro        `json:"intro"`
	EraHeading string       `json:"era_heading"`
	Meter      string       `json:"meter"`
	FinalMeter string       `json:"final_meter"`
	Scenes     []EraScene   `json:"scenes"`
	Endings    []EndingCopy `json:"endings"`
	Button     string       `json:"button"`
	Back       string       `json:"back"`
}

// Scene returns the scene for an era.
func (c Chronos) Scene(era narrative.Era) (Scene, bool) {
	for _, s := range c.Scenes {
		if s.Era == era {
			return s.Scene, true
		}
	}
	return Scene{}, false
}

// Ending returns the body lines of the ending with the given key.
func (c Chronos) Ending(key string) ([]string, bool) {
	return endingLines(c.Endings, key)
}

type Void struct {
	Intro      Intro        `json:"intro"`
	Meter      string       `json:"meter"`
	FinalMeter string       `json:"final_meter"`
	Scenarios  []Scene      `json:"scenarios"`
	Endings    []EndingCopy `json:"endings"`
	Button     string       `json:"button"`
	Back       string       `json:"back"`
}

// Scenario returns the copy for scenario n (1-based).
func (v Void) Scenario(n int) (Scene, bool) {
	return sceneAt(v.Scenarios, n)
}

func (v Void) Ending(key string) ([]string, bool) {
	return endingLines(v.Endings, key)
}

func sceneAt(scenes []Scene, n int) (Scene, bool) {
	if n < 1 || n > len(scenes) {
		return Scene{}, false
	}
	return scenes[n-1], true
}

func endingLines(endings []EndingCopy, key string) ([]string, bool) {
	for _, e := range endings {
		if e.Key == key {
			return e.Lines, true
		}
	}
	return nil, false
}
