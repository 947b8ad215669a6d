// Package narrative implements the story-collection state machine: the
// Session record, the Action reducer that moves it between screens, and
// the scoring rules that pick each story's ending.
//
// Everything here is pure and synchronous. Renderers read a Session and
// feed Actions back in; see package view for the read-only projection.
package narrative

const (
	// StatMax is the upper bound for timeline integrity and sanity.
	StatMax = 100
	// StatMin is the lower bound for timeline integrity and sanity.
	StatMin = 0
)

// Traits are the accumulated Aetherian trait counters.
type Traits struct {
	Honor      int `json:"honor"`
	Pragmatism int `json:"pragmatism"`
	Curiosity  int `json:"curiosity"`
}

// Add returns the element-wise sum of t and d.
func (t Traits) Add(d Traits) Traits {
	return Traits{
		Honor:      t.Honor + d.Honor,
		Pragmatism: t.Pragmatism + d.Pragmatism,
		Curiosity:  t.Curiosity + d.Curiosity,
	}
}

// ChronosChoices counts how often each Chronos choice was taken.
type ChronosChoices struct {
	Preservation int `json:"preservation"`
	Intervention int `json:"intervention"`
	Knowledge    int `json:"knowledge"`
}

// Session is the whole mutable state of one play-through. It is a plain
// comparable value: a reset session is == NewSession().
type Session struct {
	Screen Screen `json:"screen"`
	Story  Story  `json:"story"`

	// Aetherian
	Role               Role   `json:"role"`
	ScenariosCompleted int    `json:"scenarios_completed"`
	Traits             Traits `json:"traits"`

	// Chronos
	Era               Era            `json:"era"`
	TimelineIntegrity int            `json:"timeline_integrity"`
	ChronosScenario   int            `json:"chronos_scenario"`
	ChronosChoices    ChronosChoices `json:"chronos_choices"`

	// Void
	Sanity       int `json:"sanity"`
	VoidScenario int `json:"void_scenario"`
}

// NewSession returns a session on the main menu with every story reset.
func NewSession() Session {
	return Session{
		Screen:            ScreenMainMenu,
		Story:             StoryNone,
		Role:              RoleNone,
		Era:               EraPresent,
		TimelineIntegrity: StatMax,
		ChronosScenario:   1,
		Sanity:            StatMax,
		VoidScenario:      1,
	}
}

func clampStat(v int) int {
	return min(max(v, StatMin), StatMax)
}
