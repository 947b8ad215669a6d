package narrative

// Story identifies one of the three narrative modules.
type Story int

const (
	// StoryNone means no story is active (main menu).
	StoryNone Story = iota
	// StoryAetherian is the role-alignment gladiator story.
	StoryAetherian
	// StoryChronos is the time-travel story.
	StoryChronos
	// StoryVoid is the cosmic-horror story.
	StoryVoid
)

var storyNames = map[Story]string{
	StoryNone:      "none",
	StoryAetherian: "aetherian",
	StoryChronos:   "chronos",
	StoryVoid:      "void",
}

// Stories lists the playable stories in menu order.
var Stories = []Story{StoryAetherian, StoryChronos, StoryVoid}

func (s Story) String() string { return enumName(storyNames, s) }

// ParseStory converts a wire name into a Story.
func ParseStory(name string) (Story, error) { return parseEnum("story", storyNames, name) }

// MarshalText encodes the story by its wire name.
func (s Story) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText accepts only known story names.
func (s *Story) UnmarshalText(text []byte) error {
	v, err := ParseStory(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Role is the Aetherian player's chosen path.
type Role int

const (
	// RoleNone means no role has been chosen yet.
	RoleNone Role = iota
	RoleWarrior
	RoleMage
	RoleRogue
)

var roleNames = map[Role]string{
	RoleNone:    "none",
	RoleWarrior: "warrior",
	RoleMage:    "mage",
	RoleRogue:   "rogue",
}

// Roles lists the selectable roles in presentation order.
var Roles = []Role{RoleWarrior, RoleMage, RoleRogue}

func (r Role) String() string { return enumName(roleNames, r) }

// ParseRole converts a wire name into a Role.
func ParseRole(name string) (Role, error) { return parseEnum("role", roleNames, name) }

// MarshalText encodes the role by its wire name.
func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText accepts only known role names.
func (r *Role) UnmarshalText(text []byte) error {
	v, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Era is the Chronos time period. Eras only move forward.
type Era int

const (
	EraPresent Era = iota
	EraPast
	EraFuture
)

var eraNames = map[Era]string{
	EraPresent: "present",
	EraPast:    "past",
	EraFuture:  "future",
}

// Eras lists eras in travel order.
var Eras = []Era{EraPresent, EraPast, EraFuture}

func (e Era) String() string { return enumName(eraNames, e) }

// ParseEra converts a wire name into an Era.
func ParseEra(name string) (Era, error) { return parseEnum("era", eraNames, name) }

// Next returns the following era. Future is the last era and stays Future.
func (e Era) Next() Era {
	if e >= EraFuture {
		return EraFuture
	}
	return e + 1
}

// MarshalText encodes the era by its wire name.
func (e Era) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// UnmarshalText accepts only known era names.
func (e *Era) UnmarshalText(text []byte) error {
	v, err := ParseEra(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
