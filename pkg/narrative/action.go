package narrative

import (
	"fmt"
	"slices"
)

// ActionType names one kind of player input.
type ActionType string

const (
	ActionSelectStory     ActionType = "select_story"
	ActionSelectRole      ActionType = "select_role"
	ActionBegin           ActionType = "begin"
	ActionChooseAetherian ActionType = "choose_aetherian"
	ActionChooseChronos   ActionType = "choose_chronos"
	ActionChooseVoid      ActionType = "choose_void"
	ActionReturnToMenu    ActionType = "return_to_menu"
)

// ActionTypes lists every action type Apply understands.
var ActionTypes = []ActionType{
	ActionSelectStory,
	ActionSelectRole,
	ActionBegin,
	ActionChooseAetherian,
	ActionChooseChronos,
	ActionChooseVoid,
	ActionReturnToMenu,
}

// Known reports whether t is one of ActionTypes.
func (t ActionType) Known() bool {
	return slices.Contains(ActionTypes, t)
}

// AetherianOption is one of the three lettered answers in an Aetherian scenario.
type AetherianOption string

const (
	OptionA AetherianOption = "A"
	OptionB AetherianOption = "B"
	OptionC AetherianOption = "C"
)

// AetherianOptions lists the options in presentation order.
var AetherianOptions = []AetherianOption{OptionA, OptionB, OptionC}

// ChronosChoice is a Time Weaver's decision in a Chronos scenario.
type ChronosChoice string

const (
	ChoicePreserve  ChronosChoice = "preserve"
	ChoiceIntervene ChronosChoice = "intervene"
	ChoiceKnowledge ChronosChoice = "knowledge"
)

// ChronosOptions lists the choices in presentation order.
var ChronosOptions = []ChronosChoice{ChoicePreserve, ChoiceIntervene, ChoiceKnowledge}

// VoidChoice is an investigator's decision in a Void scenario. Every Void
// scenario maps its three answers onto these same tags.
type VoidChoice string

const (
	ChoiceDestroy VoidChoice = "destroy"
	ChoiceUse     VoidChoice = "use"
	ChoiceStudy   VoidChoice = "study"
)

// VoidOptions lists the choices in presentation order.
var VoidOptions = []VoidChoice{ChoiceDestroy, ChoiceUse, ChoiceStudy}

// Action is a tagged input event. Only the fields relevant to Type are set.
type Action struct {
	Type   ActionType `json:"type"`
	Story  Story      `json:"story,omitempty"`
	Role   Role       `json:"role,omitempty"`
	Option string     `json:"option,omitempty"`
}

// SelectStory picks a story from the main menu.
func SelectStory(story Story) Action {
	return Action{Type: ActionSelectStory, Story: story}
}

// SelectRole picks the Aetherian role.
func SelectRole(role Role) Action {
	return Action{Type: ActionSelectRole, Role: role}
}

// Begin leaves the Chronos or Void intro for the first scenario.
func Begin() Action {
	return Action{Type: ActionBegin}
}

// ChooseAetherian answers the current Aetherian scenario.
func ChooseAetherian(option AetherianOption) Action {
	return Action{Type: ActionChooseAetherian, Option: string(option)}
}

// ChooseChronos answers the current Chronos scenario.
func ChooseChronos(choice ChronosChoice) Action {
	return Action{Type: ActionChooseChronos, Option: string(choice)}
}

// ChooseVoid answers the current Void scenario.
func ChooseVoid(choice VoidChoice) Action {
	return Action{Type: ActionChooseVoid, Option: string(choice)}
}

// ReturnToMenu abandons the current story.
func ReturnToMenu() Action {
	return Action{Type: ActionReturnToMenu}
}

// String renders a for logs, e.g. "choose_void(use)".
func (a Action) String() string {
	switch a.Type {
	case ActionSelectStory:
		return fmt.Sprintf("%s(%s)", a.Type, a.Story)
	case ActionSelectRole:
		return fmt.Sprintf("%s(%s)", a.Type, a.Role)
	case ActionChooseAetherian, ActionChooseChronos, ActionChooseVoid:
		return fmt.Sprintf("%s(%s)", a.Type, a.Option)
	default:
		return string(a.Type)
	}
}
