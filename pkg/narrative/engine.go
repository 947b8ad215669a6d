package narrative

import "log/slog"

// Engine owns a Session and applies player input to it. Rejected input is
// dropped: the session stays as it was and the rejection is logged at
// debug level.
type Engine struct {
	session Session
	logger  *slog.Logger
}

// NewEngine returns an engine positioned on the main menu.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		session: NewSession(),
		logger:  logger,
	}
}

// Session returns a copy of the current session.
func (e *Engine) Session() Session {
	return e.session
}

// Screen returns the current screen.
func (e *Engine) Screen() Screen {
	return e.session.Screen
}

// Dispatch applies a and reports whether it was accepted.
func (e *Engine) Dispatch(a Action) bool {
	next, err := Apply(e.session, a)
	if err != nil {
		e.logger.Debug("Dropped action", "action", a.String(), "screen", e.session.Screen.String(), "error", err)
		return false
	}
	e.logger.Debug("Applied action",
		"action", a.String(),
		"from", e.session.Screen.String(),
		"to", next.Screen.String())
	e.session = next
	return true
}

// SelectStory dispatches SelectStory(story).
func (e *Engine) SelectStory(story Story) bool { return e.Dispatch(SelectStory(story)) }

// SelectRole dispatches SelectRole(role).
func (e *Engine) SelectRole(role Role) bool { return e.Dispatch(SelectRole(role)) }

// Begin dispatches Begin().
func (e *Engine) Begin() bool { return e.Dispatch(Begin()) }

// ChooseAetherian dispatches ChooseAetherian(option).
func (e *Engine) ChooseAetherian(option AetherianOption) bool {
	return e.Dispatch(ChooseAetherian(option))
}

// ChooseChronos dispatches ChooseChronos(choice).
func (e *Engine) ChooseChronos(choice ChronosChoice) bool {
	return e.Dispatch(ChooseChronos(choice))
}

// ChooseVoid dispatches ChooseVoid(choice).
func (e *Engine) ChooseVoid(choice VoidChoice) bool {
	return e.Dispatch(ChooseVoid(choice))
}

// ReturnToMenu resets the whole session. It is accepted on every screen.
func (e *Engine) ReturnToMenu() {
	e.Dispatch(ReturnToMenu())
}
