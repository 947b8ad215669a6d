package narrative

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEngine_DispatchDropsInvalidInput(t *testing.T) {
	e := newTestEngine()

	assert.False(t, e.Begin())
	assert.False(t, e.ChooseVoid(ChoiceUse))
	assert.Equal(t, NewSession(), e.Session())

	require.True(t, e.SelectStory(StoryVoid))
	assert.Equal(t, ScreenVoidIntro, e.Screen())

	assert.False(t, e.SelectStory(StoryChronos))
	assert.Equal(t, ScreenVoidIntro, e.Screen())
}

func TestEngine_FullAetherianRun(t *testing.T) {
	e := newTestEngine()

	require.True(t, e.SelectStory(StoryAetherian))
	require.True(t, e.SelectRole(RoleRogue))
	for _, o := range []AetherianOption{OptionB, OptionB, OptionB, OptionB} {
		require.True(t, e.ChooseAetherian(o))
	}

	s := e.Session()
	assert.Equal(t, ScreenAetherianJudgment, s.Screen)
	assert.Equal(t, Traits{Honor: 0, Pragmatism: 9, Curiosity: 1}, s.Traits)

	// Further choices are dropped on the judgment screen.
	assert.False(t, e.ChooseAetherian(OptionA))
	assert.Equal(t, s, e.Session())

	e.ReturnToMenu()
	assert.Equal(t, NewSession(), e.Session())
}

func TestEngine_NilLoggerFallsBack(t *testing.T) {
	e := NewEngine(nil)
	assert.True(t, e.SelectStory(StoryChronos))
	assert.True(t, e.Begin())
	assert.True(t, e.ChooseChronos(ChoiceKnowledge))
	assert.Equal(t, EraPast, e.Session().Era)
}

func TestSession_JSONUsesWireNames(t *testing.T) {
	e := newTestEngine()
	require.True(t, e.SelectStory(StoryChronos))
	require.True(t, e.Begin())
	require.True(t, e.ChooseChronos(ChoiceIntervene))

	data, err := json.Marshal(e.Session())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "chronos_scenario", raw["screen"])
	assert.Equal(t, "chronos", raw["story"])
	assert.Equal(t, "past", raw["era"])
	assert.Equal(t, "none", raw["role"])
	assert.EqualValues(t, 90, raw["timeline_integrity"])

	var back Session
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, e.Session(), back)
}

func TestSession_JSONRejectsUnknownNames(t *testing.T) {
	var s Session
	err := json.Unmarshal([]byte(`{"screen":"secret_level"}`), &s)
	assert.Error(t, err)

	var a Action
	err = json.Unmarshal([]byte(`{"type":"select_role","role":"bard"}`), &a)
	assert.Error(t, err)

	require.NoError(t, json.Unmarshal([]byte(`{"type":"select_role","role":"mage"}`), &a))
	assert.Equal(t, SelectRole(RoleMage), a)
}

func TestActionType_Known(t *testing.T) {
	for _, typ := range ActionTypes {
		assert.True(t, typ.Known(), typ)
	}
	assert.False(t, ActionType("jump").Known())
	assert.False(t, ActionType("").Known())
	assert.Len(t, ActionTypes, 7)
}
