package runner

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/story-collection/pkg/narrative"
)

// TestSuite defines a complete integration test scenario
// Can either be a regular test with Steps, or a suite that references other Cases
type TestSuite struct {
	Name  string     `json:"name"`
	Steps []TestStep `json:"steps,omitempty"` // Used for regular tests
	Cases []string   `json:"cases,omitempty"` // Used for suite tests (list of case files)
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep posts one action and checks the hosted game afterwards
type TestStep struct {
	Name         string           `json:"name,omitempty"`
	Action       narrative.Action `json:"action"`
	Expectations Expectations     `json:"expect"`
}

// Expectations defines what to check after a test step executes.
// Unset fields are not checked.
type Expectations struct {
	// HTTP status of the action request; 200 when omitted. Any other status
	// also asserts that the game did not change.
	Status *int `json:"status,omitempty"`

	// Session properties - aligned with pkg/narrative/session.go
	Screen            *narrative.Screen `json:"screen,omitempty"`
	Role              *narrative.Role   `json:"role,omitempty"`
	Traits            *narrative.Traits `json:"traits,omitempty"`
	Era               *narrative.Era    `json:"era,omitempty"`
	TimelineIntegrity *int              `json:"timeline_integrity,omitempty"`
	Sanity            *int              `json:"sanity,omitempty"`
	Turns             *int              `json:"turns,omitempty"`

	// Rendered screen
	Title          *string  `json:"title,omitempty"`
	Meter          *string  `json:"meter,omitempty"`
	Ending         *string  `json:"ending,omitempty"`
	BodyContains   []string `json:"body_contains,omitempty"`
	ResultContains []string `json:"result_contains,omitempty"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	TestName string
	StepName string
	Success  bool
	Error    error
	Duration time.Duration
	Status   int
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job       TestJob
	Results   []TestResult
	Error     error
	Duration  time.Duration
	GameState uuid.UUID // ID of the gamestate used for this test
}
