package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/story-collection/internal/handlers"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner plays scripted action sequences against a running story-collection API
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Timeout           time.Duration
	Logger            func(format string, args ...any)
	ErrorHandlingMode ErrorHandlingMode
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 30 * time.Second},
		Timeout:           30 * time.Second,
		Logger:            func(string, ...any) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	dec := json.NewDecoder(strings.NewReader(string(content)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
// Returns a list of actual test suites (expanded from the sequence if needed)
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		// Recursively load (in case a sequence references another sequence)
		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}

		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// DiscoverTestFiles lists the case files in dir in name order
func DiscoverTestFiles(dir string) ([]string, error) {
	return filepath.Glob(filepath.Join(dir, "*.json"))
}

// RunSuite executes a complete test suite on a fresh hosted game, which is
// deleted afterwards
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	created, err := CreateGameState(ctx, r.Client, r.BaseURL)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result, result.Error
	}
	result.GameState = created.ID
	defer func() {
		if err := DeleteGameState(context.Background(), r.Client, r.BaseURL, created.ID); err != nil {
			r.Logger("    Warning: %v", err)
		}
	}()

	prev := created
	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult, next := r.runStep(ctx, created.ID, step, prev)
		stepResult.TestName = suite.Name
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
		} else {
			r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
		}

		if next != nil {
			prev = next
		}
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

// runStep posts the step's action and checks expectations. It returns the
// game as it stands afterwards when that is known.
func (r *Runner) runStep(ctx context.Context, gameStateID uuid.UUID, step TestStep, prev *handlers.GameStateResponse) (result TestResult, next *handlers.GameStateResponse) {
	start := time.Now()
	result = TestResult{StepName: step.Name}
	defer func() { result.Duration = time.Since(start) }()

	status, gs, err := PostAction(ctx, r.Client, r.BaseURL, gameStateID, step.Action)
	result.Status = status
	if err != nil {
		result.Error = fmt.Errorf("failed to post action: %w", err)
		return result, nil
	}

	wantStatus := http.StatusOK
	if step.Expectations.Status != nil {
		wantStatus = *step.Expectations.Status
	}
	if status != wantStatus {
		result.Error = fmt.Errorf("expected status %d, got %d", wantStatus, status)
		return result, gs
	}

	if status != http.StatusOK {
		// A refused action must leave the game exactly as it was.
		gs, err = GetGameState(ctx, r.Client, r.BaseURL, gameStateID)
		if err != nil {
			result.Error = err
			return result, nil
		}
		if gs.Session != prev.Session || gs.Turns != prev.Turns {
			result.Error = fmt.Errorf("refused action changed the game: %+v became %+v", prev.Session, gs.Session)
			return result, gs
		}
	}

	if err := checkExpectations(step.Expectations, gs); err != nil {
		result.Error = fmt.Errorf("expectation failed: %w", err)
		return result, gs
	}

	result.Success = true
	return result, gs
}

// checkExpectations validates the test expectations against the game
func checkExpectations(exp Expectations, gs *handlers.GameStateResponse) error {
	s := gs.Session
	v := gs.View

	if exp.Screen != nil && s.Screen != *exp.Screen {
		return fmt.Errorf("expected screen %s, got %s", *exp.Screen, s.Screen)
	}
	if exp.Role != nil && s.Role != *exp.Role {
		return fmt.Errorf("expected role %s, got %s", *exp.Role, s.Role)
	}
	if exp.Traits != nil && s.Traits != *exp.Traits {
		return fmt.Errorf("expected traits %+v, got %+v", *exp.Traits, s.Traits)
	}
	if exp.Era != nil && s.Era != *exp.Era {
		return fmt.Errorf("expected era %s, got %s", *exp.Era, s.Era)
	}
	if exp.TimelineIntegrity != nil && s.TimelineIntegrity != *exp.TimelineIntegrity {
		return fmt.Errorf("expected timeline_integrity %d, got %d", *exp.TimelineIntegrity, s.TimelineIntegrity)
	}
	if exp.Sanity != nil && s.Sanity != *exp.Sanity {
		return fmt.Errorf("expected sanity %d, got %d", *exp.Sanity, s.Sanity)
	}
	if exp.Turns != nil && gs.Turns != *exp.Turns {
		return fmt.Errorf("expected turns %d, got %d", *exp.Turns, gs.Turns)
	}

	if exp.Title != nil && v.Title != *exp.Title {
		return fmt.Errorf("expected title %q, got %q", *exp.Title, v.Title)
	}
	if exp.Meter != nil {
		if v.Meter == nil {
			return fmt.Errorf("expected meter %q, screen has none", *exp.Meter)
		}
		if got := v.Meter.String(); got != *exp.Meter {
			return fmt.Errorf("expected meter %q, got %q", *exp.Meter, got)
		}
	}
	if exp.Ending != nil {
		if v.Ending == nil {
			return fmt.Errorf("expected ending %s, screen is not an ending", *exp.Ending)
		}
		if v.Ending.Key != *exp.Ending {
			return fmt.Errorf("expected ending %s, got %s", *exp.Ending, v.Ending.Key)
		}
	}

	body := strings.ToLower(strings.Join(v.Body, "\n"))
	for _, want := range exp.BodyContains {
		if !strings.Contains(body, strings.ToLower(want)) {
			return fmt.Errorf("expected body to contain '%s', but it didn't", want)
		}
	}
	result := strings.ToLower(strings.Join(v.Result, "\n"))
	for _, want := range exp.ResultContains {
		if !strings.Contains(result, strings.ToLower(want)) {
			return fmt.Errorf("expected result to contain '%s', but it didn't", want)
		}
	}

	return nil
}
