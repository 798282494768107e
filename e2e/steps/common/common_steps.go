package common

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Do(method, path string, body any) error
	Status() int
	ResponseField(path string) (any, error)
	Expand(s string) string
}

// RegisterSteps registers background, request, and assertion steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^the records API is running$`, steps.apiIsRunning)
	ctx.Step(`^I (GET|DELETE|PUT) "([^"]*)"$`, steps.request)
	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be (\d+)$`, steps.fieldShouldBeNumber)
	ctx.Step(`^the error code should be "([^"]*)"$`, steps.errorCodeShouldBe)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) apiIsRunning(ctx context.Context) error {
	if err := s.tc.Do(http.MethodGet, "/healthz", nil); err != nil {
		return err
	}
	return s.statusShouldBe(ctx, http.StatusOK)
}

func (s *commonSteps) request(_ context.Context, method, path string) error {
	return s.tc.Do(method, path, nil)
}

func (s *commonSteps) statusShouldBe(_ context.Context, want int) error {
	if got := s.tc.Status(); got != want {
		return fmt.Errorf("expected status %d, got %d", want, got)
	}
	return nil
}

func (s *commonSteps) fieldShouldBe(_ context.Context, field, want string) error {
	v, err := s.tc.ResponseField(field)
	if err != nil {
		return err
	}
	want = s.tc.Expand(want)
	if got := fmt.Sprint(v); got != want {
		return fmt.Errorf("expected %s to be %q, got %q", field, want, got)
	}
	return nil
}

func (s *commonSteps) fieldShouldBeNumber(ctx context.Context, field string, want int) error {
	return s.fieldShouldBe(ctx, field, strconv.Itoa(want))
}

func (s *commonSteps) errorCodeShouldBe(ctx context.Context, code string) error {
	return s.fieldShouldBe(ctx, "error", code)
}
