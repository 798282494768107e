package records

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Do(method, path string, body any) error
	Status() int
	ResponseField(path string) (any, error)
	Remember(name, value string)
}

// RegisterSteps registers learner, subject, and enrollment steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &recordSteps{tc: tc}

	ctx.Step(`^I create a learner "([^"]*)" with email "([^"]*)" aged (\d+)$`, steps.createLearner)
	ctx.Step(`^I create a subject "([^"]*)" with code "([^"]*)" worth (\d+) credit hours taught by "([^"]*)"$`, steps.createSubject)
	ctx.Step(`^I remember the response id as "([^"]*)"$`, steps.rememberID)
	ctx.Step(`^I change the learner "([^"]*)" field of study to "([^"]*)"$`, steps.changeFieldOfStudy)
}

type recordSteps struct {
	tc TestContext
}

func (s *recordSteps) createLearner(_ context.Context, name, email string, age int) error {
	return s.tc.Do(http.MethodPost, "/learners", map[string]any{"name": name, "email": email, "age": age})
}

func (s *recordSteps) createSubject(_ context.Context, name, code string, hours int, educator string) error {
	return s.tc.Do(http.MethodPost, "/subjects", map[string]any{
		"name":         name,
		"code":         code,
		"credit_hours": hours,
		"educator":     educator,
	})
}

func (s *recordSteps) rememberID(_ context.Context, name string) error {
	id, err := s.tc.ResponseField("id")
	if err != nil {
		return err
	}
	str, ok := id.(string)
	if !ok {
		return fmt.Errorf("id is not a string: %v", id)
	}
	s.tc.Remember(name, str)
	return nil
}

func (s *recordSteps) changeFieldOfStudy(_ context.Context, path, field string) error {
	return s.tc.Do(http.MethodPatch, path, map[string]string{"field_of_study": field})
}
