package auth

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
	SetToken(token string)
}

// RegisterSteps registers credential step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	ctx.Step(`^I register as "([^"]*)" with password "([^"]*)"$`, steps.register)
	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, steps.login)
	ctx.Step(`^I use the returned token$`, steps.useToken)
	ctx.Step(`^I am a signed-in registrar$`, steps.signedIn)
	ctx.Step(`^I use the token "([^"]*)"$`, steps.useLiteralToken)
}

type authSteps struct {
	tc TestContext
}

func (s *authSteps) register(_ context.Context, email, password string) error {
	return s.tc.Do(http.MethodPost, "/auth/register", map[string]string{"email": email, "password": password})
}

func (s *authSteps) login(_ context.Context, email, password string) error {
	return s.tc.Do(http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password})
}

func (s *authSteps) useToken(context.Context) error {
	token, err := s.tc.ResponseField("token")
	if err != nil {
		return err
	}
	str, ok := token.(string)
	if !ok || str == "" {
		return fmt.Errorf("token missing from response")
	}
	s.tc.SetToken(str)
	return nil
}

func (s *authSteps) signedIn(ctx context.Context) error {
	if err := s.register(ctx, "registrar-{run}@campus.edu", "s3cret-pass"); err != nil {
		return err
	}
	if s.tc.Status() != http.StatusCreated {
		return fmt.Errorf("registration failed with status %d", s.tc.Status())
	}
	return s.useToken(ctx)
}

func (s *authSteps) useLiteralToken(_ context.Context, token string) error {
	s.tc.SetToken(token)
	return nil
}
