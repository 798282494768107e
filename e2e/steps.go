package e2e

import (
	"github.com/cucumber/godog"

	"campus/e2e/steps/auth"
	"campus/e2e/steps/common"
	"campus/e2e/steps/records"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	auth.RegisterSteps(ctx, tc)
	records.RegisterSteps(ctx, tc)
}
