// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/httpsniic/sistema-cmc-server/config"
	"github.com/httpsniic/sistema-cmc-server/internal/infra/dependency"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/cache"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/email"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/entrypoint/middleware"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/persistence/model"
	"github.com/httpsniic/sistema-cmc-server/test/integration/mock"
)

const (
	testJWTSecret      = "test-jwt-secret-key-for-testing-purposes"
	testAlertRecipient = "gerencia@cmc.com"
)

// suite holds the resources shared by every scenario.
type suite struct {
	server   *httptest.Server
	injector *dependency.Injector
	db       *mock.Db
	resend   *mock.ApiMock
	clock    *mock.Time
}

var (
	suiteInit sync.Once
	shared    *suite
	suiteErr  error
)

type testContext struct {
	*suite

	client       *http.Client
	headers      map[string]string
	response     *response
	accessToken  string
	refreshToken string
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})

	ctx.AfterSuite(func() {
		if shared == nil {
			return
		}
		shared.server.Close()
		shared.resend.Close()
	})
}

// startSuite wires the application against in-memory SQLite, miniredis and
// a mocked Resend API.
func startSuite() (*suite, error) {
	suiteInit.Do(func() {
		s := &suite{
			db:     mock.NewDb(model.All()...),
			resend: mock.NewApiServer(),
			clock:  mock.NewTime(),
		}
		s.resend.Start()

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret
		cfg.JWT.AccessTokenExpiry = 15 * time.Minute
		cfg.JWT.RefreshTokenExpiry = 24 * time.Hour
		cfg.Metrics.CostTargetPercent = decimal.NewFromInt(30)
		cfg.Metrics.CacheTTL = time.Minute
		cfg.Email.AppBaseURL = "https://cmc.example.com"
		cfg.Alerts.Recipient = testAlertRecipient

		sender := email.NewResendClient("re_test", "Sistema CMC", "alertas@cmc.com")
		if err := sender.SetBaseURL(s.resend.GetUrl()); err != nil {
			suiteErr = err
			return
		}

		redisClient := mock.NewRedis()
		injector, err := dependency.NewInjector(cfg, s.db.DbConn, dependency.Options{
			Cache: cache.NewRedisMetricsCache(redisClient, cfg.Metrics.CacheTTL),
			CacheHealth: func() bool {
				return redisClient.Ping(context.Background()).Err() == nil
			},
			EmailSender: sender,
		})
		if err != nil {
			suiteErr = err
			return
		}
		injector.CostAlerts.SetClock(s.clock.Now)
		s.injector = injector

		engine := injector.Router.Setup(cfg.Server.Environment)
		s.server = httptest.NewServer(middleware.NewCORS(nil).Handler(engine))
		shared = s
	})
	return shared, suiteErr
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Setup steps
	ctx.Given(`^the master user exists$`, test.theMasterUserExists)
	ctx.Given(`^a user "([^"]*)" with role "([^"]*)" and password "([^"]*)" exists$`, test.aUserWithRoleExists)
	ctx.Given(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^I select the store "([^"]*)"$`, test.iSelectTheStore)
	ctx.Given(`^the current date is "([^"]*)"$`, test.theCurrentDateIs)
	ctx.Given(`^the store "([^"]*)" has the records:$`, test.theStoreHasTheRecords)
	ctx.Given(`^the store "([^"]*)" has the group "([^"]*)" with target "([^"]*)"$`, test.theStoreHasTheGroup)
	ctx.Given(`^the email provider answers with status (\d+)$`, test.theEmailProviderAnswersWithStatus)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^the email worker processes the queue$`, test.theEmailWorkerProcessesTheQueue)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Database and integration assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^the metrics cache should hold (\d+) entr(?:y|ies)$`, test.theMetricsCacheShouldHold)
	ctx.Then(`^the email provider should have received (\d+) emails?$`, test.theEmailProviderShouldHaveReceived)
	ctx.Then(`^the last email sent should have the subject "([^"]*)"$`, test.theLastEmailSentShouldHaveTheSubject)
}

func (t *testContext) before() error {
	s, err := startSuite()
	if err != nil {
		return fmt.Errorf("failed to start test suite: %w", err)
	}
	t.suite = s

	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	t.resend.Reset()
	t.resend.SetResponse(-1, http.MethodPost, "/emails", http.StatusOK, map[string]any{"id": "email_mock"})
	t.clock.Reset()
	return nil
}
