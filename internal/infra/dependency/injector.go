// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/httpsniic/sistema-cmc-server/config"
	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/alert"
	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/auth"
	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/dashboard"
	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/goal"
	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/group"
	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/record"
	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/store"
	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/supplier"
	"github.com/httpsniic/sistema-cmc-server/internal/infra/server/router"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/adapters"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/cache"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/email"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/email/templates"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/entrypoint/controller"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/entrypoint/middleware"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/persistence"
)

// Options carries the optional collaborators of the injector.
type Options struct {
	// Cache defaults to a no-op cache.
	Cache adapter.MetricsCache
	// CacheHealth is nil when no cache server is configured.
	CacheHealth controller.HealthChecker
	// DBHealth defaults to pinging db.
	DBHealth controller.HealthChecker
	// EmailSender defaults to the Resend client, or logging without an API key.
	EmailSender adapter.EmailSender
}

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Router       *router.Router
	EmailWorker  *email.Worker
	CostAlerts   *alert.EvaluateCostAlertsUseCase
	MetricsCache adapter.MetricsCache
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	if opts.Cache == nil {
		opts.Cache = cache.NoopMetricsCache{}
	}
	if opts.DBHealth == nil {
		opts.DBHealth = func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		}
	}
	if opts.EmailSender == nil {
		opts.EmailSender = email.NewSender(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	recordRepo := persistence.NewRecordRepository(db)
	groupRepo := persistence.NewGroupRepository(db)
	supplierRepo := persistence.NewSupplierRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry, tokenRepo)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	emailWorker := email.NewWorker(emailQueueRepo, opts.EmailSender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Create auth use cases
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	currentUserUseCase := auth.NewGetCurrentUserUseCase(userRepo)

	// Create record use cases
	locks := record.NewPeriodLocks()
	listRecordsUseCase := record.NewListRecordsUseCase(recordRepo)
	addPurchaseUseCase := record.NewAddPurchaseUseCase(recordRepo, opts.Cache, locks)
	removePurchaseUseCase := record.NewRemovePurchaseUseCase(recordRepo, opts.Cache, locks)
	setRevenueUseCase := record.NewSetRevenueUseCase(recordRepo, opts.Cache, locks)

	// Group writes of one store share a lock
	groupLocks := group.NewStoreLocks()

	// Create dashboard use cases
	dashboardUseCase := dashboard.NewGetDashboardUseCase(recordRepo, groupRepo, goalRepo, opts.Cache, cfg.Metrics.CostTargetPercent)
	groupAnalysisUseCase := dashboard.NewGetGroupAnalysisUseCase(recordRepo, groupRepo)
	supplierAnalysisUseCase := dashboard.NewGetSupplierAnalysisUseCase(recordRepo, supplierRepo)
	costAlertsUseCase := alert.NewEvaluateCostAlertsUseCase(dashboardUseCase, emailService, cfg.Alerts.Recipient)

	// Create controllers
	controllers := router.Controllers{
		Health: controller.NewHealthController(opts.DBHealth, opts.CacheHealth),
		Auth: controller.NewAuthController(
			loginUseCase,
			refreshTokenUseCase,
			logoutUseCase,
			currentUserUseCase,
			store.NewListStoresUseCase(),
		),
		Record: controller.NewRecordController(
			listRecordsUseCase,
			addPurchaseUseCase,
			removePurchaseUseCase,
			setRevenueUseCase,
		),
		Dashboard: controller.NewDashboardController(
			dashboardUseCase,
			groupAnalysisUseCase,
			supplierAnalysisUseCase,
		),
		Group: controller.NewGroupController(
			group.NewListGroupsUseCase(groupRepo),
			group.NewCreateGroupUseCase(groupRepo, opts.Cache, groupLocks),
			group.NewReplaceGroupsUseCase(groupRepo, opts.Cache, groupLocks),
			group.NewDeleteGroupUseCase(groupRepo, recordRepo, opts.Cache, groupLocks),
		),
		Supplier: controller.NewSupplierController(
			supplier.NewListSuppliersUseCase(supplierRepo),
			supplier.NewCreateSupplierUseCase(supplierRepo),
			supplier.NewDeleteSupplierUseCase(supplierRepo),
		),
		Goal: controller.NewGoalController(
			goal.NewListGoalsUseCase(goalRepo),
			goal.NewCreateGoalUseCase(goalRepo, opts.Cache),
			goal.NewDeleteGoalUseCase(goalRepo, opts.Cache),
		),
		Alert: controller.NewAlertController(costAlertsUseCase),
	}

	// Create middleware
	// Login limiting is off under test so scenarios can log in repeatedly
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.IsTest() {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(0, time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(controllers, loginRateLimiter, authMiddleware)

	return &Injector{
		Config:       cfg,
		DB:           db,
		Router:       r,
		EmailWorker:  emailWorker,
		CostAlerts:   costAlertsUseCase,
		MetricsCache: opts.Cache,
	}, nil
}
