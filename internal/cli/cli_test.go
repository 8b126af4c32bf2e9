package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/httpsniic/sistema-cmc-server/config"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/adapters"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/persistence"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func staticOpener(db *gorm.DB) Opener {
	return func(context.Context) (*gorm.DB, func(), error) {
		return db, func() {}, nil
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Metrics: config.MetricsConfig{CostTargetPercent: decimal.NewFromInt(30)},
	}
}

func run(t *testing.T, db *gorm.DB, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCmd(testConfig(), staticOpener(db))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrate_SeedsStoresAndMaster(t *testing.T) {
	db := newTestDB(t)

	out, err := run(t, db, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "7 lojas")
	assert.Contains(t, out, "Usuário master criado")

	var stores int64
	require.NoError(t, db.Model(&model.StoreModel{}).Count(&stores).Error)
	assert.EqualValues(t, 7, stores)

	// A second run keeps the existing master untouched.
	out, err = run(t, db, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Usuário master já existe")
	require.NoError(t, db.Model(&model.StoreModel{}).Count(&stores).Error)
	assert.EqualValues(t, 7, stores)
}

func TestResetMaster(t *testing.T) {
	db := newTestDB(t)
	_, err := run(t, db, "migrate")
	require.NoError(t, err)

	users := persistence.NewUserRepository(db)
	passwords := adapters.NewPasswordService()

	tests := []struct {
		name     string
		args     []string
		password string
	}{
		{name: "default password", args: []string{"reset-master"}, password: "123456"},
		{name: "explicit password", args: []string{"reset-master", "nova-senha-forte"}, password: "nova-senha-forte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, db, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, "Senha do usuário master redefinida")

			master, err := users.FindByUsername(context.Background(), entity.MasterUsername)
			require.NoError(t, err)
			assert.NoError(t, passwords.VerifyPassword(master.PasswordHash, tt.password))
		})
	}
}

func TestResetMaster_TooManyArgs(t *testing.T) {
	_, err := run(t, newTestDB(t), "reset-master", "a", "b")
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	db := newTestDB(t)
	_, err := run(t, db, "migrate")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, persistence.NewGroupRepository(db).Create(ctx,
		entity.NewGroup("paris6", "Carnes", "#e53935", nil, "")))

	period, err := entity.NewPeriod(3, 2025)
	require.NoError(t, err)
	records := []*entity.DailyRecord{
		{
			StoreID:        "paris6",
			Date:           time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			WeekdayLabel:   "Seg",
			Revenue:        decimal.NewFromInt(1000),
			PurchaseAmount: decimal.NewFromInt(300),
			GroupTag:       "Carnes",
		},
		{
			StoreID:      "paris6",
			Date:         time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
			WeekdayLabel: "Ter",
			Revenue:      decimal.NewFromInt(1000),
		},
	}
	require.NoError(t, persistence.NewRecordRepository(db).SaveAll(ctx, "paris6", period, records))

	out, err := run(t, db, "report", "--store", "paris6", "--period", "3-2025")
	require.NoError(t, err)

	assert.Contains(t, out, "Paris6 (paris6)")
	assert.Contains(t, out, "R$\u00a02.000,00")
	assert.Contains(t, out, "15.00%")
	assert.Contains(t, out, "Carnes")
	assert.Contains(t, out, "03/03/2025")
	assert.Contains(t, out, "04/03/2025")
}

func TestReport_Errors(t *testing.T) {
	db := newTestDB(t)
	_, err := run(t, db, "migrate")
	require.NoError(t, err)

	_, err = run(t, db, "report", "--store", "unknown", "--period", "3-2025")
	assert.ErrorIs(t, err, domainerror.ErrStoreNotFound)

	_, err = run(t, db, "report", "--store", "paris6", "--period", "13-2025")
	assert.Error(t, err)

	_, err = run(t, db, "report", "--store", "paris6")
	assert.Error(t, err, "period flag is required")
}
