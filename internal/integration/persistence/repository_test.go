package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/persistence/model"
)

// newTestDB opens a private in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database alive and private.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func day(d int, month time.Month) time.Time {
	return time.Date(2025, month, d, 0, 0, 0, 0, time.UTC)
}

func newRecord(storeID string, date time.Time, revenue, purchase int64, groupTag string) *entity.DailyRecord {
	return &entity.DailyRecord{
		StoreID:        storeID,
		Date:           date,
		WeekdayLabel:   entity.WeekdayLabel(date),
		Revenue:        decimal.NewFromInt(revenue),
		PurchaseAmount: decimal.NewFromInt(purchase),
		GroupTag:       groupTag,
	}
}

func TestRecordRepository_SaveAllAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepository(newTestDB(t))
	march := entity.Period{Month: 3, Year: 2025}

	err := repo.SaveAll(ctx, "paris6", march, []*entity.DailyRecord{
		newRecord("paris6", day(10, time.March), 1000, 300, "Carnes"),
		newRecord("paris6", day(2, time.March), 500, 0, ""),
	})
	require.NoError(t, err)

	got, err := repo.Load(ctx, "paris6", march)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 2, got[0].Date.Day(), "records must come back in date order")
	assert.Equal(t, 10, got[1].Date.Day())
	assert.True(t, got[1].Revenue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, got[1].PurchaseAmount.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "Carnes", got[1].GroupTag)
	assert.Equal(t, "Seg", got[1].WeekdayLabel)
}

func TestRecordRepository_SaveAllReplacesPeriod(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepository(newTestDB(t))
	march := entity.Period{Month: 3, Year: 2025}
	april := entity.Period{Month: 4, Year: 2025}

	require.NoError(t, repo.SaveAll(ctx, "xian", march, []*entity.DailyRecord{
		newRecord("xian", day(1, time.March), 100, 10, ""),
		newRecord("xian", day(2, time.March), 100, 10, ""),
	}))
	require.NoError(t, repo.SaveAll(ctx, "xian", april, []*entity.DailyRecord{
		newRecord("xian", day(1, time.April), 100, 10, ""),
	}))
	require.NoError(t, repo.SaveAll(ctx, "paris6", march, []*entity.DailyRecord{
		newRecord("paris6", day(1, time.March), 100, 10, ""),
	}))

	require.NoError(t, repo.SaveAll(ctx, "xian", march, []*entity.DailyRecord{
		newRecord("xian", day(3, time.March), 200, 20, ""),
	}))

	got, err := repo.Load(ctx, "xian", march)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Date.Day())

	others, err := repo.Load(ctx, "xian", april)
	require.NoError(t, err)
	assert.Len(t, others, 1, "other periods must be untouched")

	otherStore, err := repo.Load(ctx, "paris6", march)
	require.NoError(t, err)
	assert.Len(t, otherStore, 1, "other stores must be untouched")
}

func TestRecordRepository_SaveAllRejectsForeignDates(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepository(newTestDB(t))
	march := entity.Period{Month: 3, Year: 2025}

	require.NoError(t, repo.SaveAll(ctx, "xian", march, []*entity.DailyRecord{
		newRecord("xian", day(1, time.March), 100, 10, ""),
	}))

	err := repo.SaveAll(ctx, "xian", march, []*entity.DailyRecord{
		newRecord("xian", day(5, time.March), 100, 10, ""),
		newRecord("xian", day(1, time.April), 100, 10, ""),
	})
	require.Error(t, err)

	got, err := repo.Load(ctx, "xian", march)
	require.NoError(t, err)
	require.Len(t, got, 1, "a rejected save must not change the period")
	assert.Equal(t, 1, got[0].Date.Day())
}

func TestRecordRepository_LoadEmptyPeriod(t *testing.T) {
	got, err := NewRecordRepository(newTestDB(t)).Load(context.Background(), "stella", entity.Period{Month: 1, Year: 2024})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecordRepository_CountByGroupTag(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepository(newTestDB(t))

	require.NoError(t, repo.SaveAll(ctx, "xian", entity.Period{Month: 3, Year: 2025}, []*entity.DailyRecord{
		newRecord("xian", day(1, time.March), 100, 10, "Carnes"),
		newRecord("xian", day(2, time.March), 100, 10, "Bebidas"),
	}))
	require.NoError(t, repo.SaveAll(ctx, "xian", entity.Period{Month: 4, Year: 2025}, []*entity.DailyRecord{
		newRecord("xian", day(1, time.April), 100, 10, "Carnes"),
	}))

	count, err := repo.CountByGroupTag(ctx, "xian", "Carnes")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByGroupTag(ctx, "paris6", "Carnes")
	require.NoError(t, err)
	assert.Zero(t, count)
}
