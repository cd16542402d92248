package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

func newLogger(t *testing.T) *Logger {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(&models.AuditLog{}))
	return New(gdb)
}

func TestLogger_WritesAndFilters(t *testing.T) {
	l := newLogger(t)
	ctx := context.Background()

	require.NoError(t, l.Log(Event{
		MerchantID: 1, UserID: Uint(4), ActorRole: "merchant",
		Action: "booking_cancelled", Entity: "booking", EntityID: Uint(9),
		Metadata: map[string]any{"from": "pending"},
	}))
	require.NoError(t, l.Log(Event{MerchantID: 1, ActorRole: "provider", Action: "payment_completed", Entity: "booking"}))
	require.NoError(t, l.Log(Event{MerchantID: 2, Action: "booking_created"}))

	logs, total, err := l.List(ctx, Filter{MerchantID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, logs, 2)

	logs, total, err = l.List(ctx, Filter{MerchantID: 1, Action: "booking_cancelled"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "merchant", logs[0].ActorRole)
	assert.JSONEq(t, `{"from":"pending"}`, logs[0].Metadata)
	require.NotNil(t, logs[0].EntityID)
	assert.Equal(t, uint(9), *logs[0].EntityID)

	logs, _, err = l.List(ctx, Filter{MerchantID: 1, Page: 2, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}
