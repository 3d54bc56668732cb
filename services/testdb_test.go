package services

import (
	"testing"
	"time"

	"hotel-booking-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database pinned to a single
// connection so every query sees the same schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Room{},
		&models.Booking{},
		&models.Role{},
		&models.User{},
	))
	return db
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func createRoom(t *testing.T, db *gorm.DB, roomType string, price float64) models.Room {
	t.Helper()
	room := models.Room{RoomType: roomType, RoomPrice: price}
	require.NoError(t, db.Create(&room).Error)
	return room
}
