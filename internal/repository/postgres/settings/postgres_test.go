package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	settingsdomain "cepip-app-go/internal/domain/settings"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&settingsdomain.Settings{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func TestLoadEmpty(t *testing.T) {
	repo := NewPostgres(setupTestDB(t))

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, settingsdomain.ErrSettingsNotFound)
}

func TestSaveUpsertsSingleRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgres(db)
	ctx := context.Background()

	first := settingsdomain.Defaults()
	first.UpdatedAt = time.Date(2024, 1, 20, 10, 30, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, &first))

	second := settingsdomain.Defaults()
	second.Theme = settingsdomain.ThemeDark
	second.RecordsPerPage = 50
	require.NoError(t, repo.Save(ctx, &second))

	var rows int64
	require.NoError(t, db.Model(&settingsdomain.Settings{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, settingsdomain.ThemeDark, loaded.Theme)
	assert.Equal(t, 50, loaded.RecordsPerPage)
	assert.Equal(t, "CEPIP", loaded.AppName)
}

func TestServiceRoundTrip(t *testing.T) {
	svc := settingsdomain.NewService(NewPostgres(setupTestDB(t)))
	ctx := context.Background()

	name := "CEPIP Admin"
	_, err := svc.Update(ctx, settingsdomain.UpdateInput{AppName: &name})
	require.NoError(t, err)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CEPIP Admin", got.AppName)
	assert.True(t, got.Notifications)
}
