package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/AykutYamak/MyGuestRooms/internal/config"
	"github.com/AykutYamak/MyGuestRooms/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformBackup(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "source.db")
	backupDir := filepath.Join(tempDir, "backups")

	logger := zerolog.Nop()
	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	require.NoError(t, db.CreateRoom(context.Background(), &models.Room{RoomNumber: "101", Capacity: 2}))
	require.NoError(t, db.Close())

	svc := NewBackupService(dbPath, config.BackupConfig{
		Enabled:     true,
		StoragePath: backupDir,
	}, &logger)

	require.NoError(t, svc.PerformBackup())

	files, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0].Name(), "backup_")

	// The snapshot opens as a valid database with the data intact.
	backup, err := NewDB(filepath.Join(backupDir, files[0].Name()), &logger)
	require.NoError(t, err)
	defer backup.Close()

	room, err := backup.GetRoomByNumber(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, "101", room.RoomNumber)
}

func TestCleanupOldBackups_RespectsRetention(t *testing.T) {
	tempDir := t.TempDir()
	logger := zerolog.Nop()

	svc := NewBackupService("unused.db", config.BackupConfig{
		StoragePath:   tempDir,
		RetentionDays: 7,
	}, &logger)

	// A fresh file is inside the retention window and must survive.
	fresh := filepath.Join(tempDir, "backup_fresh.db")
	require.NoError(t, os.WriteFile(fresh, []byte("data"), 0o644))

	svc.CleanupOldBackups()
	assert.FileExists(t, fresh)
}
