package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"liyu1981.xyz/dialog-service/pkg/common"
	"liyu1981.xyz/dialog-service/pkg/models"
)

func TestUseDialector(t *testing.T) {
	d, ok := UseDialector("memory", "")
	require.True(t, ok)
	assert.Equal(t, "sqlite", d.Name())

	_, ok = UseDialector("file", "x.db")
	assert.True(t, ok)

	_, ok = UseDialector("postgres", "")
	assert.False(t, ok)
}

func TestFileDialectorWithEnvPath(t *testing.T) {
	common.SetTestLoggerNop()

	if os.Getenv(common.EnvKeyRunIntegrationTests) != "true" {
		t.Skip("Skipping integration test: RUN_INTEGRATION_TESTS environment variable not set")
	}

	testPath := filepath.Join(t.TempDir(), "test.db")
	t.Setenv(common.EnvKeyDialogDbPath, testPath)

	// a private connection, the singleton may already hold the memory db
	conn, err := gorm.Open(UseSqliteDialector(), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.ConditionRecord{}))

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	_, err = os.Stat(testPath)
	assert.NoError(t, err, "expected database file at %s", testPath)
}
