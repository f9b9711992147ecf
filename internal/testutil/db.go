// Package testutil provides the in-memory database used by service tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/umutcano/staffhub-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens an isolated in-memory SQLite database with the shared models
// migrated, plus any extra models the test needs.
func NewDB(t *testing.T, extra ...interface{}) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	shared := []interface{}{
		&models.Credential{},
		&models.LoginAttempt{},
		&models.Account{},
		&models.RefreshToken{},
		&models.Employee{},
		&models.Manager{},
		&models.SystemLog{},
	}
	if err := db.AutoMigrate(append(shared, extra...)...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
