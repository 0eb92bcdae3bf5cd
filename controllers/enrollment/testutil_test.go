package controllers

import (
	"testing"

	"elearn/config"
	"elearn/database"
	"elearn/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDb opens an isolated in-memory database, runs migrations and
// installs it as the global handle used by the handlers.
func setupTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	if config.AppConfig == nil {
		config.LoadConfig()
	}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))
	database.Database = database.DbInstance{Db: db}
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Password: "x", Role: models.RoleStudent, Email: username + "@test.local"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, number string) models.Course {
	t.Helper()
	course := models.Course{Name: "Course " + number, Number: number, Term: "2026 FA", Credits: 4}
	require.NoError(t, db.Create(&course).Error)
	return course
}
