package database

import (
	"testing"

	"elearn/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, RunMigrations(db))
	return db
}

func TestWithTransactionCommit(t *testing.T) {
	db := openTestDb(t)

	err := WithTransaction(db, func(tx *gorm.DB) error {
		user := models.User{Username: "tx_user", Password: "x", Role: models.RoleStudent}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		course := models.Course{Name: "Transactions", Number: "TRX101", Term: "2026 FA", Credits: 3}
		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		enrollment := models.Enrollment{UserID: user.ID, CourseID: course.ID}
		return tx.Create(&enrollment).Error
	})
	require.NoError(t, err)

	var userCount, courseCount, enrollmentCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Course{}).Count(&courseCount)
	db.Model(&models.Enrollment{}).Count(&enrollmentCount)
	assert.EqualValues(t, 1, userCount)
	assert.EqualValues(t, 1, courseCount)
	assert.EqualValues(t, 1, enrollmentCount)
}

func TestWithTransactionRollback(t *testing.T) {
	db := openTestDb(t)

	err := WithTransaction(db, func(tx *gorm.DB) error {
		user := models.User{Username: "rollback_user", Password: "x", Role: models.RoleStudent}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		course := models.Course{Name: "Rollback", Number: "TRX102", Term: "2026 FA", Credits: 3}
		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		// Invalid status fails the save hook mid-unit.
		enrollment := models.Enrollment{UserID: user.ID, CourseID: course.ID, Status: "INVALID_STATUS"}
		return tx.Create(&enrollment).Error
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidEnrollmentStatus)
	assert.Contains(t, err.Error(), "transaction failed")

	// Nothing written inside the unit survives.
	var userCount, courseCount, enrollmentCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Course{}).Count(&courseCount)
	db.Model(&models.Enrollment{}).Count(&enrollmentCount)
	assert.EqualValues(t, 0, userCount)
	assert.EqualValues(t, 0, courseCount)
	assert.EqualValues(t, 0, enrollmentCount)
}

func TestWithTransactionUniqueIndexBackstop(t *testing.T) {
	db := openTestDb(t)

	user := models.User{Username: "dup_user", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&user).Error)
	course := models.Course{Name: "Backstop", Number: "TRX103", Term: "2026 FA", Credits: 3}
	require.NoError(t, db.Create(&course).Error)

	require.NoError(t, db.Create(&models.Enrollment{UserID: user.ID, CourseID: course.ID}).Error)

	// A second insert for the same pair trips the composite unique index
	// even when the existence check is skipped.
	err := WithTransaction(db, func(tx *gorm.DB) error {
		return tx.Create(&models.Enrollment{UserID: user.ID, CourseID: course.ID}).Error
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	db.Model(&models.Enrollment{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
