package controllers

import (
	"testing"

	"elearn/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkEnrollPartialIsolation(t *testing.T) {
	db := setupTestDb(t)
	course := seedCourse(t, db, "CS201")
	a := seedStudent(t, db, "bulk_a")
	b := seedStudent(t, db, "bulk_b")
	c := seedStudent(t, db, "bulk_c")

	// b is already enrolled; their failure must not stop a and c.
	_, err := CreateEnrollment(db, CreateEnrollmentInput{UserID: b.ID, CourseID: course.ID})
	require.NoError(t, err)

	result, err := BulkEnrollUsers(db, course.ID, []uint{a.ID, b.ID, c.ID})
	require.NoError(t, err)
	assert.NotEmpty(t, result.BatchID)

	require.Len(t, result.Successful, 2)
	assert.Equal(t, a.ID, result.Successful[0].UserID)
	assert.Equal(t, c.ID, result.Successful[1].UserID)
	assert.NotZero(t, result.Successful[0].EnrollmentID)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, b.ID, result.Failed[0].UserID)
	assert.Equal(t, "Already enrolled", result.Failed[0].Reason)

	var count int64
	db.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&count)
	assert.EqualValues(t, 3, count)
}

func TestBulkEnrollIdempotence(t *testing.T) {
	db := setupTestDb(t)
	course := seedCourse(t, db, "CS202")
	a := seedStudent(t, db, "idem_a")
	b := seedStudent(t, db, "idem_b")
	batch := []uint{a.ID, b.ID}

	first, err := BulkEnrollUsers(db, course.ID, batch)
	require.NoError(t, err)
	require.Len(t, first.Successful, 2)

	// Re-running the same batch creates nothing and fails every item.
	second, err := BulkEnrollUsers(db, course.ID, batch)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrBulkAllFailed)
	assert.Empty(t, second.Successful)
	require.Len(t, second.Failed, 2)
	for _, f := range second.Failed {
		assert.Equal(t, "Already enrolled", f.Reason)
	}

	var count int64
	db.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestBulkEnrollAllFailedRollsBack(t *testing.T) {
	db := setupTestDb(t)
	course := seedCourse(t, db, "CS203")

	// Only unknown users: every item fails, so the unit must roll back.
	result, err := BulkEnrollUsers(db, course.ID, []uint{777, 778})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrBulkAllFailed)
	assert.Empty(t, result.Successful)
	require.Len(t, result.Failed, 2)
	assert.Equal(t, "User not found", result.Failed[0].Reason)

	var count int64
	db.Model(&models.Enrollment{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestBulkEnrollUnknownUserIsolated(t *testing.T) {
	db := setupTestDb(t)
	course := seedCourse(t, db, "CS204")
	a := seedStudent(t, db, "iso_a")

	result, err := BulkEnrollUsers(db, course.ID, []uint{999, a.ID})
	require.NoError(t, err)
	require.Len(t, result.Successful, 1)
	assert.Equal(t, a.ID, result.Successful[0].UserID)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, uint(999), result.Failed[0].UserID)
	assert.Equal(t, "User not found", result.Failed[0].Reason)
}

func TestBulkEnrollDuplicateWithinBatch(t *testing.T) {
	db := setupTestDb(t)
	course := seedCourse(t, db, "CS205")
	a := seedStudent(t, db, "twice_a")

	// The second occurrence must observe the first one's insert within the
	// same transaction.
	result, err := BulkEnrollUsers(db, course.ID, []uint{a.ID, a.ID})
	require.NoError(t, err)
	require.Len(t, result.Successful, 1)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "Already enrolled", result.Failed[0].Reason)

	var count int64
	db.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestBulkEnrollValidation(t *testing.T) {
	db := setupTestDb(t)
	course := seedCourse(t, db, "CS206")
	a := seedStudent(t, db, "val_a")

	_, err := BulkEnrollUsers(db, course.ID, nil)
	assert.ErrorIs(t, err, models.ErrEmptyBulkRequest)

	_, err = BulkEnrollUsers(db, 4242, []uint{a.ID})
	assert.ErrorIs(t, err, models.ErrCourseNotFound)
}
