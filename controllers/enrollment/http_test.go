package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"elearn/config"
	controllers "elearn/controllers/enrollment"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	"elearn/routers/enrollmentRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	if config.AppConfig == nil {
		config.LoadConfig()
	}

	db, err := gorm.Open(sqlite.Open("file:http_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.RunMigrations(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()
	user := models.User{Username: username, Password: "x", Role: role, Email: username + "@test.local"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Username, user.Role, user.Email)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	payload := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp, payload
}

func TestStudentListScopedToSelf(t *testing.T) {
	app, db := setupApp(t)
	alice := seedUser(t, db, "alice", models.RoleStudent)
	bob := seedUser(t, db, "bob", models.RoleStudent)
	course := models.Course{Name: "Scoping", Number: "HTTP101", Term: "2026 FA", Credits: 3}
	require.NoError(t, db.Create(&course).Error)

	_, err := controllers.CreateEnrollment(db, controllers.CreateEnrollmentInput{UserID: alice.ID, CourseID: course.ID})
	require.NoError(t, err)
	_, err = controllers.CreateEnrollment(db, controllers.CreateEnrollmentInput{UserID: bob.ID, CourseID: course.ID})
	require.NoError(t, err)

	resp, payload := doRequest(t, app, http.MethodGet, "/api/enrollments/", tokenFor(t, alice), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	items := payload["data"].([]interface{})
	require.Len(t, items, 1)
	record := items[0].(map[string]interface{})
	assert.EqualValues(t, alice.ID, record["user_id"])
}

func TestFacultySeesAllReadOnly(t *testing.T) {
	app, db := setupApp(t)
	faculty := seedUser(t, db, "prof", models.RoleFaculty)
	alice := seedUser(t, db, "alice2", models.RoleStudent)
	course := models.Course{Name: "Visibility", Number: "HTTP102", Term: "2026 FA", Credits: 3}
	require.NoError(t, db.Create(&course).Error)

	_, err := controllers.CreateEnrollment(db, controllers.CreateEnrollmentInput{UserID: alice.ID, CourseID: course.ID})
	require.NoError(t, err)

	resp, payload := doRequest(t, app, http.MethodGet, "/api/enrollments/", tokenFor(t, faculty), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, payload["data"].([]interface{}), 1)

	// Faculty gets visibility but not control.
	resp, _ = doRequest(t, app, http.MethodPost, "/api/enrollments/", tokenFor(t, faculty), fiber.Map{
		"user": alice.ID, "course": course.ID,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPut, "/api/enrollments/1", tokenFor(t, faculty), fiber.Map{
		"status": "COMPLETED",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodDelete, "/api/enrollments/1", tokenFor(t, faculty), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestStudentCannotReadOthersEnrollment(t *testing.T) {
	app, db := setupApp(t)
	alice := seedUser(t, db, "alice3", models.RoleStudent)
	bob := seedUser(t, db, "bob3", models.RoleStudent)
	course := models.Course{Name: "Ownership", Number: "HTTP103", Term: "2026 FA", Credits: 3}
	require.NoError(t, db.Create(&course).Error)

	bobEnrollment, err := controllers.CreateEnrollment(db, controllers.CreateEnrollmentInput{UserID: bob.ID, CourseID: course.ID})
	require.NoError(t, err)

	// Ownership mismatch is an explicit denial, not a not-found.
	resp, payload := doRequest(t, app, http.MethodGet,
		fmt.Sprintf("/api/enrollments/%d", bobEnrollment.ID), tokenFor(t, alice), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Nil(t, payload["data"])

	resp, _ = doRequest(t, app, http.MethodGet,
		fmt.Sprintf("/api/enrollments/%d", bobEnrollment.ID), tokenFor(t, bob), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminCreateAndDuplicate(t *testing.T) {
	app, db := setupApp(t)
	admin := seedUser(t, db, "root", models.RoleAdmin)
	alice := seedUser(t, db, "alice4", models.RoleStudent)
	course := models.Course{Name: "Admin", Number: "HTTP104", Term: "2026 FA", Credits: 3}
	require.NoError(t, db.Create(&course).Error)

	body := fiber.Map{"user": alice.ID, "course": course.ID}

	resp, payload := doRequest(t, app, http.MethodPost, "/api/enrollments/", tokenFor(t, admin), body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	record := payload["data"].(map[string]interface{})
	assert.EqualValues(t, alice.ID, record["user_id"])
	assert.Equal(t, "ACTIVE", record["status"])

	// Second create for the same pair is a domain failure with rollback.
	resp, payload = doRequest(t, app, http.MethodPost, "/api/enrollments/", tokenFor(t, admin), body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, true, payload["transactionFailed"])
}

func TestBulkEnrollEndpoint(t *testing.T) {
	app, db := setupApp(t)
	admin := seedUser(t, db, "root2", models.RoleAdmin)
	alice := seedUser(t, db, "alice5", models.RoleStudent)
	bob := seedUser(t, db, "bob5", models.RoleStudent)
	course := models.Course{Name: "Bulk", Number: "HTTP105", Term: "2026 FA", Credits: 3}
	require.NoError(t, db.Create(&course).Error)

	path := fmt.Sprintf("/api/courses/%d/bulk-enroll", course.ID)

	resp, _ := doRequest(t, app, http.MethodPost, path, tokenFor(t, admin), fiber.Map{"userIds": []uint{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, payload := doRequest(t, app, http.MethodPost, path, tokenFor(t, admin), fiber.Map{
		"userIds": []uint{alice.ID, bob.ID},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	results := payload["data"].(map[string]interface{})["results"].(map[string]interface{})
	assert.Len(t, results["successful"].([]interface{}), 2)
	assert.Empty(t, results["failed"].([]interface{}))

	// Everyone already enrolled: aggregate all-failed rule fires.
	resp, payload = doRequest(t, app, http.MethodPost, path, tokenFor(t, admin), fiber.Map{
		"userIds": []uint{alice.ID, bob.ID},
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, true, payload["transactionFailed"])
}

func TestUnauthenticatedDenied(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := doRequest(t, app, http.MethodGet, "/api/enrollments/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/enrollments/", "", fiber.Map{"user": 1, "course": 1})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCheckEnrollmentEndpoint(t *testing.T) {
	app, db := setupApp(t)
	alice := seedUser(t, db, "alice6", models.RoleStudent)
	course := models.Course{Name: "Check", Number: "HTTP106", Term: "2026 FA", Credits: 3}
	require.NoError(t, db.Create(&course).Error)

	path := fmt.Sprintf("/api/users/%d/courses/%d/enrollment", alice.ID, course.ID)

	resp, payload := doRequest(t, app, http.MethodGet, path, tokenFor(t, alice), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, payload["data"].(map[string]interface{})["isEnrolled"])

	_, err := controllers.CreateEnrollment(db, controllers.CreateEnrollmentInput{UserID: alice.ID, CourseID: course.ID})
	require.NoError(t, err)

	resp, payload = doRequest(t, app, http.MethodGet, path, tokenFor(t, alice), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["data"].(map[string]interface{})["isEnrolled"])
}
