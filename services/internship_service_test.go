package services

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/internadmin/internship-api/database"
	"github.com/internadmin/internship-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBuildInternshipView_Active(t *testing.T) {
	now := date(2024, time.February, 1)
	internship := &model.Internship{
		ID:        uuid.New(),
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.March, 1),
		Status:    model.StatusActive,
	}

	view := BuildInternshipView(internship, now)

	require.NotNil(t, view.Progress)
	require.NotNil(t, view.DaysLeft)
	assert.Equal(t, 52, *view.Progress)
	assert.Equal(t, 29, *view.DaysLeft)
	assert.False(t, view.IsOverdue)
	assert.False(t, view.CanDownloadCertificate)
	assert.Equal(t, "2 months", view.Duration)
}

func TestBuildInternshipView_Completed(t *testing.T) {
	internship := &model.Internship{
		ID:        uuid.New(),
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.March, 1),
		Status:    model.StatusCompleted,
	}

	view := BuildInternshipView(internship, date(2024, time.April, 1))

	assert.Nil(t, view.Progress)
	assert.Nil(t, view.DaysLeft)
	assert.False(t, view.IsOverdue)
	assert.True(t, view.CanDownloadCertificate)
	assert.Equal(t, "2 months", view.Duration)
}

func TestBuildInternshipView_ActiveOverdue(t *testing.T) {
	internship := &model.Internship{
		ID:        uuid.New(),
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.February, 1),
		Status:    model.StatusActive,
	}

	view := BuildInternshipView(internship, date(2024, time.February, 10))

	require.NotNil(t, view.Progress)
	require.NotNil(t, view.DaysLeft)
	assert.Equal(t, 100, *view.Progress)
	assert.Equal(t, 0, *view.DaysLeft)
	assert.True(t, view.IsOverdue)
}

// ====================================================================
// Integration tests (require a running Postgres; see RUN_INTEGRATION_TESTS)
// ====================================================================

type lifecycleTestContext struct {
	db          *gorm.DB
	internships *InternshipService
	remarks     *RemarkService
	user        *model.User
	otherUser   *model.User
}

func setupLifecycleTestEnvironment(t *testing.T) *lifecycleTestContext {
	t.Helper()

	store, err := database.StartGORM()
	require.NoError(t, err, "Failed to connect to database")
	require.NoError(t, store.Init(), "Failed to run migrations")

	db := store.GetDB().(*gorm.DB)

	// Email deliberately unconfigured: sends fail fast and land in
	// notification_logs as failed attempts.
	email := &EmailService{}
	notifier := NewNotifier(db, email, "admin@example.com")

	ctx := &lifecycleTestContext{
		db:          db,
		internships: NewInternshipService(db, notifier, NewRasterizer(""), nil),
		remarks:     NewRemarkService(db, notifier),
	}

	suffix := uuid.New().String()[:8]
	ctx.user = &model.User{
		Email:        fmt.Sprintf("intern-%s@test.local", suffix),
		PasswordHash: "x",
		Name:         "Test Intern",
		Role:         model.RoleUser,
	}
	ctx.otherUser = &model.User{
		Email:        fmt.Sprintf("other-%s@test.local", suffix),
		PasswordHash: "x",
		Name:         "Other Intern",
		Role:         model.RoleUser,
	}
	require.NoError(t, db.Create(ctx.user).Error)
	require.NoError(t, db.Create(ctx.otherUser).Error)

	t.Cleanup(func() {
		db.Where("user_id IN ?", []uuid.UUID{ctx.user.ID, ctx.otherUser.ID}).
			Delete(&model.Internship{})
		db.Delete(ctx.user)
		db.Delete(ctx.otherUser)
		store.Close()
	})

	return ctx
}

func (c *lifecycleTestContext) createActive(t *testing.T) *model.Internship {
	t.Helper()

	internship, err := c.internships.Create(context.Background(), CreateInternshipInput{
		UserID:    c.user.ID,
		Title:     "Integration Test Internship",
		Role:      "Tester",
		StartDate: time.Now().AddDate(0, -1, 0),
		EndDate:   time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	return internship
}

func TestInternshipService_CreateValidation(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run.")
	}

	testCtx := setupLifecycleTestEnvironment(t)
	ctx := context.Background()

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := testCtx.internships.Create(ctx, CreateInternshipInput{
			UserID:    uuid.New(),
			Title:     "Ghost",
			Role:      "Tester",
			StartDate: time.Now(),
			EndDate:   time.Now().AddDate(0, 1, 0),
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("InvalidRange", func(t *testing.T) {
		start := time.Now()
		_, err := testCtx.internships.Create(ctx, CreateInternshipInput{
			UserID:    testCtx.user.ID,
			Title:     "Backwards",
			Role:      "Tester",
			StartDate: start,
			EndDate:   start,
		})
		assert.ErrorIs(t, err, ErrInvalidRange)

		// Nothing was persisted for the failed create
		var count int64
		testCtx.db.Model(&model.Internship{}).
			Where("user_id = ?", testCtx.user.ID).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("DefaultsToActive", func(t *testing.T) {
		internship := testCtx.createActive(t)
		assert.Equal(t, model.StatusActive, internship.Status)
	})
}

func TestInternshipService_UpdateValidation(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run.")
	}

	testCtx := setupLifecycleTestEnvironment(t)
	ctx := context.Background()
	internship := testCtx.createActive(t)

	t.Run("InvalidRangeLeavesRecordUnchanged", func(t *testing.T) {
		newStart := internship.EndDate.AddDate(0, 1, 0)
		newEnd := newStart
		_, err := testCtx.internships.Update(ctx, internship.ID, UpdateInternshipInput{
			StartDate: &newStart,
			EndDate:   &newEnd,
		})
		assert.ErrorIs(t, err, ErrInvalidRange)

		// The rejected patch must not have touched the stored dates
		var stored model.Internship
		require.NoError(t, testCtx.db.First(&stored, "id = ?", internship.ID).Error)
		assert.WithinDuration(t, internship.StartDate, stored.StartDate, time.Second)
		assert.WithinDuration(t, internship.EndDate, stored.EndDate, time.Second)
	})

	t.Run("BothDatesValid", func(t *testing.T) {
		newStart := internship.StartDate.AddDate(0, 0, 7)
		newEnd := internship.EndDate.AddDate(0, 0, 7)
		updated, err := testCtx.internships.Update(ctx, internship.ID, UpdateInternshipInput{
			StartDate: &newStart,
			EndDate:   &newEnd,
		})
		require.NoError(t, err)
		assert.WithinDuration(t, newStart, updated.StartDate, time.Second)
		assert.WithinDuration(t, newEnd, updated.EndDate, time.Second)
	})
}

func TestInternshipService_CompletionTrigger(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run.")
	}

	testCtx := setupLifecycleTestEnvironment(t)
	ctx := context.Background()
	internship := testCtx.createActive(t)

	completionLogs := func() int64 {
		var count int64
		testCtx.db.Model(&model.NotificationLog{}).
			Where("kind = ? AND metadata->>'internship_id' = ?",
				model.NotifyCompletion, internship.ID.String()).
			Count(&count)
		return count
	}

	completed := model.StatusCompleted
	_, err := testCtx.internships.Update(ctx, internship.ID, UpdateInternshipInput{
		Status: &completed,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, completionLogs())

	// Re-saving an already completed internship must not fire again
	newTitle := "Renamed After Completion"
	_, err = testCtx.internships.Update(ctx, internship.ID, UpdateInternshipInput{
		Title:  &newTitle,
		Status: &completed,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, completionLogs())

	// Regressing to ACTIVE and completing again is a new transition
	active := model.StatusActive
	_, err = testCtx.internships.Update(ctx, internship.ID, UpdateInternshipInput{Status: &active})
	require.NoError(t, err)
	_, err = testCtx.internships.Update(ctx, internship.ID, UpdateInternshipInput{Status: &completed})
	require.NoError(t, err)
	assert.EqualValues(t, 2, completionLogs())
}

func TestInternshipService_Eligibility(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run.")
	}

	testCtx := setupLifecycleTestEnvironment(t)
	ctx := context.Background()
	internship := testCtx.createActive(t)

	t.Run("ActiveNotEligible", func(t *testing.T) {
		result, err := testCtx.internships.Eligibility(ctx, testCtx.user.ID, internship.ID)
		require.NoError(t, err)
		assert.False(t, result.CanDownload)
		assert.NotEmpty(t, result.Reason)
	})

	t.Run("ForeignInternshipNotEligible", func(t *testing.T) {
		result, err := testCtx.internships.Eligibility(ctx, testCtx.otherUser.ID, internship.ID)
		require.NoError(t, err)
		assert.False(t, result.CanDownload)
	})

	t.Run("MissingInternshipNotEligible", func(t *testing.T) {
		result, err := testCtx.internships.Eligibility(ctx, testCtx.user.ID, uuid.New())
		require.NoError(t, err)
		assert.False(t, result.CanDownload)
	})

	t.Run("CompletedEligible", func(t *testing.T) {
		completed := model.StatusCompleted
		_, err := testCtx.internships.Update(ctx, internship.ID, UpdateInternshipInput{Status: &completed})
		require.NoError(t, err)

		result, err := testCtx.internships.Eligibility(ctx, testCtx.user.ID, internship.ID)
		require.NoError(t, err)
		assert.True(t, result.CanDownload)
		assert.Empty(t, result.Reason)
	})
}

func TestInternshipService_Dashboard(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run.")
	}

	testCtx := setupLifecycleTestEnvironment(t)
	ctx := context.Background()

	first := testCtx.createActive(t)
	testCtx.createActive(t)

	completed := model.StatusCompleted
	_, err := testCtx.internships.Update(ctx, first.ID, UpdateInternshipInput{Status: &completed})
	require.NoError(t, err)

	stats, err := testCtx.internships.Dashboard(ctx, testCtx.user.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 0, stats.Cancelled)
	assert.Len(t, stats.RecentActivity, 2)
}
