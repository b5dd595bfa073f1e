package services

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/internadmin/internship-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemarkService_RespondRejectsInvalidStatus(t *testing.T) {
	// Status is validated before any storage access, so no DB is needed
	svc := NewRemarkService(nil, nil)

	for _, status := range []string{model.RemarkPending, "ARCHIVED", ""} {
		_, err := svc.Respond(context.Background(), uuid.New(), "a response", status)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	}
}

func TestRemarkService_OwnershipBoundary(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run.")
	}

	testCtx := setupLifecycleTestEnvironment(t)
	ctx := context.Background()
	internship := testCtx.createActive(t)

	t.Run("ForeignInternshipRejected", func(t *testing.T) {
		_, err := testCtx.remarks.Create(ctx, testCtx.otherUser.ID, internship.ID,
			"Trying to comment on someone else's internship", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("MissingInternshipIndistinguishable", func(t *testing.T) {
		_, err := testCtx.remarks.Create(ctx, testCtx.user.ID, uuid.New(),
			"Internship that does not exist", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ForeignListRejected", func(t *testing.T) {
		_, err := testCtx.remarks.ListForInternship(ctx, testCtx.otherUser.ID, internship.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRemarkService_Workflow(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run.")
	}

	testCtx := setupLifecycleTestEnvironment(t)
	ctx := context.Background()
	internship := testCtx.createActive(t)

	remark, err := testCtx.remarks.Create(ctx, testCtx.user.ID, internship.ID,
		"Please extend the end date by two weeks", model.RequestExtension)
	require.NoError(t, err)
	assert.Equal(t, model.RemarkPending, remark.Status)
	assert.Equal(t, model.RequestExtension, remark.RequestType)

	t.Run("DefaultsToGeneral", func(t *testing.T) {
		general, err := testCtx.remarks.Create(ctx, testCtx.user.ID, internship.ID,
			"A remark with no explicit type", "")
		require.NoError(t, err)
		assert.Equal(t, model.RequestGeneral, general.RequestType)
	})

	t.Run("OwnerSeesNewestFirst", func(t *testing.T) {
		remarks, err := testCtx.remarks.ListForInternship(ctx, testCtx.user.ID, internship.ID)
		require.NoError(t, err)
		require.Len(t, remarks, 2)
		assert.Equal(t, "A remark with no explicit type", remarks[0].Message)
	})

	t.Run("Respond", func(t *testing.T) {
		updated, err := testCtx.remarks.Respond(ctx, remark.ID,
			"Extension approved through the end of the month", model.RemarkResolved)
		require.NoError(t, err)
		assert.Equal(t, model.RemarkResolved, updated.Status)
		assert.Equal(t, "Extension approved through the end of the month", updated.AdminResponse)
	})

	t.Run("RespondMissingRemark", func(t *testing.T) {
		_, err := testCtx.remarks.Respond(ctx, uuid.New(), "anything", model.RemarkReviewed)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
