package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/taskmaster/internal/models"
)

func TestLeaves(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	leave, err := store.CreateLeave(ctx, CreateLeaveRequest{
		UserID: "ada", Type: models.LeaveSick, Date: "2025-06-20", Reason: "flu",
	})
	require.NoError(t, err)
	assert.False(t, leave.Approved)

	_, err = store.CreateLeave(ctx, CreateLeaveRequest{UserID: "ada", Type: models.LeaveSick, Date: "2025-06-20"})
	assert.Error(t, err, "duplicate leave")

	_, err = store.CreateLeave(ctx, CreateLeaveRequest{UserID: "ada", Type: "holiday", Date: "2025-06-21"})
	assert.Error(t, err, "unknown type")

	_, err = store.CreateLeave(ctx, CreateLeaveRequest{
		UserID: "ada", Type: models.LeavePersonal, Date: "2025-06-18", Approved: true,
	})
	require.NoError(t, err)

	approved, err := store.ApproveLeave(ctx, "ada", ShortID(leave.ID))
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	leaves, err := store.GetLeaves(ctx, "ada")
	require.NoError(t, err)
	require.Len(t, leaves, 2)
	assert.Equal(t, "2025-06-18", leaves[0].Date)
	assert.True(t, leaves[1].Approved)

	_, err = store.ApproveLeave(ctx, "grace", leave.ID)
	assert.ErrorIs(t, err, ErrLeaveNotFound)
}

func TestLeaves_IDRefIsLiteralPrefix(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	leave, err := store.CreateLeave(ctx, CreateLeaveRequest{UserID: "ada", Type: models.LeaveSick, Date: "2025-06-20"})
	require.NoError(t, err)

	for _, ref := range []string{"", "%", "_"} {
		_, err := store.ApproveLeave(ctx, "ada", ref)
		assert.ErrorIs(t, err, ErrLeaveNotFound, "ref %q", ref)
	}

	leaves, err := store.GetLeaves(ctx, "ada")
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.False(t, leaves[0].Approved)

	approved, err := store.ApproveLeave(ctx, "ada", leave.ID[:6])
	require.NoError(t, err)
	assert.True(t, approved.Approved)
}
