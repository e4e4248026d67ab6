package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexusops/internal/repos"
	"nexusops/internal/services"
)

func TestMarkRead_Idempotent(t *testing.T) {
	db := opendb(t)
	repo := repos.NewNotificationRepo(db)
	svc := services.NewNotificationService(repo)

	id, err := svc.Notify("u-seller1", "product_sold", "Label request", "Product sold.", "high")
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead("u-seller1", id))
	// Second call is a no-op, not an error
	require.NoError(t, svc.MarkRead("u-seller1", id))

	n, err := repo.Get(id)
	require.NoError(t, err)
	assert.True(t, n.Read)
	assert.NotEmpty(t, n.UpdatedAt)
}

func TestMarkRead_Missing(t *testing.T) {
	db := opendb(t)
	svc := services.NewNotificationService(repos.NewNotificationRepo(db))

	err := svc.MarkRead("u-seller1", "no-such-notification")
	assert.ErrorIs(t, err, services.ErrNotificationNotFound)
}

func TestMarkRead_OwnerOnly(t *testing.T) {
	db := opendb(t)
	repo := repos.NewNotificationRepo(db)
	svc := services.NewNotificationService(repo)

	id, err := svc.Notify("u-seller1", "product_sold", "Label request", "Product sold.", "high")
	require.NoError(t, err)

	// Someone else's notification reads as not found and stays unread
	err = svc.MarkRead("u-staff1", id)
	assert.ErrorIs(t, err, services.ErrNotificationNotFound)

	n, err := repo.Get(id)
	require.NoError(t, err)
	assert.False(t, n.Read)

	require.NoError(t, svc.MarkRead("u-seller1", id))
}

func TestInboxFor(t *testing.T) {
	db := opendb(t)
	svc := services.NewNotificationService(repos.NewNotificationRepo(db))

	first, err := svc.Notify("u-seller1", "plan_submitted", "Plan submitted", "3 items.", "")
	require.NoError(t, err)
	_, err = svc.Notify("u-seller1", "product_sold", "Label request", "Product sold.", "high")
	require.NoError(t, err)

	inbox, err := svc.InboxFor("u-seller1", 10)
	require.NoError(t, err)
	assert.Len(t, inbox.Items, 2)
	assert.Equal(t, 2, inbox.Unread)

	require.NoError(t, svc.MarkRead("u-seller1", first))
	inbox, err = svc.InboxFor("u-seller1", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, inbox.Unread)

	// Other users see nothing
	inbox, err = svc.InboxFor("u-staff1", 10)
	require.NoError(t, err)
	assert.Empty(t, inbox.Items)
	assert.Zero(t, inbox.Unread)
}
