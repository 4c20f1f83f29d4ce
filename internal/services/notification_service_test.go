package services

import (
	"context"
	"testing"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_Record(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	james := env.account(t, "james")
	emily := env.account(t, "emily")

	n, err := env.notifications.Record(ctx, models.NewNotification{
		Kind:       models.NotificationKindPlantShare,
		ReceiverID: emily.ID,
		SenderID:   james.ID,
		Message:    `<b>james</b> says hi<script>alert(1)</script>`,
	})
	require.NoError(t, err)
	assert.Equal(t, "james says hi", n.Message)
	assert.Equal(t, models.NotificationKindPlantShare, n.Kind)
	assert.False(t, n.IsRead)
	assert.Len(t, env.publisher.Sent(), 1)

	_, err = env.notifications.Record(ctx, models.NewNotification{Kind: models.NotificationKindPlantShare, ReceiverID: 999, SenderID: james.ID, Message: "x"})
	assert.True(t, errors.Is(err, errors.KindInvalidReference))

	_, err = env.notifications.Record(ctx, models.NewNotification{Kind: models.NotificationKindPlantShare, ReceiverID: emily.ID, SenderID: 999, Message: "x"})
	assert.True(t, errors.Is(err, errors.KindInvalidReference))
	assert.Len(t, env.publisher.Sent(), 1, "failed records are never pushed")
}

func TestNotificationService_Record_RequiresKind(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	james := env.account(t, "james")
	emily := env.account(t, "emily")

	_, err := env.notifications.Record(ctx, models.NewNotification{ReceiverID: emily.ID, SenderID: james.ID, Message: "share"})
	assert.True(t, errors.Is(err, errors.KindValidation))

	count, err := env.notifications.UnreadCount(ctx, emily.ID)
	require.NoError(t, err)
	assert.Zero(t, count, "nothing is stored without a kind")
	assert.Empty(t, env.publisher.Sent())
}

func TestNotificationService_ListFor_Pages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	james := env.account(t, "james")
	emily := env.account(t, "emily")

	for i := 0; i < 5; i++ {
		_, err := env.notifications.Record(ctx, models.NewNotification{Kind: models.NotificationKindPlantShare, ReceiverID: emily.ID, SenderID: james.ID, Message: "share"})
		require.NoError(t, err)
	}

	seen := map[uint]bool{}
	var order []uint
	cursor := uint(0)
	for pages := 0; pages < 3; pages++ {
		page, err := env.notifications.ListFor(ctx, emily.ID, cursor, 2)
		require.NoError(t, err)
		for _, n := range page.Notifications {
			assert.False(t, seen[n.ID], "pages must be disjoint")
			seen[n.ID] = true
			order = append(order, n.ID)
		}
		cursor = page.NextCursor
		if cursor == 0 {
			break
		}
	}

	assert.Len(t, order, 5)
	for i := 1; i < len(order); i++ {
		assert.Greater(t, order[i-1], order[i], "newest first")
	}
	assert.Zero(t, cursor, "last page has no cursor")
}

func TestNotificationService_MarkRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	james := env.account(t, "james")
	emily := env.account(t, "emily")

	n, err := env.notifications.Record(ctx, models.NewNotification{Kind: models.NotificationKindPlantShare, ReceiverID: emily.ID, SenderID: james.ID, Message: "share"})
	require.NoError(t, err)

	err = env.notifications.MarkRead(ctx, n.ID, james.ID)
	assert.True(t, errors.Is(err, errors.KindForbidden))

	err = env.notifications.MarkRead(ctx, 4242, emily.ID)
	assert.True(t, errors.Is(err, errors.KindNotFound))

	require.NoError(t, env.notifications.MarkRead(ctx, n.ID, emily.ID))
	require.NoError(t, env.notifications.MarkRead(ctx, n.ID, emily.ID), "idempotent")

	count, err := env.notifications.UnreadCount(ctx, emily.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = env.notifications.Record(ctx, models.NewNotification{Kind: models.NotificationKindPlantShare, ReceiverID: emily.ID, SenderID: james.ID, Message: "again"})
	require.NoError(t, err)
	changed, err := env.notifications.MarkAllRead(ctx, emily.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), changed)
}
