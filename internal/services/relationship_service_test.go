package services

import (
	"context"
	"testing"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/internal/testutil"
	"github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationshipService_JamesEmilyLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	james := env.account(t, "james")
	emily := env.account(t, "emily")

	edge, err := env.relationships.Request(ctx, james.ID, "emily")
	require.NoError(t, err)
	assert.Equal(t, james.ID, edge.RequesterID)
	assert.Equal(t, emily.ID, edge.TargetID)
	assert.Equal(t, models.RelationshipPending, edge.Status)

	emilyView, err := env.relationships.List(ctx, emily.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"james"}, usernames(emilyView.Pending))
	assert.Empty(t, emilyView.SentPending)

	jamesView, err := env.relationships.List(ctx, james.ID)
	require.NoError(t, err)
	assert.Empty(t, jamesView.Pending, "requester never sees its own request as pending")
	assert.Equal(t, []string{"emily"}, usernames(jamesView.SentPending))

	_, err = env.relationships.Accept(ctx, james.ID, emily.ID)
	require.NoError(t, err)

	connected, err := env.relationships.AreConnected(ctx, james.ID, emily.ID)
	require.NoError(t, err)
	assert.True(t, connected)

	_, err = env.relationships.Accept(ctx, james.ID, emily.ID)
	assert.True(t, errors.Is(err, errors.KindNotFound), "second accept must fail")

	jamesView, err = env.relationships.List(ctx, james.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"emily"}, usernames(jamesView.Accepted))
	assert.Empty(t, jamesView.SentPending)

	require.NoError(t, env.relationships.Remove(ctx, emily.ID, james.ID))
	connected, err = env.relationships.AreConnected(ctx, james.ID, emily.ID)
	require.NoError(t, err)
	assert.False(t, connected)

	_, err = env.relationships.Request(ctx, james.ID, "emily")
	assert.NoError(t, err, "a fresh request succeeds after removal")
}

func TestRelationshipService_RequestFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.account(t, "alice")
	bob := env.account(t, "bob")
	env.account(t, "carol")
	testutil.SetPolicy(t, env.db, bob.ID, true, false)

	_, err := env.relationships.Request(ctx, alice.ID, "carol")
	require.NoError(t, err)

	carol, err := env.accounts.FindByUsername(ctx, "carol")
	require.NoError(t, err)

	tests := []struct {
		name      string
		requester uint
		target    string
		kind      errors.Kind
	}{
		{name: "Unknown target", requester: alice.ID, target: "nobody", kind: errors.KindNotFound},
		{name: "Self request", requester: alice.ID, target: "alice", kind: errors.KindSelfReference},
		{name: "Target disallows requests", requester: alice.ID, target: "bob", kind: errors.KindPolicyDenied},
		{name: "Duplicate request", requester: alice.ID, target: "carol", kind: errors.KindAlreadyExists},
		{name: "Reversed request", requester: carol.ID, target: "alice", kind: errors.KindAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.relationships.Request(ctx, tt.requester, tt.target)
			require.Error(t, err)
			assert.Equal(t, tt.kind, errors.KindOf(err))
		})
	}

	var count int64
	require.NoError(t, env.db.Model(&models.RelationshipEdge{}).
		Where("target_id = ?", bob.ID).Count(&count).Error)
	assert.Zero(t, count, "policy denial creates no edge")
}

func TestRelationshipService_DeclineAndRemoveNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	james := env.account(t, "james")
	emily := env.account(t, "emily")

	err := env.relationships.Decline(ctx, james.ID, emily.ID)
	assert.True(t, errors.Is(err, errors.KindNotFound))

	err = env.relationships.Remove(ctx, james.ID, emily.ID)
	assert.True(t, errors.Is(err, errors.KindNotFound))

	_, err = env.relationships.Request(ctx, james.ID, "emily")
	require.NoError(t, err)
	require.NoError(t, env.relationships.Decline(ctx, james.ID, emily.ID))

	view, err := env.relationships.List(ctx, emily.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Pending)
}
