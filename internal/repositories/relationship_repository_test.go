package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/internal/testutil"
	apperrors "github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRelationshipRepository_CreatePending(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresRelationshipRepository(db)
	ctx := context.Background()

	james := testutil.CreateAccount(t, db, "james")
	emily := testutil.CreateAccount(t, db, "emily")

	edge, err := repo.CreatePending(ctx, james.ID, emily.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RelationshipPending, edge.Status)
	assert.Equal(t, james.ID, edge.RequesterID)
	assert.Equal(t, emily.ID, edge.TargetID)

	t.Run("same direction again", func(t *testing.T) {
		_, err := repo.CreatePending(ctx, james.ID, emily.ID)
		assert.True(t, apperrors.Is(err, apperrors.KindAlreadyExists))
	})

	t.Run("reversed direction", func(t *testing.T) {
		_, err := repo.CreatePending(ctx, emily.ID, james.ID)
		assert.True(t, apperrors.Is(err, apperrors.KindAlreadyExists))
	})

	t.Run("already connected", func(t *testing.T) {
		_, err := repo.Accept(ctx, james.ID, emily.ID)
		require.NoError(t, err)

		_, err = repo.CreatePending(ctx, emily.ID, james.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already connected")
	})
}

func TestRelationshipRepository_CreatePending_Concurrent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresRelationshipRepository(db)
	ctx := context.Background()

	alice := testutil.CreateAccount(t, db, "alice")
	carol := testutil.CreateAccount(t, db, "carol")

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, errs[i] = repo.CreatePending(ctx, alice.ID, carol.ID)
			} else {
				_, errs[i] = repo.CreatePending(ctx, carol.ID, alice.ID)
			}
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, apperrors.Is(err, apperrors.KindAlreadyExists), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	var count int64
	require.NoError(t, db.Model(&models.RelationshipEdge{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// A rival edge inserted between the existence check and the insert must be
// caught by the pair unique index.
func TestRelationshipRepository_CreatePending_LosesRace(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresRelationshipRepository(db)
	ctx := context.Background()

	alice := testutil.CreateAccount(t, db, "alice")
	carol := testutil.CreateAccount(t, db, "carol")

	inserted := false
	err := db.Callback().Create().Before("gorm:create").Register("test:rival_edge", func(tx *gorm.DB) {
		if inserted || tx.Statement.Schema == nil || tx.Statement.Schema.Table != "relationship_edges" {
			return
		}
		inserted = true
		now := time.Now().UTC()
		low, high := orderedPair(carol.ID, alice.ID)
		rival := tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO relationship_edges (requester_id, target_id, pair_low_id, pair_high_id, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			carol.ID, alice.ID, low, high, models.RelationshipPending, now, now,
		)
		require.NoError(t, rival.Error)
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Callback().Create().Remove("test:rival_edge") })

	_, err = repo.CreatePending(ctx, alice.ID, carol.ID)
	require.Error(t, err)
	assert.True(t, inserted)
	assert.True(t, apperrors.Is(err, apperrors.KindAlreadyExists), "unexpected error: %v", err)
	assert.Contains(t, err.Error(), "a concurrent connection request between these accounts won")
}

func TestRelationshipRepository_Accept(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresRelationshipRepository(db)
	ctx := context.Background()

	james := testutil.CreateAccount(t, db, "james")
	emily := testutil.CreateAccount(t, db, "emily")
	_, err := repo.CreatePending(ctx, james.ID, emily.ID)
	require.NoError(t, err)

	_, err = repo.Accept(ctx, emily.ID, james.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound), "only the target can accept")

	edge, err := repo.Accept(ctx, james.ID, emily.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RelationshipAccepted, edge.Status)

	_, err = repo.Accept(ctx, james.ID, emily.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	connected, err := repo.AreConnected(ctx, emily.ID, james.ID)
	require.NoError(t, err)
	assert.True(t, connected)
}

func TestRelationshipRepository_DeletePending(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresRelationshipRepository(db)
	ctx := context.Background()

	james := testutil.CreateAccount(t, db, "james")
	emily := testutil.CreateAccount(t, db, "emily")

	err := repo.DeletePending(ctx, james.ID, emily.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	_, err = repo.CreatePending(ctx, james.ID, emily.ID)
	require.NoError(t, err)
	require.NoError(t, repo.DeletePending(ctx, james.ID, emily.ID))

	_, err = repo.FindBetween(ctx, james.ID, emily.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestRelationshipRepository_DeleteAccepted_EitherDirection(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresRelationshipRepository(db)
	ctx := context.Background()

	james := testutil.CreateAccount(t, db, "james")
	emily := testutil.CreateAccount(t, db, "emily")

	_, err := repo.CreatePending(ctx, james.ID, emily.ID)
	require.NoError(t, err)

	err = repo.DeleteAccepted(ctx, emily.ID, james.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound), "pending edges are not removable")

	_, err = repo.Accept(ctx, james.ID, emily.ID)
	require.NoError(t, err)
	require.NoError(t, repo.DeleteAccepted(ctx, emily.ID, james.ID))

	connected, err := repo.AreConnected(ctx, james.ID, emily.ID)
	require.NoError(t, err)
	assert.False(t, connected)

	_, err = repo.CreatePending(ctx, james.ID, emily.ID)
	assert.NoError(t, err, "a fresh request is allowed after removal")
}

func TestRelationshipRepository_Listings(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresRelationshipRepository(db)
	ctx := context.Background()

	me := testutil.CreateAccount(t, db, "matthew")
	a := testutil.CreateAccount(t, db, "emily")
	b := testutil.CreateAccount(t, db, "james")
	c := testutil.CreateAccount(t, db, "david")
	d := testutil.CreateAccount(t, db, "frank")

	// me→a accepted, b→me accepted, c→me pending, me→d pending
	_, err := repo.CreatePending(ctx, me.ID, a.ID)
	require.NoError(t, err)
	_, err = repo.Accept(ctx, me.ID, a.ID)
	require.NoError(t, err)
	_, err = repo.CreatePending(ctx, b.ID, me.ID)
	require.NoError(t, err)
	_, err = repo.Accept(ctx, b.ID, me.ID)
	require.NoError(t, err)
	_, err = repo.CreatePending(ctx, c.ID, me.ID)
	require.NoError(t, err)
	_, err = repo.CreatePending(ctx, me.ID, d.ID)
	require.NoError(t, err)

	connected, err := repo.ConnectedIDs(ctx, me.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{a.ID, b.ID}, connected)

	incoming, err := repo.IncomingPendingIDs(ctx, me.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{c.ID}, incoming)

	outgoing, err := repo.OutgoingPendingIDs(ctx, me.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{d.ID}, outgoing)

	connected, err = repo.ConnectedIDs(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{me.ID}, connected)

	self, err := repo.AreConnected(ctx, me.ID, me.ID)
	require.NoError(t, err)
	assert.False(t, self)
}
