package repositories

import (
	"context"
	"errors"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	apperrors "github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"gorm.io/gorm"
)

// RelationshipRepository defines the interface for relationship graph operations.
// Edges are stored with direction; every "connected" query goes through the
// unordered pair columns or ConnectedIDs so both directions are always checked.
type RelationshipRepository interface {
	CreatePending(ctx context.Context, requesterID, targetID uint) (*models.RelationshipEdge, error)
	FindBetween(ctx context.Context, a, b uint) (*models.RelationshipEdge, error)
	Accept(ctx context.Context, requesterID, targetID uint) (*models.RelationshipEdge, error)
	DeletePending(ctx context.Context, requesterID, targetID uint) error
	DeleteAccepted(ctx context.Context, a, b uint) error
	ConnectedIDs(ctx context.Context, accountID uint) ([]uint, error)
	IncomingPendingIDs(ctx context.Context, accountID uint) ([]uint, error)
	OutgoingPendingIDs(ctx context.Context, accountID uint) ([]uint, error)
	AreConnected(ctx context.Context, a, b uint) (bool, error)
}

// PostgresRelationshipRepository implements RelationshipRepository on gorm
type PostgresRelationshipRepository struct {
	db *gorm.DB
}

// NewPostgresRelationshipRepository creates a new PostgresRelationshipRepository
func NewPostgresRelationshipRepository(db *gorm.DB) *PostgresRelationshipRepository {
	return &PostgresRelationshipRepository{db: db}
}

func orderedPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// CreatePending inserts a pending edge requester→target unless any edge
// already links the pair. The check and insert share a transaction and the
// pair unique index settles concurrent inserts.
func (r *PostgresRelationshipRepository) CreatePending(ctx context.Context, requesterID, targetID uint) (*models.RelationshipEdge, error) {
	edge := &models.RelationshipEdge{
		RequesterID: requesterID,
		TargetID:    targetID,
		Status:      models.RelationshipPending,
	}
	low, high := orderedPair(requesterID, targetID)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.RelationshipEdge
		err := tx.Where("pair_low_id = ? AND pair_high_id = ?", low, high).First(&existing).Error
		if err == nil {
			if existing.Status == models.RelationshipAccepted {
				return apperrors.New(apperrors.KindAlreadyExists, "accounts are already connected")
			}
			return apperrors.New(apperrors.KindAlreadyExists, "a pending connection request already exists between these accounts")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Internal(err, "failed to check existing connection")
		}
		return tx.Create(edge).Error
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperrors.New(apperrors.KindAlreadyExists, "a concurrent connection request between these accounts won")
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return nil, appErr
	}
	if err != nil {
		return nil, apperrors.Internal(err, "failed to create connection request")
	}
	return edge, nil
}

// FindBetween returns the edge linking a and b in either direction
func (r *PostgresRelationshipRepository) FindBetween(ctx context.Context, a, b uint) (*models.RelationshipEdge, error) {
	low, high := orderedPair(a, b)
	var edge models.RelationshipEdge
	err := r.db.WithContext(ctx).Where("pair_low_id = ? AND pair_high_id = ?", low, high).First(&edge).Error
	if err != nil {
		return nil, notFoundOr(err, "connection")
	}
	return &edge, nil
}

// Accept flips the pending edge requester→target to accepted. The conditional
// update means a second accept finds nothing and fails with NOT_FOUND.
func (r *PostgresRelationshipRepository) Accept(ctx context.Context, requesterID, targetID uint) (*models.RelationshipEdge, error) {
	var edge models.RelationshipEdge
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.RelationshipEdge{}).
			Where("requester_id = ? AND target_id = ? AND status = ?", requesterID, targetID, models.RelationshipPending).
			Update("status", models.RelationshipAccepted)
		if result.Error != nil {
			return apperrors.Internal(result.Error, "failed to accept connection")
		}
		if result.RowsAffected == 0 {
			return apperrors.New(apperrors.KindNotFound, "no pending connection request from this account")
		}
		if err := tx.Where("requester_id = ? AND target_id = ?", requesterID, targetID).First(&edge).Error; err != nil {
			return apperrors.Internal(err, "failed to reload connection")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

// DeletePending removes the pending edge requester→target
func (r *PostgresRelationshipRepository) DeletePending(ctx context.Context, requesterID, targetID uint) error {
	result := r.db.WithContext(ctx).
		Where("requester_id = ? AND target_id = ? AND status = ?", requesterID, targetID, models.RelationshipPending).
		Delete(&models.RelationshipEdge{})
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to decline connection")
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "no pending connection request from this account")
	}
	return nil
}

// DeleteAccepted removes the accepted edge between a and b whichever side asked
func (r *PostgresRelationshipRepository) DeleteAccepted(ctx context.Context, a, b uint) error {
	low, high := orderedPair(a, b)
	result := r.db.WithContext(ctx).
		Where("pair_low_id = ? AND pair_high_id = ? AND status = ?", low, high, models.RelationshipAccepted).
		Delete(&models.RelationshipEdge{})
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to remove connection")
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "accounts are not connected")
	}
	return nil
}

// ConnectedIDs returns the accounts with an accepted edge to accountID in
// either direction, without duplicates, oldest connection first.
func (r *PostgresRelationshipRepository) ConnectedIDs(ctx context.Context, accountID uint) ([]uint, error) {
	var edges []models.RelationshipEdge
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? OR target_id = ?) AND status = ?", accountID, accountID, models.RelationshipAccepted).
		Order("updated_at ASC, id ASC").
		Find(&edges).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list connections")
	}

	ids := make([]uint, 0, len(edges))
	seen := make(map[uint]struct{}, len(edges))
	for i := range edges {
		other := edges[i].Other(accountID)
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		ids = append(ids, other)
	}
	return ids, nil
}

// IncomingPendingIDs returns the requesters awaiting accountID's decision
func (r *PostgresRelationshipRepository) IncomingPendingIDs(ctx context.Context, accountID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&models.RelationshipEdge{}).
		Where("target_id = ? AND status = ?", accountID, models.RelationshipPending).
		Order("created_at ASC, id ASC").
		Pluck("requester_id", &ids).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list pending requests")
	}
	return ids, nil
}

// OutgoingPendingIDs returns the targets of requests accountID sent
func (r *PostgresRelationshipRepository) OutgoingPendingIDs(ctx context.Context, accountID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&models.RelationshipEdge{}).
		Where("requester_id = ? AND status = ?", accountID, models.RelationshipPending).
		Order("created_at ASC, id ASC").
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list sent requests")
	}
	return ids, nil
}

func (r *PostgresRelationshipRepository) AreConnected(ctx context.Context, a, b uint) (bool, error) {
	if a == b {
		return false, nil
	}
	low, high := orderedPair(a, b)
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RelationshipEdge{}).
		Where("pair_low_id = ? AND pair_high_id = ? AND status = ?", low, high, models.RelationshipAccepted).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Internal(err, "failed to check connection")
	}
	return count > 0, nil
}
