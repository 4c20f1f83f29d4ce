package services

import (
	"context"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/internal/repositories"
	"github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"github.com/emilyand-i/AgileWebGroup82/pkg/logger"
)

// RelationshipService runs the request → pending → accept lifecycle.
type RelationshipService struct {
	repo       repositories.RelationshipRepository
	accounts   repositories.AccountRepository
	visibility *VisibilityService
}

func NewRelationshipService(
	repo repositories.RelationshipRepository,
	accounts repositories.AccountRepository,
	visibility *VisibilityService,
) *RelationshipService {
	return &RelationshipService{
		repo:       repo,
		accounts:   accounts,
		visibility: visibility,
	}
}

// Request asks targetUsername to connect with requesterID.
func (s *RelationshipService) Request(ctx context.Context, requesterID uint, targetUsername string) (*models.RelationshipEdge, error) {
	target, err := s.accounts.FindByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}
	if target.ID == requesterID {
		return nil, errors.New(errors.KindSelfReference, "cannot send a connection request to yourself")
	}

	policy, err := s.visibility.Get(ctx, target.ID)
	if err != nil {
		return nil, err
	}
	if !policy.AllowFriendRequests {
		return nil, errors.New(errors.KindPolicyDenied, "this account is not accepting connection requests")
	}

	edge, err := s.repo.CreatePending(ctx, requesterID, target.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Connection requested", "requester_id", requesterID, "target_id", target.ID)
	return edge, nil
}

// Accept is called by targetID to accept the pending request from requesterID.
func (s *RelationshipService) Accept(ctx context.Context, requesterID, targetID uint) (*models.RelationshipEdge, error) {
	edge, err := s.repo.Accept(ctx, requesterID, targetID)
	if err != nil {
		return nil, err
	}
	logger.Info("Connection accepted", "requester_id", requesterID, "target_id", targetID)
	return edge, nil
}

// Decline is called by targetID to drop the pending request from requesterID.
func (s *RelationshipService) Decline(ctx context.Context, requesterID, targetID uint) error {
	return s.repo.DeletePending(ctx, requesterID, targetID)
}

// Remove deletes the accepted connection between a and b.
func (s *RelationshipService) Remove(ctx context.Context, a, b uint) error {
	if err := s.repo.DeleteAccepted(ctx, a, b); err != nil {
		return err
	}
	logger.Info("Connection removed", "account_id", a, "other_id", b)
	return nil
}

// List returns accepted connections, requests awaiting accountID, and
// requests accountID sent, as three separate lists.
func (s *RelationshipService) List(ctx context.Context, accountID uint) (models.Connections, error) {
	connected, err := s.repo.ConnectedIDs(ctx, accountID)
	if err != nil {
		return models.Connections{}, err
	}
	incoming, err := s.repo.IncomingPendingIDs(ctx, accountID)
	if err != nil {
		return models.Connections{}, err
	}
	outgoing, err := s.repo.OutgoingPendingIDs(ctx, accountID)
	if err != nil {
		return models.Connections{}, err
	}

	var result models.Connections
	if result.Accepted, err = s.compacts(ctx, connected); err != nil {
		return models.Connections{}, err
	}
	if result.Pending, err = s.compacts(ctx, incoming); err != nil {
		return models.Connections{}, err
	}
	if result.SentPending, err = s.compacts(ctx, outgoing); err != nil {
		return models.Connections{}, err
	}
	return result, nil
}

func (s *RelationshipService) AreConnected(ctx context.Context, a, b uint) (bool, error) {
	return s.repo.AreConnected(ctx, a, b)
}

func (s *RelationshipService) ConnectedIDs(ctx context.Context, accountID uint) ([]uint, error) {
	return s.repo.ConnectedIDs(ctx, accountID)
}

func (s *RelationshipService) compacts(ctx context.Context, ids []uint) ([]models.AccountCompact, error) {
	accounts, err := s.accounts.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]models.AccountCompact, 0, len(accounts))
	for i := range accounts {
		out = append(out, accounts[i].ToCompact())
	}
	return out, nil
}
