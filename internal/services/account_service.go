package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/internal/repositories"
	"github.com/emilyand-i/AgileWebGroup82/internal/security"
	"github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"github.com/emilyand-i/AgileWebGroup82/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const SearchLimit = 10

// IDTokenVerifier verifies Firebase ID tokens. *auth.Client satisfies it.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type AccountService struct {
	accounts      repositories.AccountRepository
	tokens        *security.TokenIssuer
	firebase      IDTokenVerifier
	visibility    *VisibilityService
	relationships *RelationshipService
	content       *ContentService
	now           func() time.Time
}

func NewAccountService(
	accounts repositories.AccountRepository,
	tokens *security.TokenIssuer,
	visibility *VisibilityService,
	relationships *RelationshipService,
	content *ContentService,
) *AccountService {
	return &AccountService{
		accounts:      accounts,
		tokens:        tokens,
		visibility:    visibility,
		relationships: relationships,
		content:       content,
		now:           time.Now,
	}
}

// WithFirebase enables sign-in with Firebase ID tokens.
func (s *AccountService) WithFirebase(verifier IDTokenVerifier) *AccountService {
	s.firebase = verifier
	return s
}

func (s *AccountService) FirebaseEnabled() bool {
	return s.firebase != nil
}

// Register creates a local account with a bcrypt credential hash.
func (s *AccountService) Register(ctx context.Context, req models.RegisterRequest) (*models.Account, error) {
	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, errors.Internal(err, "failed to hash password")
	}

	account := &models.Account{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	logger.Info("Account registered", "account_id", account.ID, "username", account.Username)
	return account, nil
}

// Login checks credentials, advances the login streak and issues a token.
func (s *AccountService) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errors.KindNotFound) {
			return nil, errors.New(errors.KindUnauthenticated, "invalid username or password")
		}
		return nil, err
	}
	if !security.CheckPassword(account.PasswordHash, password) {
		return nil, errors.New(errors.KindUnauthenticated, "invalid username or password")
	}
	return s.startSession(ctx, account)
}

// FirebaseLogin signs in with a Firebase ID token. An unknown identity is
// linked to the account with the same email, or gets a new account.
func (s *AccountService) FirebaseLogin(ctx context.Context, idToken string) (*models.LoginResult, error) {
	if s.firebase == nil {
		return nil, errors.New(errors.KindUnauthenticated, "firebase sign-in is not configured")
	}
	token, err := s.firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindUnauthenticated, "invalid or expired ID token")
	}

	account, err := s.accounts.FindByFirebaseUID(ctx, token.UID)
	if err == nil {
		return s.startSession(ctx, account)
	}
	if !errors.Is(err, errors.KindNotFound) {
		return nil, err
	}

	email, _ := token.Claims["email"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New(errors.KindUnauthenticated, "firebase identity has no email")
	}

	uid := token.UID
	account, err = s.accounts.FindByEmail(ctx, email)
	switch {
	case err == nil:
		account.FirebaseUID = &uid
		if err := s.accounts.Update(ctx, account); err != nil {
			return nil, err
		}
	case errors.Is(err, errors.KindNotFound):
		account, err = s.createFirebaseAccount(ctx, uid, email, token.Claims)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	logger.Info("Firebase identity linked", "account_id", account.ID)
	return s.startSession(ctx, account)
}

func (s *AccountService) createFirebaseAccount(ctx context.Context, uid, email string, claims map[string]interface{}) (*models.Account, error) {
	base, _ := claims["name"].(string)
	base = strings.ReplaceAll(strings.TrimSpace(base), " ", "")
	if base == "" {
		base = strings.SplitN(email, "@", 2)[0]
	}

	// Firebase accounts never sign in with a password.
	hash, err := security.HashPassword(uuid.NewString())
	if err != nil {
		return nil, errors.Internal(err, "failed to hash password")
	}

	username := base
	for attempt := 0; attempt < 5; attempt++ {
		if attempt > 0 {
			username = fmt.Sprintf("%s%s", base, uuid.NewString()[:6])
		}
		account := &models.Account{
			Username:     username,
			Email:        email,
			PasswordHash: hash,
			FirebaseUID:  &uid,
		}
		err = s.accounts.Create(ctx, account)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, errors.KindAlreadyExists) {
			return nil, err
		}
	}
	return nil, err
}

func (s *AccountService) startSession(ctx context.Context, account *models.Account) (*models.LoginResult, error) {
	now := s.now().UTC()
	account.LoginStreak = NextLoginStreak(account.LoginStreak, account.LastLoginAt, now)
	account.LastLoginAt = &now
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateJWT(account)
	if err != nil {
		return nil, errors.Internal(err, "failed to issue token")
	}

	logger.Info("Account signed in", "account_id", account.ID, "streak", account.LoginStreak)
	return &models.LoginResult{Token: token, Account: *account}, nil
}

// NextLoginStreak computes the streak after a login at now. Another login on
// the same UTC day keeps it, a login on the following day extends it, and
// anything later starts over at 1.
func NextLoginStreak(current int, lastLogin *time.Time, now time.Time) int {
	if lastLogin == nil {
		return 1
	}
	last := truncateDay(lastLogin.UTC())
	today := truncateDay(now.UTC())

	switch {
	case today.Equal(last):
		if current < 1 {
			return 1
		}
		return current
	case today.Equal(last.AddDate(0, 0, 1)):
		return current + 1
	default:
		return 1
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *AccountService) FindByID(ctx context.Context, id uint) (*models.Account, error) {
	return s.accounts.FindByID(ctx, id)
}

func (s *AccountService) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	return s.accounts.FindByUsername(ctx, username)
}

func (s *AccountService) FindByFirebaseUID(ctx context.Context, uid string) (*models.Account, error) {
	return s.accounts.FindByFirebaseUID(ctx, uid)
}

// Search matches usernames containing query, leaving out the caller.
func (s *AccountService) Search(ctx context.Context, query string, callerID uint) ([]models.AccountCompact, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.AccountCompact{}, nil
	}

	accounts, err := s.accounts.Search(ctx, query, callerID, SearchLimit)
	if err != nil {
		return nil, err
	}
	out := make([]models.AccountCompact, 0, len(accounts))
	for i := range accounts {
		out = append(out, accounts[i].ToCompact())
	}
	return out, nil
}

// Session loads everything a signed-in home page needs in parallel.
func (s *AccountService) Session(ctx context.Context, accountID uint) (*models.SessionSummary, error) {
	var summary models.SessionSummary
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		account, err := s.accounts.FindByID(gctx, accountID)
		if err != nil {
			return err
		}
		summary.Account = *account
		return nil
	})
	g.Go(func() error {
		policy, err := s.visibility.Get(gctx, accountID)
		summary.Settings = policy
		return err
	})
	g.Go(func() error {
		plants, err := s.content.ListPlants(gctx, accountID)
		summary.Plants = plants
		return err
	})
	g.Go(func() error {
		photos, err := s.content.ListPhotos(gctx, accountID)
		summary.Photos = photos
		return err
	})
	g.Go(func() error {
		connections, err := s.relationships.List(gctx, accountID)
		summary.Connections = connections
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &summary, nil
}
