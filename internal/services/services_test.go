package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/internal/repositories"
	"github.com/emilyand-i/AgileWebGroup82/internal/security"
	"github.com/emilyand-i/AgileWebGroup82/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (p *recordingPublisher) Publish(n models.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, n)
}

func (p *recordingPublisher) Sent() []models.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Notification(nil), p.sent...)
}

type fakeVerifier struct {
	tokens map[string]*auth.Token
}

func (f *fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if token, ok := f.tokens[idToken]; ok {
		return token, nil
	}
	return nil, errBadToken
}

type tokenError string

func (e tokenError) Error() string { return string(e) }

const errBadToken = tokenError("bad token")

// testEnv wires every service against one in-memory store.
type testEnv struct {
	db            *gorm.DB
	publisher     *recordingPublisher
	accounts      *AccountService
	relationships *RelationshipService
	visibility    *VisibilityService
	notifications *NotificationService
	feed          *FeedService
	content       *ContentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	accountRepo := repositories.NewPostgresAccountRepository(db)
	plantRepo := repositories.NewPostgresPlantRepository(db)
	photoRepo := repositories.NewSQLPhotoRepository(db)

	publisher := &recordingPublisher{}
	visibility := NewVisibilityService(repositories.NewPostgresVisibilityRepository(db))
	relationships := NewRelationshipService(repositories.NewPostgresRelationshipRepository(db), accountRepo, visibility)
	notifications := NewNotificationService(db, repositories.NewPostgresNotificationRepository(db), accountRepo, publisher)
	content := NewContentService(plantRepo, photoRepo)
	feed := NewFeedService(db, photoRepo, plantRepo, repositories.NewPostgresShareRepository(db),
		accountRepo, relationships, visibility, notifications)
	tokens := security.NewTokenIssuer("test_secret_key_minimum_32_chars_long", time.Hour)
	accounts := NewAccountService(accountRepo, tokens, visibility, relationships, content)

	return &testEnv{
		db:            db,
		publisher:     publisher,
		accounts:      accounts,
		relationships: relationships,
		visibility:    visibility,
		notifications: notifications,
		feed:          feed,
		content:       content,
	}
}

func (e *testEnv) account(t *testing.T, username string) *models.Account {
	return testutil.CreateAccount(t, e.db, username)
}

func (e *testEnv) plant(t *testing.T, owner *models.Account, name string) *models.Plant {
	t.Helper()
	plant, err := e.content.CreatePlant(context.Background(), owner.ID, models.CreatePlantRequest{
		Name: name, Type: "Succulent", ChosenImageURL: "/static/plant.png",
	})
	require.NoError(t, err)
	return plant
}

func (e *testEnv) photo(t *testing.T, owner *models.Account, plant *models.Plant) *models.Photo {
	t.Helper()
	photo, err := e.content.CreatePhoto(context.Background(), owner.ID, models.CreatePhotoRequest{
		PlantID: plant.ID, ImageURL: "https://img.plantly.com/" + plant.Name + ".png",
	})
	require.NoError(t, err)
	// distinct upload timestamps keep newest-first ordering deterministic
	time.Sleep(2 * time.Millisecond)
	return photo
}

func usernames(list []models.AccountCompact) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.Username)
	}
	return out
}
