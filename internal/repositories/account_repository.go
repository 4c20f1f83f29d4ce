package repositories

import (
	"context"
	"errors"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	apperrors "github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"gorm.io/gorm"
)

// AccountRepository defines the interface for account data operations
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, id uint) (*models.Account, error)
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByFirebaseUID(ctx context.Context, firebaseUID string) (*models.Account, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Account, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Search(ctx context.Context, query string, excludeID uint, limit int) ([]models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	WithTx(tx *gorm.DB) AccountRepository
}

// PostgresAccountRepository implements AccountRepository on gorm
type PostgresAccountRepository struct {
	db *gorm.DB
}

// NewPostgresAccountRepository creates a new PostgresAccountRepository
func NewPostgresAccountRepository(db *gorm.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func (r *PostgresAccountRepository) WithTx(tx *gorm.DB) AccountRepository {
	return &PostgresAccountRepository{db: tx}
}

// Create inserts a new account. Duplicate usernames or emails are reported
// as ALREADY_EXISTS.
func (r *PostgresAccountRepository) Create(ctx context.Context, account *models.Account) error {
	err := r.db.WithContext(ctx).Create(account).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.New(apperrors.KindAlreadyExists, "username or email already registered")
	}
	if err != nil {
		return apperrors.Internal(err, "failed to create account")
	}
	return nil
}

// FindByID retrieves an account by ID
func (r *PostgresAccountRepository) FindByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		return nil, notFoundOr(err, "account")
	}
	return &account, nil
}

// FindByUsername retrieves an account by its exact username
func (r *PostgresAccountRepository) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		return nil, notFoundOr(err, "account")
	}
	return &account, nil
}

func (r *PostgresAccountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, notFoundOr(err, "account")
	}
	return &account, nil
}

// FindByFirebaseUID retrieves an account linked to a Firebase identity
func (r *PostgresAccountRepository) FindByFirebaseUID(ctx context.Context, firebaseUID string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&account).Error; err != nil {
		return nil, notFoundOr(err, "account")
	}
	return &account, nil
}

// FindByIDs loads every existing account in ids, ordered by username.
func (r *PostgresAccountRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Account, error) {
	accounts := []models.Account{}
	if len(ids) == 0 {
		return accounts, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("username ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to load accounts")
	}
	return accounts, nil
}

func (r *PostgresAccountRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperrors.Internal(err, "failed to check account")
	}
	return count > 0, nil
}

// Search finds accounts whose username contains query, case-insensitively,
// leaving out excludeID.
func (r *PostgresAccountRepository) Search(ctx context.Context, query string, excludeID uint, limit int) ([]models.Account, error) {
	accounts := []models.Account{}
	err := r.db.WithContext(ctx).
		Where(`LOWER(username) LIKE ? ESCAPE '\'`, containsPattern(query)).
		Where("id <> ?", excludeID).
		Order("username ASC").
		Limit(limit).
		Find(&accounts).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to search accounts")
	}
	return accounts, nil
}

// Update saves every column of account
func (r *PostgresAccountRepository) Update(ctx context.Context, account *models.Account) error {
	err := r.db.WithContext(ctx).Save(account).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.New(apperrors.KindAlreadyExists, "account identity already linked")
	}
	if err != nil {
		return apperrors.Internal(err, "failed to update account")
	}
	return nil
}
