package repositories

import (
	"context"
	"time"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	apperrors "github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// PhotoRepository defines the interface for photo data operations.
// All listings are newest first.
type PhotoRepository interface {
	Create(ctx context.Context, photo *models.Photo) error
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Photo, error)
	Recent(ctx context.Context, excludeOwners []uint, limit int) ([]models.Photo, error)
	RecentByOwners(ctx context.Context, owners []uint, limit int) ([]models.Photo, error)
}

// MongoPhotoRepository implements PhotoRepository for MongoDB
type MongoPhotoRepository struct {
	collection *mongo.Collection
}

// NewMongoPhotoRepository creates a new MongoPhotoRepository
func NewMongoPhotoRepository(db *mongo.Database) *MongoPhotoRepository {
	return &MongoPhotoRepository{collection: db.Collection("photos")}
}

// EnsureIndexes creates the indexes the feed queries rely on
func (r *MongoPhotoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "uploaded_at", Value: -1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "uploaded_at", Value: -1}}},
	})
	return err
}

// Create inserts a photo in MongoDB
func (r *MongoPhotoRepository) Create(ctx context.Context, photo *models.Photo) error {
	photo.ID = primitive.NewObjectID().Hex()
	photo.UploadedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, photo); err != nil {
		return apperrors.Internal(err, "failed to store photo")
	}
	return nil
}

// ListByOwner retrieves every photo uploaded by ownerID
func (r *MongoPhotoRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Photo, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID}, 0)
}

// Recent retrieves the newest photos whose owner is not in excludeOwners
func (r *MongoPhotoRepository) Recent(ctx context.Context, excludeOwners []uint, limit int) ([]models.Photo, error) {
	return r.find(ctx, excludeOwnersFilter(excludeOwners), limit)
}

// RecentByOwners retrieves the newest photos uploaded by any of owners
func (r *MongoPhotoRepository) RecentByOwners(ctx context.Context, owners []uint, limit int) ([]models.Photo, error) {
	if len(owners) == 0 {
		return []models.Photo{}, nil
	}
	return r.find(ctx, ownersFilter(owners), limit)
}

func (r *MongoPhotoRepository) find(ctx context.Context, filter bson.M, limit int) ([]models.Photo, error) {
	cursor, err := r.collection.Find(ctx, filter, newestFirst(limit))
	if err != nil {
		return nil, apperrors.Internal(err, "failed to query photos")
	}
	defer cursor.Close(ctx)

	photos := []models.Photo{}
	if err = cursor.All(ctx, &photos); err != nil {
		return nil, apperrors.Internal(err, "failed to decode photos")
	}
	return photos, nil
}

func excludeOwnersFilter(excludeOwners []uint) bson.M {
	if len(excludeOwners) == 0 {
		return bson.M{}
	}
	return bson.M{"owner_id": bson.M{"$nin": excludeOwners}}
}

func ownersFilter(owners []uint) bson.M {
	return bson.M{"owner_id": bson.M{"$in": owners}}
}

// newestFirst orders by upload time with _id breaking ties. limit 0 means all.
func newestFirst(limit int) *options.FindOptions {
	findOptions := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}
	return findOptions
}

// SQLPhotoRepository implements PhotoRepository on the relational store for
// deployments without MongoDB.
type SQLPhotoRepository struct {
	db *gorm.DB
}

func NewSQLPhotoRepository(db *gorm.DB) *SQLPhotoRepository {
	return &SQLPhotoRepository{db: db}
}

func (r *SQLPhotoRepository) Create(ctx context.Context, photo *models.Photo) error {
	photo.ID = uuid.NewString()
	photo.UploadedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		return apperrors.Internal(err, "failed to store photo")
	}
	return nil
}

func (r *SQLPhotoRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Photo, error) {
	return r.find(r.db.WithContext(ctx).Where("owner_id = ?", ownerID), 0)
}

func (r *SQLPhotoRepository) Recent(ctx context.Context, excludeOwners []uint, limit int) ([]models.Photo, error) {
	q := r.db.WithContext(ctx)
	if len(excludeOwners) > 0 {
		q = q.Where("owner_id NOT IN ?", excludeOwners)
	}
	return r.find(q, limit)
}

func (r *SQLPhotoRepository) RecentByOwners(ctx context.Context, owners []uint, limit int) ([]models.Photo, error) {
	if len(owners) == 0 {
		return []models.Photo{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("owner_id IN ?", owners), limit)
}

func (r *SQLPhotoRepository) find(q *gorm.DB, limit int) ([]models.Photo, error) {
	q = q.Order("uploaded_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	photos := []models.Photo{}
	if err := q.Find(&photos).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to query photos")
	}
	return photos, nil
}
