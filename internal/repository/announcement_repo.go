package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prequaliq/prequaliq_backend/internal/models"
)

// MongoAnnouncementRepository implements AnnouncementRepository for MongoDB
// #ORM_INTEGRATION: MongoDB driver-based repository implementation
type MongoAnnouncementRepository struct {
	collection *mongo.Collection
}

// NewMongoAnnouncementRepository creates a new MongoDB announcement repository
func NewMongoAnnouncementRepository(db *mongo.Database) *MongoAnnouncementRepository {
	return &MongoAnnouncementRepository{
		collection: db.Collection(models.Announcement{}.CollectionName()),
	}
}

// Create creates a new announcement
func (r *MongoAnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	announcement.BeforeCreate()
	_, err := r.collection.InsertOne(ctx, announcement)
	return err
}

// GetByID finds an announcement by ID
func (r *MongoAnnouncementRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Announcement, error) {
	var announcement models.Announcement
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&announcement)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrAnnouncementNotFound
	}
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

// Update updates an announcement
func (r *MongoAnnouncementRepository) Update(ctx context.Context, announcement *models.Announcement) error {
	announcement.BeforeUpdate()
	filter := bson.M{"_id": announcement.ID}
	update := bson.M{"$set": announcement}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrAnnouncementNotFound
	}
	return nil
}

// Delete deletes an announcement
func (r *MongoAnnouncementRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return models.ErrAnnouncementNotFound
	}
	return nil
}

// ListForRole lists unexpired announcements visible to a role
// #BUSINESS_RULE: Admins see everything through ListAll; role feeds hide expired items
func (r *MongoAnnouncementRepository) ListForRole(ctx context.Context, role models.UserRole, opts PaginationOptions) (*PaginatedResult[models.Announcement], error) {
	audiences := []models.AnnouncementAudience{models.AudienceAll}
	switch role {
	case models.UserRoleSupplier:
		audiences = append(audiences, models.AudienceSuppliers)
	case models.UserRoleProcuringEntity:
		audiences = append(audiences, models.AudienceEntities)
	}

	now := time.Now().UTC()
	filter := bson.M{
		"audience": bson.M{"$in": audiences},
		"$or": []bson.M{
			{"expires_at": nil},
			{"expires_at": bson.M{"$gt": now}},
		},
	}
	return r.list(ctx, filter, opts)
}

// ListAll lists all announcements including expired ones (admin view)
func (r *MongoAnnouncementRepository) ListAll(ctx context.Context, opts PaginationOptions) (*PaginatedResult[models.Announcement], error) {
	return r.list(ctx, bson.M{}, opts)
}

func (r *MongoAnnouncementRepository) list(ctx context.Context, filter bson.M, opts PaginationOptions) (*PaginatedResult[models.Announcement], error) {
	// Count total
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Apply pagination
	skip := int64((opts.Page - 1) * opts.Limit)
	findOpts := options.Find().
		SetSkip(skip).
		SetLimit(int64(opts.Limit)).
		SetSort(bson.D{{Key: opts.SortBy, Value: opts.SortDir}})

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var announcements []models.Announcement
	if err := cursor.All(ctx, &announcements); err != nil {
		return nil, err
	}

	totalPages := int(total) / opts.Limit
	if int(total)%opts.Limit > 0 {
		totalPages++
	}

	return &PaginatedResult[models.Announcement]{
		Items:      announcements,
		TotalCount: total,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: totalPages,
	}, nil
}

// Ensure MongoAnnouncementRepository implements AnnouncementRepository
var _ AnnouncementRepository = (*MongoAnnouncementRepository)(nil)
