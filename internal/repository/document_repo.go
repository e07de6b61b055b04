package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prequaliq/prequaliq_backend/internal/models"
)

// MongoDocumentRepository implements DocumentRepository for MongoDB
// #ORM_INTEGRATION: MongoDB driver-based repository implementation
// #INTEGRATION_POINT: File bytes live on disk; only metadata is stored here
type MongoDocumentRepository struct {
	collection *mongo.Collection
}

// NewMongoDocumentRepository creates a new MongoDB document repository
func NewMongoDocumentRepository(db *mongo.Database) *MongoDocumentRepository {
	return &MongoDocumentRepository{
		collection: db.Collection(models.Document{}.CollectionName()),
	}
}

// Create creates a new document record
func (r *MongoDocumentRepository) Create(ctx context.Context, document *models.Document) error {
	document.BeforeCreate()
	_, err := r.collection.InsertOne(ctx, document)
	return err
}

// GetByID finds a document by ID
func (r *MongoDocumentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Document, error) {
	var document models.Document
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&document)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &document, nil
}

// Delete deletes a document record
func (r *MongoDocumentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return models.ErrDocumentNotFound
	}
	return nil
}

// ListBySupplier lists documents uploaded by a supplier
func (r *MongoDocumentRepository) ListBySupplier(ctx context.Context, supplierID primitive.ObjectID, opts PaginationOptions) (*PaginatedResult[models.Document], error) {
	filter := bson.M{"supplier_id": supplierID}
	return r.list(ctx, filter, opts)
}

// ListByEntity lists documents uploaded by a procuring entity
func (r *MongoDocumentRepository) ListByEntity(ctx context.Context, entityID primitive.ObjectID, opts PaginationOptions) (*PaginatedResult[models.Document], error) {
	filter := bson.M{"procuring_entity_id": entityID}
	return r.list(ctx, filter, opts)
}

func (r *MongoDocumentRepository) list(ctx context.Context, filter bson.M, opts PaginationOptions) (*PaginatedResult[models.Document], error) {
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

	var documents []models.Document
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, err
	}

	totalPages := int(total) / opts.Limit
	if int(total)%opts.Limit > 0 {
		totalPages++
	}

	return &PaginatedResult[models.Document]{
		Items:      documents,
		TotalCount: total,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: totalPages,
	}, nil
}

// Ensure MongoDocumentRepository implements DocumentRepository
var _ DocumentRepository = (*MongoDocumentRepository)(nil)
