package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prequaliq/prequaliq_backend/internal/models"
)

// MongoSupplierRepository implements SupplierRepository for MongoDB
// #ORM_INTEGRATION: MongoDB driver-based repository implementation
type MongoSupplierRepository struct {
	collection *mongo.Collection
}

// NewMongoSupplierRepository creates a new MongoDB supplier repository
func NewMongoSupplierRepository(db *mongo.Database) *MongoSupplierRepository {
	return &MongoSupplierRepository{
		collection: db.Collection(models.Supplier{}.CollectionName()),
	}
}

// Create creates a new supplier profile
func (r *MongoSupplierRepository) Create(ctx context.Context, supplier *models.Supplier) error {
	supplier.BeforeCreate()
	_, err := r.collection.InsertOne(ctx, supplier)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrSupplierExists
	}
	return err
}

// GetByID finds a supplier by ID
func (r *MongoSupplierRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Supplier, error) {
	var supplier models.Supplier
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&supplier)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrSupplierNotFound
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

// GetByUserID finds a supplier profile by its owning user
func (r *MongoSupplierRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Supplier, error) {
	var supplier models.Supplier
	filter := bson.M{"user_id": userID}
	err := r.collection.FindOne(ctx, filter).Decode(&supplier)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrSupplierNotFound
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

// Update updates a supplier profile
func (r *MongoSupplierRepository) Update(ctx context.Context, supplier *models.Supplier) error {
	supplier.BeforeUpdate()
	filter := bson.M{"_id": supplier.ID}
	update := bson.M{"$set": supplier}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrSupplierNotFound
	}
	return nil
}

// ListByStatus lists suppliers, optionally filtered by approval status
func (r *MongoSupplierRepository) ListByStatus(ctx context.Context, status *models.SupplierStatus, opts PaginationOptions) (*PaginatedResult[models.Supplier], error) {
	filter := bson.M{}
	if status != nil {
		filter["status"] = *status
	}

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

	var suppliers []models.Supplier
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, err
	}

	totalPages := int(total) / opts.Limit
	if int(total)%opts.Limit > 0 {
		totalPages++
	}

	return &PaginatedResult[models.Supplier]{
		Items:      suppliers,
		TotalCount: total,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: totalPages,
	}, nil
}

// CountByStatus counts suppliers by approval status
func (r *MongoSupplierRepository) CountByStatus(ctx context.Context, status models.SupplierStatus) (int64, error) {
	filter := bson.M{"status": status}
	return r.collection.CountDocuments(ctx, filter)
}

// Ensure MongoSupplierRepository implements SupplierRepository
var _ SupplierRepository = (*MongoSupplierRepository)(nil)

// MongoProcuringEntityRepository implements ProcuringEntityRepository for MongoDB
// #ORM_INTEGRATION: MongoDB driver-based repository implementation
type MongoProcuringEntityRepository struct {
	collection *mongo.Collection
}

// NewMongoProcuringEntityRepository creates a new MongoDB procuring entity repository
func NewMongoProcuringEntityRepository(db *mongo.Database) *MongoProcuringEntityRepository {
	return &MongoProcuringEntityRepository{
		collection: db.Collection(models.ProcuringEntity{}.CollectionName()),
	}
}

// Create creates a new procuring entity profile
func (r *MongoProcuringEntityRepository) Create(ctx context.Context, entity *models.ProcuringEntity) error {
	entity.BeforeCreate()
	_, err := r.collection.InsertOne(ctx, entity)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrEntityExists
	}
	return err
}

// GetByID finds a procuring entity by ID
func (r *MongoProcuringEntityRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ProcuringEntity, error) {
	var entity models.ProcuringEntity
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&entity)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrEntityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetByUserID finds a procuring entity profile by its owning user
func (r *MongoProcuringEntityRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.ProcuringEntity, error) {
	var entity models.ProcuringEntity
	filter := bson.M{"user_id": userID}
	err := r.collection.FindOne(ctx, filter).Decode(&entity)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrEntityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// Update updates a procuring entity profile
func (r *MongoProcuringEntityRepository) Update(ctx context.Context, entity *models.ProcuringEntity) error {
	entity.BeforeUpdate()
	filter := bson.M{"_id": entity.ID}
	update := bson.M{"$set": entity}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrEntityNotFound
	}
	return nil
}

// Ensure MongoProcuringEntityRepository implements ProcuringEntityRepository
var _ ProcuringEntityRepository = (*MongoProcuringEntityRepository)(nil)
