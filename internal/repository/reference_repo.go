package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prequaliq/prequaliq_backend/internal/models"
)

// MongoReferenceRepository implements ReferenceRepository for MongoDB
// #ORM_INTEGRATION: MongoDB driver-based repository implementation
// #DATA_ASSUMPTION: CPV and NUTS collections are small enough to list unpaginated
type MongoReferenceRepository struct {
	cpvCollection  *mongo.Collection
	nutsCollection *mongo.Collection
}

// NewMongoReferenceRepository creates a new MongoDB reference data repository
func NewMongoReferenceRepository(db *mongo.Database) *MongoReferenceRepository {
	return &MongoReferenceRepository{
		cpvCollection:  db.Collection(models.CPVCode{}.CollectionName()),
		nutsCollection: db.Collection(models.NUTSCode{}.CollectionName()),
	}
}

// GetCPVByID finds a CPV code by ID
func (r *MongoReferenceRepository) GetCPVByID(ctx context.Context, id primitive.ObjectID) (*models.CPVCode, error) {
	var code models.CPVCode
	filter := bson.M{"_id": id}
	err := r.cpvCollection.FindOne(ctx, filter).Decode(&code)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrCPVCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &code, nil
}

// GetCPVByCode finds a CPV code by its code string
func (r *MongoReferenceRepository) GetCPVByCode(ctx context.Context, code string) (*models.CPVCode, error) {
	var cpv models.CPVCode
	filter := bson.M{"code": code}
	err := r.cpvCollection.FindOne(ctx, filter).Decode(&cpv)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrCPVCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cpv, nil
}

// ListCPV lists CPV codes, optionally scoped to the children of a parent code
func (r *MongoReferenceRepository) ListCPV(ctx context.Context, parentCode *string) ([]models.CPVCode, error) {
	filter := bson.M{}
	if parentCode != nil {
		filter["parent_code"] = *parentCode
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "code", Value: 1}})
	cursor, err := r.cpvCollection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var codes []models.CPVCode
	if err := cursor.All(ctx, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// GetNUTSByID finds a NUTS code by ID
func (r *MongoReferenceRepository) GetNUTSByID(ctx context.Context, id primitive.ObjectID) (*models.NUTSCode, error) {
	var code models.NUTSCode
	filter := bson.M{"_id": id}
	err := r.nutsCollection.FindOne(ctx, filter).Decode(&code)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNUTSCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &code, nil
}

// ListNUTS lists NUTS codes, optionally filtered by level
func (r *MongoReferenceRepository) ListNUTS(ctx context.Context, level *int) ([]models.NUTSCode, error) {
	filter := bson.M{}
	if level != nil {
		filter["level"] = *level
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "code", Value: 1}})
	cursor, err := r.nutsCollection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var codes []models.NUTSCode
	if err := cursor.All(ctx, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// SeedCPV inserts CPV codes if the collection is empty (idempotent)
func (r *MongoReferenceRepository) SeedCPV(ctx context.Context, codes []models.CPVCode) (int64, error) {
	count, err := r.cpvCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(codes))
	for i := range codes {
		codes[i].BeforeCreate()
		docs[i] = codes[i]
	}
	result, err := r.cpvCollection.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return int64(len(result.InsertedIDs)), nil
}

// SeedNUTS inserts NUTS codes if the collection is empty (idempotent)
func (r *MongoReferenceRepository) SeedNUTS(ctx context.Context, codes []models.NUTSCode) (int64, error) {
	count, err := r.nutsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(codes))
	for i := range codes {
		codes[i].BeforeCreate()
		docs[i] = codes[i]
	}
	result, err := r.nutsCollection.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return int64(len(result.InsertedIDs)), nil
}

// Ensure MongoReferenceRepository implements ReferenceRepository
var _ ReferenceRepository = (*MongoReferenceRepository)(nil)
