package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prequaliq/prequaliq_backend/internal/models"
)

// MongoQuestionnaireRepository implements QuestionnaireRepository for MongoDB
// #ORM_INTEGRATION: MongoDB driver-based repository implementation
type MongoQuestionnaireRepository struct {
	collection *mongo.Collection
}

// NewMongoQuestionnaireRepository creates a new MongoDB questionnaire repository
func NewMongoQuestionnaireRepository(db *mongo.Database) *MongoQuestionnaireRepository {
	return &MongoQuestionnaireRepository{
		collection: db.Collection(models.Questionnaire{}.CollectionName()),
	}
}

// Create creates a new questionnaire
func (r *MongoQuestionnaireRepository) Create(ctx context.Context, questionnaire *models.Questionnaire) error {
	questionnaire.BeforeCreate()
	_, err := r.collection.InsertOne(ctx, questionnaire)
	return err
}

// GetByID finds a questionnaire by ID
func (r *MongoQuestionnaireRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Questionnaire, error) {
	var questionnaire models.Questionnaire
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&questionnaire)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrQuestionnaireNotFound
	}
	if err != nil {
		return nil, err
	}
	return &questionnaire, nil
}

// Update updates a questionnaire
func (r *MongoQuestionnaireRepository) Update(ctx context.Context, questionnaire *models.Questionnaire) error {
	questionnaire.BeforeUpdate()
	filter := bson.M{"_id": questionnaire.ID}
	update := bson.M{"$set": questionnaire}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrQuestionnaireNotFound
	}
	return nil
}

// Delete deletes a questionnaire
func (r *MongoQuestionnaireRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return models.ErrQuestionnaireNotFound
	}
	return nil
}

// ListByEntity lists questionnaires owned by a procuring entity
func (r *MongoQuestionnaireRepository) ListByEntity(ctx context.Context, entityID primitive.ObjectID, opts PaginationOptions) (*PaginatedResult[models.Questionnaire], error) {
	filter := bson.M{"procuring_entity_id": entityID}
	return r.list(ctx, filter, opts)
}

// ListActive lists active questionnaires, optionally filtered by CPV tag
// #BUSINESS_RULE: Suppliers only browse active questionnaires
func (r *MongoQuestionnaireRepository) ListActive(ctx context.Context, cpvCodeID *primitive.ObjectID, opts PaginationOptions) (*PaginatedResult[models.Questionnaire], error) {
	filter := bson.M{"is_active": true}
	if cpvCodeID != nil {
		filter["cpv_code_id"] = *cpvCodeID
	}
	return r.list(ctx, filter, opts)
}

func (r *MongoQuestionnaireRepository) list(ctx context.Context, filter bson.M, opts PaginationOptions) (*PaginatedResult[models.Questionnaire], error) {
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

	var questionnaires []models.Questionnaire
	if err := cursor.All(ctx, &questionnaires); err != nil {
		return nil, err
	}

	totalPages := int(total) / opts.Limit
	if int(total)%opts.Limit > 0 {
		totalPages++
	}

	return &PaginatedResult[models.Questionnaire]{
		Items:      questionnaires,
		TotalCount: total,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: totalPages,
	}, nil
}

// Ensure MongoQuestionnaireRepository implements QuestionnaireRepository
var _ QuestionnaireRepository = (*MongoQuestionnaireRepository)(nil)

// MongoQuestionRepository implements QuestionRepository for MongoDB
// #ORM_INTEGRATION: MongoDB driver-based repository implementation
type MongoQuestionRepository struct {
	collection *mongo.Collection
}

// NewMongoQuestionRepository creates a new MongoDB question repository
func NewMongoQuestionRepository(db *mongo.Database) *MongoQuestionRepository {
	return &MongoQuestionRepository{
		collection: db.Collection(models.Question{}.CollectionName()),
	}
}

// CreateMany inserts a batch of questions
func (r *MongoQuestionRepository) CreateMany(ctx context.Context, questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}

	docs := make([]interface{}, len(questions))
	for i := range questions {
		questions[i].BeforeCreate()
		docs[i] = questions[i]
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// GetByID finds a question by ID
func (r *MongoQuestionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	var question models.Question
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&question)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// ListByQuestionnaire lists a questionnaire's questions in display order
func (r *MongoQuestionRepository) ListByQuestionnaire(ctx context.Context, questionnaireID primitive.ObjectID) ([]models.Question, error) {
	filter := bson.M{"questionnaire_id": questionnaireID}
	findOpts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []models.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// DeleteByQuestionnaire deletes all questions for a questionnaire
func (r *MongoQuestionRepository) DeleteByQuestionnaire(ctx context.Context, questionnaireID primitive.ObjectID) (int64, error) {
	filter := bson.M{"questionnaire_id": questionnaireID}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// CountByQuestionnaire counts questions for a questionnaire
func (r *MongoQuestionRepository) CountByQuestionnaire(ctx context.Context, questionnaireID primitive.ObjectID) (int64, error) {
	filter := bson.M{"questionnaire_id": questionnaireID}
	return r.collection.CountDocuments(ctx, filter)
}

// Ensure MongoQuestionRepository implements QuestionRepository
var _ QuestionRepository = (*MongoQuestionRepository)(nil)
