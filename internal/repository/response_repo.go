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

// MongoResponseRepository implements ResponseRepository for MongoDB
// #ORM_INTEGRATION: MongoDB driver-based repository implementation
// The unique index on (questionnaire_id, supplier_id) backs the
// one-response-per-supplier-per-questionnaire invariant.
type MongoResponseRepository struct {
	collection *mongo.Collection
}

// NewMongoResponseRepository creates a new MongoDB response repository
func NewMongoResponseRepository(db *mongo.Database) *MongoResponseRepository {
	return &MongoResponseRepository{
		collection: db.Collection(models.QuestionnaireResponse{}.CollectionName()),
	}
}

// Create creates a new response
func (r *MongoResponseRepository) Create(ctx context.Context, response *models.QuestionnaireResponse) error {
	response.BeforeCreate()
	_, err := r.collection.InsertOne(ctx, response)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrResponseExists
	}
	return err
}

// GetByID finds a response by ID
func (r *MongoResponseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.QuestionnaireResponse, error) {
	var response models.QuestionnaireResponse
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&response)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrResponseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByQuestionnaireAndSupplier finds the single response for a pair
func (r *MongoResponseRepository) GetByQuestionnaireAndSupplier(ctx context.Context, questionnaireID, supplierID primitive.ObjectID) (*models.QuestionnaireResponse, error) {
	var response models.QuestionnaireResponse
	filter := bson.M{
		"questionnaire_id": questionnaireID,
		"supplier_id":      supplierID,
	}
	err := r.collection.FindOne(ctx, filter).Decode(&response)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrResponseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// MarkSubmitted transitions a draft response to submitted
// #IMPLEMENTATION_DECISION: The filter includes status=DRAFT so a concurrent
// second submit matches nothing instead of overwriting the first submitted_at
func (r *MongoResponseRepository) MarkSubmitted(ctx context.Context, id primitive.ObjectID) (*models.QuestionnaireResponse, error) {
	now := time.Now().UTC()
	filter := bson.M{
		"_id":    id,
		"status": models.ResponseStatusDraft,
	}
	update := bson.M{
		"$set": bson.M{
			"status":       models.ResponseStatusSubmitted,
			"submitted_at": now,
			"updated_at":   now,
		},
	}

	findOpts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var response models.QuestionnaireResponse
	err := r.collection.FindOneAndUpdate(ctx, filter, update, findOpts).Decode(&response)
	if err == mongo.ErrNoDocuments {
		// Either the response is gone or it was already submitted
		existing, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, models.ErrResponseNotFound
		}
		if existing.IsSubmitted() {
			return nil, models.ErrResponseSubmitted
		}
		return nil, models.ErrResponseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ListByQuestionnaire lists responses for a questionnaire
func (r *MongoResponseRepository) ListByQuestionnaire(ctx context.Context, questionnaireID primitive.ObjectID, opts PaginationOptions) (*PaginatedResult[models.QuestionnaireResponse], error) {
	filter := bson.M{"questionnaire_id": questionnaireID}
	return r.list(ctx, filter, opts)
}

// ListBySupplier lists responses belonging to a supplier
func (r *MongoResponseRepository) ListBySupplier(ctx context.Context, supplierID primitive.ObjectID, opts PaginationOptions) (*PaginatedResult[models.QuestionnaireResponse], error) {
	filter := bson.M{"supplier_id": supplierID}
	return r.list(ctx, filter, opts)
}

func (r *MongoResponseRepository) list(ctx context.Context, filter bson.M, opts PaginationOptions) (*PaginatedResult[models.QuestionnaireResponse], error) {
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

	var responses []models.QuestionnaireResponse
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}

	totalPages := int(total) / opts.Limit
	if int(total)%opts.Limit > 0 {
		totalPages++
	}

	return &PaginatedResult[models.QuestionnaireResponse]{
		Items:      responses,
		TotalCount: total,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: totalPages,
	}, nil
}

// CountSubmittedByQuestionnaire counts submitted responses for a questionnaire
func (r *MongoResponseRepository) CountSubmittedByQuestionnaire(ctx context.Context, questionnaireID primitive.ObjectID) (int64, error) {
	filter := bson.M{
		"questionnaire_id": questionnaireID,
		"status":           models.ResponseStatusSubmitted,
	}
	return r.collection.CountDocuments(ctx, filter)
}

// DeleteByQuestionnaire deletes all responses for a questionnaire and
// returns the deleted response IDs for answer cleanup
func (r *MongoResponseRepository) DeleteByQuestionnaire(ctx context.Context, questionnaireID primitive.ObjectID) ([]primitive.ObjectID, error) {
	filter := bson.M{"questionnaire_id": questionnaireID}

	findOpts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
	}

	if len(ids) > 0 {
		if _, err := r.collection.DeleteMany(ctx, filter); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// Ensure MongoResponseRepository implements ResponseRepository
var _ ResponseRepository = (*MongoResponseRepository)(nil)

// MongoAnswerRepository implements AnswerRepository for MongoDB
// #ORM_INTEGRATION: MongoDB driver-based repository implementation
// The unique index on (response_id, question_id) backs the upsert semantics.
type MongoAnswerRepository struct {
	collection *mongo.Collection
}

// NewMongoAnswerRepository creates a new MongoDB answer repository
func NewMongoAnswerRepository(db *mongo.Database) *MongoAnswerRepository {
	return &MongoAnswerRepository{
		collection: db.Collection(models.Answer{}.CollectionName()),
	}
}

// Upsert inserts or overwrites the answer for (responseID, questionID)
// #IMPLEMENTATION_DECISION: Re-saving a question overwrites the previous
// answer rather than versioning it; drafts keep only the latest value.
// An existing document reference is carried forward when the incoming
// answer does not name one.
func (r *MongoAnswerRepository) Upsert(ctx context.Context, answer *models.Answer) error {
	now := time.Now().UTC()
	filter := bson.M{
		"response_id": answer.ResponseID,
		"question_id": answer.QuestionID,
	}
	set := bson.M{
		"answer_text":  answer.AnswerText,
		"answer_value": answer.AnswerValue,
		"updated_at":   now,
	}
	if answer.DocumentID != nil {
		set["document_id"] = answer.DocumentID
	}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":         primitive.NewObjectID(),
			"response_id": answer.ResponseID,
			"question_id": answer.QuestionID,
			"created_at":  now,
		},
	}

	updateOpts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, updateOpts)
	return err
}

// GetByResponseAndQuestion finds the answer for a (response, question) pair
func (r *MongoAnswerRepository) GetByResponseAndQuestion(ctx context.Context, responseID, questionID primitive.ObjectID) (*models.Answer, error) {
	var answer models.Answer
	filter := bson.M{
		"response_id": responseID,
		"question_id": questionID,
	}
	err := r.collection.FindOne(ctx, filter).Decode(&answer)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrAnswerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// ListByResponse lists all answers belonging to a response
func (r *MongoAnswerRepository) ListByResponse(ctx context.Context, responseID primitive.ObjectID) ([]models.Answer, error) {
	filter := bson.M{"response_id": responseID}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var answers []models.Answer
	if err := cursor.All(ctx, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

// DeleteByResponses deletes all answers belonging to the given responses
func (r *MongoAnswerRepository) DeleteByResponses(ctx context.Context, responseIDs []primitive.ObjectID) (int64, error) {
	if len(responseIDs) == 0 {
		return 0, nil
	}
	filter := bson.M{"response_id": bson.M{"$in": responseIDs}}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// Ensure MongoAnswerRepository implements AnswerRepository
var _ AnswerRepository = (*MongoAnswerRepository)(nil)
