package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates all required database indexes
// #IMPLEMENTATION_DECISION: Indexes created on application startup, creation is idempotent
// The unique compound indexes on questionnaire_responses and answers back the
// upsert semantics of the response lifecycle.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		collection string
		models     []mongo.IndexModel
	}{
		{
			collection: CollectionUsers,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "email", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
				{
					Keys: bson.D{{Key: "role", Value: 1}},
				},
			},
		},
		{
			collection: CollectionSuppliers,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "user_id", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
				{
					Keys: bson.D{{Key: "status", Value: 1}},
				},
			},
		},
		{
			collection: CollectionProcuringEntities,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "user_id", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
			},
		},
		{
			collection: CollectionCPVCodes,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "code", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
				{
					Keys: bson.D{{Key: "parent_code", Value: 1}},
				},
			},
		},
		{
			collection: CollectionNUTSCodes,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "code", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
			},
		},
		{
			collection: CollectionQuestionnaires,
			models: []mongo.IndexModel{
				{
					Keys: bson.D{
						{Key: "procuring_entity_id", Value: 1},
						{Key: "is_active", Value: 1},
					},
				},
				{
					Keys: bson.D{{Key: "cpv_code_id", Value: 1}},
				},
			},
		},
		{
			collection: CollectionQuestions,
			models: []mongo.IndexModel{
				{
					Keys: bson.D{
						{Key: "questionnaire_id", Value: 1},
						{Key: "order", Value: 1},
					},
				},
			},
		},
		{
			collection: CollectionQuestionnaireResponses,
			models: []mongo.IndexModel{
				{
					Keys: bson.D{
						{Key: "questionnaire_id", Value: 1},
						{Key: "supplier_id", Value: 1},
					},
					Options: options.Index().SetUnique(true),
				},
				{
					Keys: bson.D{{Key: "supplier_id", Value: 1}},
				},
				{
					Keys: bson.D{{Key: "status", Value: 1}},
				},
			},
		},
		{
			collection: CollectionAnswers,
			models: []mongo.IndexModel{
				{
					Keys: bson.D{
						{Key: "response_id", Value: 1},
						{Key: "question_id", Value: 1},
					},
					Options: options.Index().SetUnique(true),
				},
			},
		},
		{
			collection: CollectionDocuments,
			models: []mongo.IndexModel{
				{
					Keys: bson.D{{Key: "supplier_id", Value: 1}},
				},
				{
					Keys: bson.D{{Key: "procuring_entity_id", Value: 1}},
				},
			},
		},
		{
			collection: CollectionAnnouncements,
			models: []mongo.IndexModel{
				{
					Keys: bson.D{
						{Key: "audience", Value: 1},
						{Key: "expires_at", Value: 1},
					},
				},
				{
					Keys: bson.D{{Key: "created_at", Value: -1}},
				},
			},
		},
	}

	for _, idx := range indexes {
		collection := c.Collection(idx.collection)
		_, err := collection.Indexes().CreateMany(ctx, idx.models)
		if err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", idx.collection, err)
		}
	}

	return nil
}
