package services

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// TxRunner runs a function inside a MongoDB transaction.
// Satisfied by *database.Client.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) error) error
}
