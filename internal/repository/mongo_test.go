package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"

	"medihealth-backend/internal/database"
)

// setupTestDB starts a throwaway MongoDB container and returns a database
// handle bound to it.
func setupTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := database.Connect(ctx, uri, "testdb")
	require.NoError(t, err)
	return db
}
