package db

import (
	"context"
	"testing"
	"time"

	"github.com/hilthontt/huddle/internal/infrastructure/configs"
	"github.com/stretchr/testify/require"
)

func TestNewMongoConfig_DefaultTimeout(t *testing.T) {
	cfg := NewMongoConfig(configs.MongoDBConfig{URI: "mongodb://localhost:27017", Database: "huddle"})
	require.Equal(t, DefaultConnectionTimeout, cfg.ConnectionTimeout)

	cfg = NewMongoConfig(configs.MongoDBConfig{URI: "u", Database: "d", ConnectionTimeout: 3 * time.Second})
	require.Equal(t, 3*time.Second, cfg.ConnectionTimeout)
}

func TestNewMongoClient_RequiresConfig(t *testing.T) {
	ctx := context.Background()

	_, err := NewMongoClient(ctx, nil)
	require.EqualError(t, err, "mongodb config is required")

	_, err = NewMongoClient(ctx, &MongoConfig{Database: "huddle"})
	require.EqualError(t, err, "mongodb URI is required")

	_, err = NewMongoClient(ctx, &MongoConfig{URI: "mongodb://localhost:27017"})
	require.EqualError(t, err, "mongodb database is required")
}

func TestGetDatabase_NilSafe(t *testing.T) {
	require.Nil(t, GetDatabase(nil, &MongoConfig{}))
	require.NoError(t, DisconnectMongo(context.Background(), nil))
}
