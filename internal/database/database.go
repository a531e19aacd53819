package database

import (
	"context"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultDatabaseName = "brgykonek"

// Mongo wraps the connected client and the selected database handle.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect establishes the MongoDB connection and pings it before returning.
func Connect(mongoURI string) (*Mongo, error) {
	// Use longer timeout for Atlas connections
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoURI)
	clientOptions.SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	log.Println("✅ Connected to MongoDB")
	return &Mongo{
		Client: client,
		DB:     client.Database(databaseName(mongoURI)),
	}, nil
}

// Disconnect closes the MongoDB connection.
func (m *Mongo) Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

// databaseName extracts the database name from the connection string,
// falling back to the default when the URI does not carry one.
// Format: mongodb://.../database_name?...
func databaseName(mongoURI string) string {
	if mongoURI == "" {
		return defaultDatabaseName
	}
	parts := strings.Split(mongoURI, "/")
	if len(parts) > 3 {
		dbPart := strings.Split(parts[len(parts)-1], "?")[0]
		if dbPart != "" {
			return dbPart
		}
	}
	return defaultDatabaseName
}
