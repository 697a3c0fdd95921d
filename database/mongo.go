package database

import (
	"context"
	"log"
	"time"

	"obrafoto/config"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Connect opens the MongoDB client and verifies it with a ping. The caller
// owns the returned client and passes it to the repositories.
func Connect(cfg *config.Config) (*mongo.Client, error) {
	connectionString := options.Client().ApplyURI(cfg.MongoURL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectionString)
	if err != nil {
		log.Println("Mongo Connect error:", err)
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Println("Mongo Ping error:", err)
		return nil, err
	}

	log.Println("MongoDB connected successfully")
	return client, nil
}
