package db

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/markjakearzadon/denovi-gobackend/internal/services"
)

// Connect opens a MongoDB client for uri and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetRetryWrites(true))
	if err != nil {
		return nil, err
	}

	// Ping to verify connection
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	log.Info().Str("section", "db").Msg("Connected to MongoDB")
	return client, nil
}

// EnsureIndexes creates the indexes backing announcement listing, cleanup
// and admin login.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(services.AnnouncementCollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "start_date", Value: -1}},
			Options: options.Index().SetName("start_date_desc"),
		},
		{
			Keys:    bson.D{{Key: "is_active", Value: 1}, {Key: "end_date", Value: 1}},
			Options: options.Index().SetName("active_end_date"),
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(services.UserCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	return err
}
