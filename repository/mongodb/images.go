package mongodb

import (
	"context"
	"errors"
	"time"

	"obrafoto/models"
	"obrafoto/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ImageStore is the MongoDB implementation of repository.ImageStore, backed
// by the images collection the original clients already write to.
type ImageStore struct {
	collection *mongo.Collection
}

func NewImageStore(client *mongo.Client, db string) *ImageStore {
	return &ImageStore{collection: client.Database(db).Collection("images")}
}

func (s *ImageStore) Put(ctx context.Context, img *models.Image) (string, error) {
	if img.HasPayload() && img.Img.ContentType == "" {
		return "", repository.ErrPayloadWithoutType
	}
	if img.CreatedAt.IsZero() {
		img.CreatedAt = time.Now()
	}

	result, err := s.collection.InsertOne(ctx, img)
	if err != nil {
		return "", err
	}
	id, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	img.ID = id
	return id.Hex(), nil
}

func (s *ImageStore) Get(ctx context.Context, id string) (*models.Image, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	img := &models.Image{}
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(img)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (s *ImageStore) ListByFolder(ctx context.Context, folder string) ([]models.Image, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := s.collection.Find(ctx, bson.M{"folder": folder}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var images []models.Image
	if err = cursor.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}

func (s *ImageStore) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Folders groups the collection by folder in one aggregation instead of a
// distinct() followed by a query per folder, which falls over once folder
// cardinality grows.
func (s *ImageStore) Folders(ctx context.Context) ([]repository.FolderSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "folder", Value: bson.D{{Key: "$nin", Value: bson.A{nil, ""}}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$folder"},
			{Key: "lastActivity", Value: bson.D{{Key: "$max", Value: "$createdAt"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "lastActivity", Value: -1}}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Name         string    `bson:"_id"`
		LastActivity time.Time `bson:"lastActivity"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	folders := make([]repository.FolderSummary, 0, len(rows))
	for _, row := range rows {
		folders = append(folders, repository.FolderSummary{
			Name:         row.Name,
			LastActivity: row.LastActivity,
		})
	}
	return folders, nil
}

func (s *ImageStore) LatestInFolder(ctx context.Context, folder string) (*models.Image, error) {
	findOptions := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	img := &models.Image{}
	err := s.collection.FindOne(ctx, bson.M{"folder": folder}, findOptions).Decode(img)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}
