package repository

import (
	"context"
	"time"

	"shutterbay-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContactRepository stores contact form submissions for the admin inbox.
type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	FindAll(ctx context.Context) ([]models.ContactMessage, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MongoContactRepository struct {
	collection *mongo.Collection
}

func NewMongoContactRepository(db *mongo.Database) *MongoContactRepository {
	return &MongoContactRepository{collection: db.Collection("contact_messages")}
}

func (r *MongoContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	msg.CreatedAt = time.Now().UTC()
	res, err := r.collection.InsertOne(ctx, msg)
	if err != nil {
		return err
	}
	msg.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoContactRepository) FindAll(ctx context.Context) ([]models.ContactMessage, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.ContactMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *MongoContactRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
