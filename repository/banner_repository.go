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

// BannerRepository stores homepage slider/ad entries.
type BannerRepository interface {
	Create(ctx context.Context, banner *models.Banner) error
	Find(ctx context.Context, activeOnly bool) ([]models.Banner, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MongoBannerRepository struct {
	collection *mongo.Collection
}

func NewMongoBannerRepository(db *mongo.Database) *MongoBannerRepository {
	return &MongoBannerRepository{collection: db.Collection("banners")}
}

func (r *MongoBannerRepository) Create(ctx context.Context, banner *models.Banner) error {
	banner.CreatedAt = time.Now().UTC()
	res, err := r.collection.InsertOne(ctx, banner)
	if err != nil {
		return err
	}
	banner.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoBannerRepository) Find(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var banners []models.Banner
	if err := cursor.All(ctx, &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *MongoBannerRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoBannerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
