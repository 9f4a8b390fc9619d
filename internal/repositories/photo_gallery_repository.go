package repositories

import (
	"context"

	"github.com/sedp-portal/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PhotoGalleryRepository reads gallery items
type PhotoGalleryRepository interface {
	List(ctx context.Context) ([]models.PhotoGalleryItem, error)
}

// MongoPhotoGalleryRepository implements PhotoGalleryRepository for MongoDB
type MongoPhotoGalleryRepository struct {
	collection *mongo.Collection
}

// NewMongoPhotoGalleryRepository creates a new MongoPhotoGalleryRepository
func NewMongoPhotoGalleryRepository(db *mongo.Database) *MongoPhotoGalleryRepository {
	return &MongoPhotoGalleryRepository{collection: db.Collection("photo_gallery")}
}

// List retrieves every gallery item, newest upload first
func (r *MongoPhotoGalleryRepository) List(ctx context.Context) ([]models.PhotoGalleryItem, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, galleryFindOptions())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []models.PhotoGalleryItem{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func galleryFindOptions() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}})
}
