package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/niharika-studio/portfolio-api/internal/core/domain"
	"github.com/niharika-studio/portfolio-api/internal/core/ports"
)

const imagesCollection = "images"

type ImageRepository struct {
	coll *mongo.Collection
}

func NewImageRepository(db *mongo.Database) *ImageRepository {
	return &ImageRepository{coll: db.Collection(imagesCollection)}
}

type mongoImage struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	ImageURL     string             `bson:"image_url"`
	MediaID      string             `bson:"media_id"`
	Category     string             `bson:"category"`
	Orientation  string             `bson:"orientation"`
	UploadMethod string             `bson:"upload_method"`
	UploadedAt   time.Time          `bson:"uploaded_at"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (r *ImageRepository) Create(ctx context.Context, img *domain.Image) (*domain.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoImage{
		Title:        img.Title,
		Description:  img.Description,
		ImageURL:     img.ImageURL,
		MediaID:      img.MediaID,
		Category:     string(img.Category),
		Orientation:  string(img.Orientation),
		UploadMethod: string(img.UploadMethod),
		UploadedAt:   img.UploadedAt,
		CreatedAt:    img.CreatedAt,
		UpdatedAt:    img.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert image: %w", err)
	}

	created := *img
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ImageRepository) FindByID(ctx context.Context, id string) (*domain.Image, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id can never match a record.
		return nil, domain.ErrImageNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoImage
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("find image: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrImageNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

func (r *ImageRepository) List(ctx context.Context, filter ports.ImageFilter) ([]*domain.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Orientation != "" {
		query["orientation"] = filter.Orientation
	}

	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer cursor.Close(ctx)

	images := make([]*domain.Image, 0)
	for cursor.Next(ctx) {
		var doc mongoImage
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		images = append(images, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return images, nil
}

func (r *ImageRepository) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	values, err := r.coll.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

// EnsureIndexes creates the lookup indexes on the images collection.
func (r *ImageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "orientation", Value: 1}}},
		{Keys: bson.D{{Key: "uploaded_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (d *mongoImage) toDomain() *domain.Image {
	return &domain.Image{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		ImageURL:     d.ImageURL,
		MediaID:      d.MediaID,
		Category:     domain.Category(d.Category),
		Orientation:  domain.Orientation(d.Orientation),
		UploadMethod: domain.UploadMethod(d.UploadMethod),
		UploadedAt:   d.UploadedAt,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
