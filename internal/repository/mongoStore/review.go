package mongoStore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shoeshop/internal/domain"
	"shoeshop/pkg/prometheus"
)

const reviewCollectionName = "reviews"

type ReviewStore struct {
	collection *mongo.Collection
	log        *slog.Logger
}

func NewReviewStore(db *mongo.Database, log *slog.Logger) *ReviewStore {
	return &ReviewStore{collection: db.Collection(reviewCollectionName), log: log}
}

// EnsureIndexes backs the per-shoe listing and the rating aggregation.
func (s *ReviewStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "shoe_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create review index: %w", err)
	}
	return nil
}

func (s *ReviewStore) CreateReview(ctx context.Context, review *domain.Review) error {
	defer prometheus.ObserveQuery("insert", reviewCollectionName, time.Now())

	result, err := s.collection.InsertOne(ctx, review)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}
	s.log.Info("Review saved", "review_id", review.ID.Hex(), "shoe_id", review.ShoeID, "rating", review.Rating)
	return nil
}

func (s *ReviewStore) ListReviewsByShoe(ctx context.Context, shoeID string, page domain.Page) ([]domain.Review, int, error) {
	defer prometheus.ObserveQuery("list", reviewCollectionName, time.Now())

	filter := bson.M{"shoe_id": shoeID}

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews for shoe %s: %w", shoeID, err)
	}

	findOptions := options.Find().
		SetLimit(int64(page.Limit)).
		SetSkip(int64(page.Offset)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews for shoe %s: %w", shoeID, err)
	}
	defer cursor.Close(ctx)

	var reviews []domain.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("failed to decode reviews for shoe %s: %w", shoeID, err)
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, int(total), nil
}

// RatingSummary averages the ratings of one shoe. A shoe without reviews gets a zero summary.
func (s *ReviewStore) RatingSummary(ctx context.Context, shoeID string) (*domain.RatingSummary, error) {
	defer prometheus.ObserveQuery("rating", reviewCollectionName, time.Now())

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "shoe_id", Value: shoeID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$shoe_id"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "average", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings for shoe %s: %w", shoeID, err)
	}
	defer cursor.Close(ctx)

	summary := &domain.RatingSummary{ShoeID: shoeID}
	if cursor.Next(ctx) {
		if err := cursor.Decode(summary); err != nil {
			return nil, fmt.Errorf("failed to decode rating summary: %w", err)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rating summary: %w", err)
	}
	return summary, nil
}

func (s *ReviewStore) DeleteReview(ctx context.Context, id string) error {
	defer prometheus.ObserveQuery("delete", reviewCollectionName, time.Now())

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("review id %q: %w", id, domain.ErrInvalidID)
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("review %s: %w", id, domain.ErrRecordNotFound)
	}
	return nil
}

// DeleteReviewsByShoe drops every review of a removed shoe.
func (s *ReviewStore) DeleteReviewsByShoe(ctx context.Context, shoeID string) (int64, error) {
	defer prometheus.ObserveQuery("delete_many", reviewCollectionName, time.Now())

	result, err := s.collection.DeleteMany(ctx, bson.M{"shoe_id": shoeID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete reviews of shoe %s: %w", shoeID, err)
	}
	return result.DeletedCount, nil
}
