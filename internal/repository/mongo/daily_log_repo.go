package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DenGolivets/tracker-api/internal/domain"
	"github.com/DenGolivets/tracker-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const dailyLogCollectionName = "daily_logs"

// dailyLogDocument is the one-document-per-user-per-day storage unit.
// Meals and exercises live in separate arrays, mirroring the layout the
// mobile clients have been writing since the Firestore era, with the day's
// water intake as a scalar on the same document.
type dailyLogDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"userId"`
	Date        string             `bson:"date"`
	Meals       []domain.LogEntry  `bson:"meals,omitempty"`
	Exercises   []domain.LogEntry  `bson:"exercises,omitempty"`
	WaterIntake float64            `bson:"waterIntake,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// mongoDailyLogRepository implements repository.DailyLogRepository.
type mongoDailyLogRepository struct {
	collection *mongo.Collection
}

// NewMongoDailyLogRepository creates a new instance of mongoDailyLogRepository.
func NewMongoDailyLogRepository(db *mongo.Database) repository.DailyLogRepository {
	return &mongoDailyLogRepository{
		collection: db.Collection(dailyLogCollectionName),
	}
}

// GetDailyLogs returns the merged exercise+meal list for the day. Entries
// written before stable IDs existed get a positional fallback id so clients
// always have a usable key.
func (r *mongoDailyLogRepository) GetDailyLogs(ctx context.Context, userID primitive.ObjectID, dateKey string) ([]domain.LogEntry, error) {
	doc, err := r.findDay(ctx, userID, dateKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []domain.LogEntry{}, nil
		}
		return nil, err
	}

	merged := make([]domain.LogEntry, 0, len(doc.Exercises)+len(doc.Meals))
	for i, entry := range doc.Exercises {
		if entry.ID == "" {
			entry.ID = fmt.Sprintf("ex-%d", i)
		}
		merged = append(merged, entry)
	}
	for i, entry := range doc.Meals {
		if entry.ID == "" {
			entry.ID = fmt.Sprintf("meal-%d", i)
		}
		merged = append(merged, entry)
	}
	return merged, nil
}

// AddDailyLog appends the entry to its day document, creating the document
// on first write. Returns the date key the entry was filed under.
func (r *mongoDailyLogRepository) AddDailyLog(ctx context.Context, userID primitive.ObjectID, entry domain.LogEntry) (string, error) {
	if !entry.Kind.Valid() {
		return "", fmt.Errorf("invalid log kind %q", entry.Kind)
	}
	dateKey := entry.Date
	if dateKey == "" {
		dateKey = domain.DateKey(time.Now())
		entry.Date = dateKey
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	arrayField := "meals"
	if entry.Kind == domain.KindExercise {
		arrayField = "exercises"
	}

	filter := bson.M{"userId": userID, "date": dateKey}
	update := bson.M{
		"$push": bson.M{arrayField: entry},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
		"$setOnInsert": bson.M{
			"userId": userID,
			"date":   dateKey,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return "", err
	}
	return dateKey, nil
}

// GetWaterIntake returns the liters recorded for the day, 0 when the day
// document does not exist yet.
func (r *mongoDailyLogRepository) GetWaterIntake(ctx context.Context, userID primitive.ObjectID, dateKey string) (float64, error) {
	doc, err := r.findDay(ctx, userID, dateKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return doc.WaterIntake, nil
}

// UpdateWaterIntake accumulates liters onto the day's scalar with $inc,
// upserting the day document when needed.
func (r *mongoDailyLogRepository) UpdateWaterIntake(ctx context.Context, userID primitive.ObjectID, dateKey string, liters float64) error {
	filter := bson.M{"userId": userID, "date": dateKey}
	update := bson.M{
		"$inc": bson.M{"waterIntake": liters},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
		"$setOnInsert": bson.M{
			"userId": userID,
			"date":   dateKey,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// WaterUpdateMode declares the $inc semantics above.
func (r *mongoDailyLogRepository) WaterUpdateMode() repository.WaterUpdateMode {
	return repository.WaterUpdateIncrement
}

func (r *mongoDailyLogRepository) findDay(ctx context.Context, userID primitive.ObjectID, dateKey string) (*dailyLogDocument, error) {
	var doc dailyLogDocument
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "date": dateKey}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// EnsureDailyLogIndexes creates necessary indexes for the daily_logs collection.
func EnsureDailyLogIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
