package repository

import (
	"context"
	"errors"
	"time"

	"github.com/study-droid/studyflow/model"
	"github.com/study-droid/studyflow/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FlashcardsRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for flashcard attempts
func GetFlashcardsRepo(client *mongo.Client) *FlashcardsRepo {
	dbName := utils.GetEnvAsString("MONGO_DB", "studyflow")
	collectionName := utils.GetEnvAsString("FLASHCARD_ATTEMPTS_COLLECTION", "flashcard_attempts")
	return &FlashcardsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// Records a single flashcard attempt
func (r *FlashcardsRepo) RecordAttempt(ctx context.Context, attempt *model.FlashcardAttempt) error {
	timer := utils.TrackDBOperation("insert", "flashcard_attempts")
	defer timer.ObserveDuration()

	if attempt.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}
	if attempt.FlashcardID == "" {
		utils.TrackError("database", "missing_flashcard_id")
		return errors.New("flashcard ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, attempt)
	if err != nil {
		utils.TrackError("database", "attempt_creation_failed")
		return err
	}

	return nil
}

// Retrieves the user's attempts made within [start, end], newest first
func (r *FlashcardsRepo) AttemptsInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.FlashcardAttempt, error) {
	timer := utils.TrackDBOperation("find", "flashcard_attempts")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id":      userID,
		"attempted_at": bson.M{"$gte": start, "$lte": end},
	}
	opts := options.Find().SetSort(bson.D{{Key: "attempted_at", Value: -1}})

	var attempts []*model.FlashcardAttempt
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "attempt_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &attempts); err != nil {
		utils.TrackError("database", "attempt_decode_failed")
		return nil, err
	}
	return attempts, nil
}
