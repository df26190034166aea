package repository

import (
	"context"
	"errors"

	"github.com/study-droid/studyflow/model"
	"github.com/study-droid/studyflow/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubjectsRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for subjects
func GetSubjectsRepo(client *mongo.Client) *SubjectsRepo {
	dbName := utils.GetEnvAsString("MONGO_DB", "studyflow")
	collectionName := utils.GetEnvAsString("SUBJECTS_COLLECTION", "subjects")
	return &SubjectsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// Adds a new subject into the database
func (r *SubjectsRepo) CreateSubject(ctx context.Context, subject *model.Subject) error {
	timer := utils.TrackDBOperation("insert", "subjects")
	defer timer.ObserveDuration()

	if subject.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}
	if subject.Name == "" {
		utils.TrackError("database", "missing_subject_name")
		return errors.New("subject name is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, subject)
	if err != nil {
		utils.TrackError("database", "subject_creation_failed")
		return err
	}

	return nil
}

// Retrieves all subjects for a user, sorted by name
func (r *SubjectsRepo) GetUserSubjects(ctx context.Context, userID string) ([]*model.Subject, error) {
	timer := utils.TrackDBOperation("find", "subjects")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	var subjects []*model.Subject
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		utils.TrackError("database", "subject_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &subjects); err != nil {
		utils.TrackError("database", "subject_decode_failed")
		return nil, err
	}
	return subjects, nil
}

// Removes a specific subject from the database. Sessions that reference
// the subject keep their stale ID; analytics resolves those to "Unknown".
func (r *SubjectsRepo) DeleteSubject(ctx context.Context, subjectID, userID string) error {
	timer := utils.TrackDBOperation("delete", "subjects")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     subjectID,
		"user_id": userID,
	}

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.TrackError("database", "subject_deletion_failed")
		return err
	}

	if result.DeletedCount == 0 {
		utils.TrackError("database", "subject_not_found")
		return errors.New("subject not found")
	}

	return nil
}
