package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/study-droid/studyflow/model"
	"github.com/study-droid/studyflow/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SessionsRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for study sessions
func GetSessionsRepo(client *mongo.Client) *SessionsRepo {
	dbName := utils.GetEnvAsString("MONGO_DB", "studyflow")
	collectionName := utils.GetEnvAsString("SESSIONS_COLLECTION", "study_sessions")
	return &SessionsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// Adds a new study session into the database
func (r *SessionsRepo) CreateSession(ctx context.Context, session *model.StudySession) error {
	timer := utils.TrackDBOperation("insert", "study_sessions")
	defer timer.ObserveDuration()

	if session.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}
	if session.StartTime.IsZero() {
		utils.TrackError("database", "missing_start_time")
		return errors.New("start time is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, session)
	if err != nil {
		utils.TrackError("database", "session_creation_failed")
		return err
	}

	return nil
}

// Retrieves a single session owned by the user
func (r *SessionsRepo) FindSession(ctx context.Context, sessionID, userID string) (*model.StudySession, error) {
	timer := utils.TrackDBOperation("find", "study_sessions")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     sessionID,
		"user_id": userID,
	}

	var session model.StudySession
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		utils.TrackError("database", "session_fetch_failed")
		return nil, err
	}
	return &session, nil
}

// Retrieves the user's sessions whose start time falls within [start, end],
// sorted by start time ascending. Records with a missing start time are
// skipped rather than surfaced to callers.
func (r *SessionsRepo) SessionsInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.StudySession, error) {
	timer := utils.TrackDBOperation("find", "study_sessions")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id":    userID,
		"start_time": bson.M{"$gte": start, "$lte": end},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "session_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var raw []*model.StudySession
	if err = cursor.All(ctx, &raw); err != nil {
		utils.TrackError("database", "session_decode_failed")
		return nil, err
	}

	sessions := make([]*model.StudySession, 0, len(raw))
	for _, s := range raw {
		if s.StartTime.IsZero() {
			log.Printf("skipping malformed session %s: no start time", s.SessionID)
			utils.TrackError("database", "session_malformed")
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// Marks a session as finished with an end time, optional focus score and notes
func (r *SessionsRepo) FinishSession(ctx context.Context, sessionID, userID string, end time.Time, focusScore *int, notes string) error {
	timer := utils.TrackDBOperation("update", "study_sessions")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     sessionID,
		"user_id": userID,
	}

	set := bson.M{"end_time": end}
	if focusScore != nil {
		set["focus_score"] = *focusScore
	}
	if notes != "" {
		set["notes"] = notes
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		utils.TrackError("database", "session_update_failed")
		return err
	}

	if result.MatchedCount == 0 {
		utils.TrackError("database", "session_not_found")
		return errors.New("session not found")
	}

	utils.TrackSessionCompletion(userID)
	return nil
}

// Removes a specific session from the database
func (r *SessionsRepo) DeleteSession(ctx context.Context, sessionID, userID string) error {
	timer := utils.TrackDBOperation("delete", "study_sessions")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     sessionID,
		"user_id": userID,
	}

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.TrackError("database", "session_deletion_failed")
		return err
	}

	if result.DeletedCount == 0 {
		utils.TrackError("database", "session_not_found")
		return errors.New("session not found")
	}

	return nil
}
