package repository

import (
	"context"
	"errors"
	"time"

	"github.com/study-droid/studyflow/model"
	"github.com/study-droid/studyflow/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type GoalsRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for goals
func GetGoalsRepo(client *mongo.Client) *GoalsRepo {
	dbName := utils.GetEnvAsString("MONGO_DB", "studyflow")
	collectionName := utils.GetEnvAsString("GOALS_COLLECTION", "goals")
	return &GoalsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// Adds a new goal into the database
func (r *GoalsRepo) CreateGoal(ctx context.Context, goal *model.Goal) error {
	timer := utils.TrackDBOperation("insert", "goals")
	defer timer.ObserveDuration()

	if goal.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, goal)
	if err != nil {
		utils.TrackError("database", "goal_creation_failed")
		return err
	}

	return nil
}

// Retrieves the user's active goals
func (r *GoalsRepo) GetActiveGoals(ctx context.Context, userID string) ([]*model.Goal, error) {
	timer := utils.TrackDBOperation("find", "goals")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id":   userID,
		"is_active": true,
	}

	var goals []*model.Goal
	cursor, err := r.MongoCollection.Find(ctx, filter)
	if err != nil {
		utils.TrackError("database", "goal_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &goals); err != nil {
		utils.TrackError("database", "goal_decode_failed")
		return nil, err
	}
	return goals, nil
}

// Updates the current value of a goal
func (r *GoalsRepo) UpdateGoalProgress(ctx context.Context, goalID, userID string, currentValue float64) error {
	timer := utils.TrackDBOperation("update", "goals")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     goalID,
		"user_id": userID,
	}

	update := bson.M{
		"$set": bson.M{
			"current_value": currentValue,
			"updated_at":    time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "goal_update_failed")
		return err
	}

	if result.MatchedCount == 0 {
		utils.TrackError("database", "goal_not_found")
		return errors.New("goal not found")
	}

	return nil
}

// Marks a goal as inactive so it no longer feeds analytics
func (r *GoalsRepo) DeactivateGoal(ctx context.Context, goalID, userID string) error {
	timer := utils.TrackDBOperation("update", "goals")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     goalID,
		"user_id": userID,
	}

	update := bson.M{
		"$set": bson.M{
			"is_active":  false,
			"updated_at": time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "goal_update_failed")
		return err
	}

	if result.MatchedCount == 0 {
		utils.TrackError("database", "goal_not_found")
		return errors.New("goal not found")
	}

	return nil
}
