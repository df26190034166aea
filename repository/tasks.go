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

type TasksRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for tasks
func GetTasksRepo(client *mongo.Client) *TasksRepo {
	dbName := utils.GetEnvAsString("MONGO_DB", "studyflow")
	collectionName := utils.GetEnvAsString("TASKS_COLLECTION", "tasks")
	return &TasksRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// Adds a new task into the database
func (r *TasksRepo) CreateTask(ctx context.Context, task *model.Task) error {
	timer := utils.TrackDBOperation("insert", "tasks")
	defer timer.ObserveDuration()

	if task.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, task)
	if err != nil {
		utils.TrackError("database", "task_creation_failed")
		return err
	}

	return nil
}

// Retrieves all tasks for a user
func (r *TasksRepo) GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	timer := utils.TrackDBOperation("find", "tasks")
	defer timer.ObserveDuration()

	var tasks []*model.Task
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "task_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tasks); err != nil {
		utils.TrackError("database", "task_decode_failed")
		return nil, err
	}
	return tasks, nil
}

// Retrieves the user's tasks created within [start, end]
func (r *TasksRepo) TasksInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.Task, error) {
	timer := utils.TrackDBOperation("find", "tasks")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": start, "$lte": end},
	}

	var tasks []*model.Task
	cursor, err := r.MongoCollection.Find(ctx, filter)
	if err != nil {
		utils.TrackError("database", "task_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tasks); err != nil {
		utils.TrackError("database", "task_decode_failed")
		return nil, err
	}
	return tasks, nil
}

// Toggles the completed status of a task
func (r *TasksRepo) ToggleTaskComplete(ctx context.Context, taskID, userID string) (bool, error) {
	timer := utils.TrackDBOperation("update", "tasks")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     taskID,
		"user_id": userID,
	}

	var task model.Task
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&task)
	if err != nil {
		utils.TrackError("database", "task_not_found")
		return false, err
	}

	newStatus := !task.Completed
	update := bson.M{
		"$set": bson.M{
			"completed":  newStatus,
			"updated_at": time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "task_update_failed")
		return false, err
	}

	if result.MatchedCount == 0 {
		utils.TrackError("database", "task_not_found")
		return false, errors.New("task not found")
	}

	if newStatus {
		utils.TrackTaskCompletion(userID)
	}

	return newStatus, nil
}

// Removes a specific task from the database
func (r *TasksRepo) DeleteTask(ctx context.Context, taskID, userID string) error {
	timer := utils.TrackDBOperation("delete", "tasks")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     taskID,
		"user_id": userID,
	}

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.TrackError("database", "task_deletion_failed")
		return err
	}

	if result.DeletedCount == 0 {
		utils.TrackError("database", "task_not_found")
		return errors.New("task not found")
	}

	return nil
}

// Counts the number of pending tasks for a user for display in the UI
func (r *TasksRepo) PendingCount(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "tasks")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx,
		bson.M{"user_id": userID, "completed": false})
	if err != nil {
		utils.TrackError("database", "pending_task_count_failed")
		return 0, err
	}
	return int(count), nil
}

// Counts the number of completed tasks for a user for display in the UI
func (r *TasksRepo) CompletedCount(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "tasks")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx,
		bson.M{"user_id": userID, "completed": true})
	if err != nil {
		utils.TrackError("database", "completed_task_count_failed")
		return 0, err
	}
	return int(count), nil
}
