package model

import "time"

type FlashcardAttempt struct {
	AttemptID   string    `bson:"_id,omitempty" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	FlashcardID string    `bson:"flashcard_id" json:"flashcard_id"`
	IsCorrect   bool      `bson:"is_correct" json:"is_correct"`
	TimeSpent   *int      `bson:"time_spent,omitempty" json:"time_spent,omitempty"` // seconds
	AttemptedAt time.Time `bson:"attempted_at" json:"attempted_at"`
}
