package dto

type RecordAttemptRequest struct {
	FlashcardID string `json:"flashcard_id" binding:"required"`
	IsCorrect   bool   `json:"is_correct"`
	TimeSpent   *int   `json:"time_spent" binding:"omitempty,gt=0"` // seconds
}
