package utils

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/study-droid/studyflow/model"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
	RegisterCustomValidators(Validate)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterCustomValidators(v)
	}
}

func RegisterCustomValidators(v *validator.Validate) {
	v.RegisterValidation("timerange", ValidateTimeRangeRule)
	v.RegisterValidation("goaltype", ValidateGoalTypeRule)
	v.RegisterValidation("priority", ValidatePriorityRule)
}

func ValidateTimeRangeRule(fl validator.FieldLevel) bool {
	_, err := model.ParseTimeRange(fl.Field().String())
	return err == nil
}

func ValidateGoalTypeRule(fl validator.FieldLevel) bool {
	switch model.GoalType(fl.Field().String()) {
	case model.GoalWeeklyHours, model.GoalDailySessions, model.GoalCompletionRate, model.GoalCustom:
		return true
	}
	return false
}

func ValidatePriorityRule(fl validator.FieldLevel) bool {
	switch model.Priority(fl.Field().String()) {
	case "", model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		return true
	}
	return false
}
