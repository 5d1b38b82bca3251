package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// 폼 선택지
var (
	Sexes          = []string{"Male", "Female"}
	ActivityLevels = []string{"Sedentary", "Lightly active", "Moderately active", "Very active", "Extremely active"}
	Goals          = []string{"Maintain weight", "Lose weight", "Gain weight", "Muscle gain"}
)

// UserProfile is the biometric part of the form. It is read once per submit
// and never mutated afterwards.
type UserProfile struct {
	Age           int    `json:"age" form:"age" validate:"min=1,max=120" example:"25"`
	Sex           string `json:"sex" form:"sex" validate:"sex" example:"Male"`
	HeightCM      int    `json:"height_cm" form:"height_cm" validate:"min=50,max=300" example:"170"`
	WeightKG      int    `json:"weight_kg" form:"weight_kg" validate:"min=10,max=500" example:"70"`
	ActivityLevel string `json:"activity_level" form:"activity_level" validate:"activity_level" example:"Sedentary"`
	Goal          string `json:"goal" form:"goal" validate:"goal" example:"Maintain weight"`
}

func DefaultProfile() UserProfile {
	return UserProfile{
		Age:           25,
		Sex:           Sexes[0],
		HeightCM:      170,
		WeightKG:      70,
		ActivityLevel: ActivityLevels[0],
		Goal:          Goals[0],
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	choices := map[string][]string{
		"sex":            Sexes,
		"activity_level": ActivityLevels,
		"goal":           Goals,
	}
	for tag, options := range choices {
		options := options
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return slices.Contains(options, fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("models: register %s validation: %v", tag, err))
		}
	}
	return v
}

// ValidationError lists every profile field that is out of range or not one
// of the allowed choices.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid profile fields: " + strings.Join(e.Fields, ", ")
}

func (p UserProfile) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Fields: fields}
}
