package prompt

import (
	"fmt"

	"CaloriesAdvisor/internal/models"
)

const template = `
You are an expert nutritionist who can analyze a meal from an image and provide a detailed, personalized health plan.

First, please identify all the food items in the image and estimate the total calories. Provide a list with the calories for each item.

Based on the following user details, provide a personalized diet and exercise recommendation.
- Age: %d years
- Sex: %s
- Height: %d cm
- Weight: %d kg
- Activity Level: %s
- Health Goal: %s

Structure your response in two parts:
1. **Meal Analysis & Calories:**
    - Item 1 - no of calories
    - Item 2 - no of calories
    - ...
    - Total Estimated Calories: [Total]
2. **Personalized Recommendation:**
    - Provide a short summary of the user's estimated daily calorie needs based on their details and goal.
    - Give practical advice on how to adjust their diet (e.g., portion sizes, food types).
    - Suggest a simple exercise plan to help them achieve their goal.
`

// Build renders the instruction text for one profile.
func Build(p models.UserProfile) string {
	return fmt.Sprintf(template, p.Age, p.Sex, p.HeightCM, p.WeightKG, p.ActivityLevel, p.Goal)
}
