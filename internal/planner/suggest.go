// Package planner proposes weekly meal assignments drawn from the user's
// favorites, using an LLM for the selection.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"mealdex/internal/catalog"
	"mealdex/internal/llm"
	"mealdex/internal/mealplan"
)

// Suggestion assigns one favorite meal to one weekday.
type Suggestion struct {
	Day    string `json:"day"`
	MealID string `json:"meal_id"`
	Note   string `json:"note"`
}

// weekSuggestion is the JSON envelope the model is asked to return.
type weekSuggestion struct {
	Plan []Suggestion `json:"plan"`
}

// Suggester generates week suggestions from a favorite set.
type Suggester struct {
	textGen llm.TextGenerator
}

// NewSuggester creates a new Suggester instance.
func NewSuggester(textGen llm.TextGenerator) *Suggester {
	return &Suggester{textGen: textGen}
}

// SuggestWeek asks the model to assign favorites to weekdays, honoring the
// free-text request. Every returned suggestion references a meal from
// favorites and a valid weekday; anything else is rejected.
func (s *Suggester) SuggestWeek(ctx context.Context, request string, favorites []catalog.MealSummary) ([]Suggestion, error) {
	if len(favorites) == 0 {
		return nil, fmt.Errorf("no favorite meals to plan from")
	}

	var contextBuilder strings.Builder
	for i, m := range favorites {
		fmt.Fprintf(&contextBuilder, "Meal %d:\nID: %s\nName: %s\nCategory: %s\nArea: %s\n\n",
			i+1, m.ID, m.Name, m.Category, m.Area)
	}

	prompt := fmt.Sprintf(`
You are an expert meal planner. Based on the user's request and the provided list of saved meals, assign meals to days of the week.
Only use meals from the list below, referenced by their ID.

User Request: "%s"

Saved Meals:
%s

Instructions:
1. Assign at most one meal per day. Days may be left out if the user asks for fewer meals.
2. It's okay to repeat a meal if there aren't enough to fill the week.
3. Day names must be lowercase: monday, tuesday, wednesday, thursday, friday, saturday, sunday.
4. Return the result strictly as a JSON object with this structure:
{
  "plan": [
    {"day": "monday", "meal_id": "52772", "note": "Why this was chosen"},
    ...
  ]
}

Do not include any other text or formatting in your response.
`, request, contextBuilder.String())

	resp, err := s.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate week suggestion: %w", err)
	}

	var week weekSuggestion
	if err := json.Unmarshal([]byte(resp), &week); err != nil {
		return nil, fmt.Errorf("failed to parse week suggestion JSON: %w. Response: %s", err, resp)
	}
	if len(week.Plan) == 0 {
		return nil, fmt.Errorf("model returned an empty plan")
	}

	known := make(map[string]struct{}, len(favorites))
	for _, m := range favorites {
		known[m.ID] = struct{}{}
	}
	validDays := make(map[string]struct{}, len(mealplan.Weekdays))
	for _, d := range mealplan.Weekdays {
		validDays[d] = struct{}{}
	}

	for _, sug := range week.Plan {
		if _, ok := validDays[sug.Day]; !ok {
			return nil, fmt.Errorf("model suggested unknown day %q", sug.Day)
		}
		if _, ok := known[sug.MealID]; !ok {
			return nil, fmt.Errorf("model suggested meal id %q that is not a favorite", sug.MealID)
		}
	}
	return week.Plan, nil
}
