package planner

import (
	"context"
	"testing"

	"mealdex/internal/catalog"
)

type MockTextGenerator struct {
	response string
	calls    int
}

func (m *MockTextGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.calls++
	return m.response, nil
}

func sampleFavorites() []catalog.MealSummary {
	return []catalog.MealSummary{
		{ID: "52772", Name: "Teriyaki Chicken Casserole", Category: "Chicken", Area: "Japanese"},
		{ID: "52771", Name: "Spicy Arrabiata Penne", Category: "Vegetarian", Area: "Italian"},
	}
}

func TestSuggestWeek(t *testing.T) {
	gen := &MockTextGenerator{
		response: `{"plan": [
			{"day": "monday", "meal_id": "52772", "note": "Light start"},
			{"day": "tuesday", "meal_id": "52771", "note": "Pasta night"}
		]}`,
	}
	suggester := NewSuggester(gen)

	plan, err := suggester.SuggestWeek(context.Background(), "two easy dinners", sampleFavorites())
	if err != nil {
		t.Fatalf("SuggestWeek failed: %v", err)
	}
	if gen.calls != 1 {
		t.Errorf("Expected 1 model call, got %d", gen.calls)
	}
	if len(plan) != 2 {
		t.Fatalf("Expected 2 suggestions, got %d", len(plan))
	}
	if plan[0].Day != "monday" || plan[0].MealID != "52772" {
		t.Errorf("Unexpected first suggestion: %+v", plan[0])
	}
}

func TestSuggestWeek_NoFavorites(t *testing.T) {
	suggester := NewSuggester(&MockTextGenerator{})
	if _, err := suggester.SuggestWeek(context.Background(), "anything", nil); err == nil {
		t.Fatal("Expected an error with no favorites")
	}
}

func TestSuggestWeek_RejectsUnknownMeal(t *testing.T) {
	gen := &MockTextGenerator{
		response: `{"plan": [{"day": "monday", "meal_id": "99999", "note": ""}]}`,
	}
	suggester := NewSuggester(gen)

	if _, err := suggester.SuggestWeek(context.Background(), "surprise me", sampleFavorites()); err == nil {
		t.Fatal("Expected an error for a meal id outside the favorite set")
	}
}

func TestSuggestWeek_RejectsUnknownDay(t *testing.T) {
	gen := &MockTextGenerator{
		response: `{"plan": [{"day": "Funday", "meal_id": "52772", "note": ""}]}`,
	}
	suggester := NewSuggester(gen)

	if _, err := suggester.SuggestWeek(context.Background(), "surprise me", sampleFavorites()); err == nil {
		t.Fatal("Expected an error for an invalid day name")
	}
}

func TestSuggestWeek_RejectsMalformedJSON(t *testing.T) {
	gen := &MockTextGenerator{response: "Here is your plan!"}
	suggester := NewSuggester(gen)

	if _, err := suggester.SuggestWeek(context.Background(), "surprise me", sampleFavorites()); err == nil {
		t.Fatal("Expected an error for a non-JSON model response")
	}
}
