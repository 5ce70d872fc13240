package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"mealdex/internal/app"
	"mealdex/internal/catalog"
	"mealdex/internal/config"
	"mealdex/internal/database"
	"mealdex/internal/favorites"
	"mealdex/internal/llm"
	"mealdex/internal/mealplan"
	"mealdex/internal/metrics"
	"mealdex/internal/planner"
	"mealdex/internal/search"
	"mealdex/internal/shopping"
	"mealdex/internal/storage"
)

func main() {
	ctx := context.Background()
	cfg := config.NewFromEnv()

	// Pick the persistence backend: SQLite when a DB path is configured,
	// JSON files otherwise.
	var snaps storage.Snapshots
	var metricsStore *metrics.Store
	if cfg.DBPath != "" {
		db, err := database.NewDB(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		snaps = storage.NewDBStore(db.SQL)
		metricsStore = metrics.NewStore(db.SQL)
	} else {
		fileStore, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to initialize file storage: %v", err)
		}
		snaps = fileStore
	}

	var recorder catalog.RequestRecorder
	if metricsStore != nil {
		recorder = metricsStore
	}
	catalogClient := catalog.NewClient(cfg.CatalogBaseURL, recorder)

	favStore, err := favorites.NewStore(snaps)
	if err != nil {
		log.Fatalf("Failed to initialize favorites store: %v", err)
	}
	planStore, err := mealplan.NewStore(snaps)
	if err != nil {
		log.Fatalf("Failed to initialize meal plan store: %v", err)
	}

	var suggester *planner.Suggester
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		if closer, ok := geminiClient.(llm.Closer); ok {
			defer closer.Close()
		}
		suggester = planner.NewSuggester(geminiClient)
	}

	application := app.NewApp(catalogClient, favStore, planStore, suggester)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "search":
		runSearch(ctx, application, os.Args[2:])
	case "recipe":
		runRecipe(ctx, application, os.Args[2:])
	case "favorite":
		runFavorite(ctx, application, os.Args[2:])
	case "favorites":
		runFavorites(application)
	case "plan":
		runPlan(application, os.Args[2:])
	case "shopping-list":
		runShoppingList(ctx, application)
	case "suggest":
		runSuggest(ctx, application, cfg, os.Args[2:])
	case "metrics-cleanup":
		runMetricsCleanup(metricsStore, os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runSearch(ctx context.Context, application *app.App, args []string) {
	searchCmd := flag.NewFlagSet("search", flag.ExitOnError)
	category := searchCmd.String("category", "", "Keep only meals with this exact category")
	area := searchCmd.String("area", "", "Keep only meals with this exact area")
	sortKey := searchCmd.String("sort", "", "Sort order: name-asc or name-desc")
	searchCmd.Parse(args)

	term := strings.Join(searchCmd.Args(), " ")
	if strings.TrimSpace(term) == "" {
		fmt.Println("Please enter an ingredient to search.")
		return
	}

	meals, err := application.Search(ctx, term, search.Options{
		Category: *category,
		Area:     *area,
		Sort:     search.SortKey(*sortKey),
	})
	if errors.Is(err, catalog.ErrNotFound) {
		fmt.Println("Sorry, we didn't find any meal!")
		return
	}
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}
	if len(meals) == 0 {
		fmt.Println("No meals found for these filters.")
		return
	}

	for _, m := range meals {
		star := " "
		if application.IsFavorite(m.ID) {
			star = "★"
		}
		fmt.Printf("%s %-8s %s\n", star, m.ID, m.Name)
	}
}

func runRecipe(ctx context.Context, application *app.App, args []string) {
	if len(args) < 1 {
		log.Fatal("Usage: mealdex recipe <meal id>")
	}

	meal, err := application.Lookup(ctx, args[0])
	if errors.Is(err, catalog.ErrNotFound) {
		fmt.Println("Recipe not found.")
		return
	}
	if err != nil {
		log.Fatalf("Lookup failed: %v", err)
	}

	fmt.Printf("=== %s ===\n%s · %s\n\nIngredients:\n", meal.Name, meal.Category, meal.Area)
	for _, slot := range meal.Ingredients {
		if strings.TrimSpace(slot.Ingredient) == "" {
			continue
		}
		fmt.Printf("  - %-25s %s\n", strings.TrimSpace(slot.Ingredient), strings.TrimSpace(slot.Measure))
	}
	fmt.Printf("\nInstructions:\n%s\n", meal.Instructions)
	if meal.YouTube != "" {
		fmt.Printf("\nVideo: %s\n", meal.YouTube)
	}
}

func runFavorite(ctx context.Context, application *app.App, args []string) {
	if len(args) < 1 {
		log.Fatal("Usage: mealdex favorite <meal id>")
	}

	meal, err := application.Lookup(ctx, args[0])
	if errors.Is(err, catalog.ErrNotFound) {
		fmt.Println("Recipe not found.")
		return
	}
	if err != nil {
		log.Fatalf("Lookup failed: %v", err)
	}

	added, err := application.ToggleFavorite(meal.Summary())
	if err != nil {
		log.Fatalf("Failed to update favorites: %v", err)
	}
	if added {
		fmt.Printf("Added '%s' to favorites.\n", meal.Name)
	} else {
		fmt.Printf("Removed '%s' from favorites.\n", meal.Name)
	}
}

func runFavorites(application *app.App) {
	favs := application.Favorites()
	if len(favs) == 0 {
		fmt.Println("No favorite meals saved.")
		return
	}
	for _, m := range favs {
		fmt.Printf("%-8s %s\n", m.ID, m.Name)
	}
}

func runPlan(application *app.App, args []string) {
	if len(args) == 0 || args[0] == "show" {
		days := application.PlanDays()
		if len(days) == 0 {
			fmt.Println("Your meal plan is empty.")
			return
		}
		fmt.Println("=== WEEKLY MEAL PLAN ===")
		for _, d := range days {
			fmt.Printf("%s:\n", strings.ToUpper(d.Day[:1])+d.Day[1:])
			for _, m := range d.Meals {
				fmt.Printf("  %-8s %s\n", m.ID, m.Name)
			}
		}
		return
	}

	switch args[0] {
	case "add":
		if len(args) != 3 {
			log.Fatal("Usage: mealdex plan add <day> <meal id>")
		}
		meal, err := application.Lookup(context.Background(), args[2])
		if err != nil {
			log.Fatalf("Failed to look up meal %s: %v", args[2], err)
		}
		planned := mealplan.PlannedMeal{ID: meal.ID, Name: meal.Name, Thumb: meal.Thumb}
		if err := application.AddToPlan(args[1], planned); err != nil {
			log.Fatalf("Failed to add meal to plan: %v", err)
		}
		fmt.Printf("Added '%s' to %s.\n", meal.Name, strings.ToLower(args[1]))
	case "remove":
		if len(args) != 3 {
			log.Fatal("Usage: mealdex plan remove <day> <meal id>")
		}
		if err := application.RemoveFromPlan(args[1], args[2]); err != nil {
			log.Fatalf("Failed to remove meal from plan: %v", err)
		}
		fmt.Println("Removed.")
	default:
		log.Fatalf("Unknown plan subcommand: %s", args[0])
	}
}

func runShoppingList(ctx context.Context, application *app.App) {
	list, err := application.BuildShoppingList(ctx)
	if errors.Is(err, shopping.ErrEmptyPlan) {
		fmt.Println("Your meal plan is empty!")
		return
	}
	if err != nil {
		log.Fatalf("Failed to generate shopping list: %v", err)
	}

	fmt.Println("=== SHOPPING LIST ===")
	for _, item := range list {
		fmt.Printf("- %s\n", item.Display())
	}
}

func runSuggest(ctx context.Context, application *app.App, cfg *config.Config, args []string) {
	if err := cfg.RequireGemini(); err != nil {
		log.Fatalf("Plan suggestions are not configured: %v", err)
	}

	request := strings.Join(args, " ")
	if request == "" {
		request = "a balanced week"
	}

	fmt.Printf("Suggesting a week for: \"%s\"...\n", request)
	suggestions, err := application.SuggestPlan(ctx, request)
	if err != nil {
		log.Fatalf("Failed to suggest plan: %v", err)
	}

	for _, s := range suggestions {
		fmt.Printf("%-10s %s", s.Day, s.MealID)
		if s.Note != "" {
			fmt.Printf("  (%s)", s.Note)
		}
		fmt.Println()
	}
	fmt.Println("\nApplied to your plan. Run 'mealdex plan' to see the week.")
}

func runMetricsCleanup(metricsStore *metrics.Store, args []string) {
	if metricsStore == nil {
		log.Fatal("metrics-cleanup requires MEALDEX_DB_PATH to be set")
	}

	cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
	days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
	cleanupCmd.Parse(args)

	affected, err := metricsStore.Cleanup(*days)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}
	fmt.Printf("Successfully removed %d old request records.\n", affected)
}

func printUsage() {
	fmt.Println("Usage: mealdex <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  search [-category C] [-area A] [-sort name-asc|name-desc] <ingredient>")
	fmt.Println("  recipe <meal id>           Show the full recipe")
	fmt.Println("  favorite <meal id>         Toggle a favorite")
	fmt.Println("  favorites                  List favorites")
	fmt.Println("  plan [show]                Show the weekly plan")
	fmt.Println("  plan add <day> <meal id>   Plan a meal")
	fmt.Println("  plan remove <day> <meal id>")
	fmt.Println("  shopping-list              Aggregate ingredients of the planned meals")
	fmt.Println("  suggest [wishes...]        Fill the week from favorites (needs GEMINI_API_KEY)")
	fmt.Println("  metrics-cleanup [-days N]  Remove old request metrics (needs MEALDEX_DB_PATH)")
}
