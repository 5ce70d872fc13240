// Package telegram is a bot front end over the app intent layer. It parses
// commands into intents, renders the returned snapshots as Markdown, and
// keeps no state of its own beyond the inline-keyboard callback payloads.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mealdex/internal/app"
	"mealdex/internal/catalog"
	"mealdex/internal/config"
	"mealdex/internal/mealplan"
	"mealdex/internal/search"
	"mealdex/internal/shopping"
)

// Bot wraps the Telegram API and the application core.
type Bot struct {
	api *tgbotapi.BotAPI
	app *app.App
	cfg *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, application *app.App) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{api: api, app: application, cfg: cfg}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.CallbackQuery != nil {
		if b.allowed(update.CallbackQuery.From.ID) {
			go b.handleCallbackQuery(update.CallbackQuery)
		}
		return
	}

	if update.Message == nil {
		return
	}

	if !b.allowed(update.Message.From.ID) {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

// allowed applies the single-user allow list; an unset id allows everyone.
func (b *Bot) allowed(userID int64) bool {
	return b.cfg.TelegramAllowUserID == 0 || b.cfg.TelegramAllowUserID == userID
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	ctx := context.Background()
	command, args := splitCommand(msg.Text)

	switch command {
	case "/start", "/help":
		b.reply(msg.Chat.ID, helpText())
	case "/search":
		b.handleSearch(ctx, msg.Chat.ID, args)
	case "/recipe":
		b.handleRecipe(ctx, msg.Chat.ID, args)
	case "/fav":
		b.handleFavorite(ctx, msg.Chat.ID, args)
	case "/favorites":
		b.reply(msg.Chat.ID, formatFavorites(b.app.Favorites()))
	case "/add":
		b.handleAdd(msg.Chat.ID, args)
	case "/remove":
		b.handleRemove(msg.Chat.ID, args)
	case "/plan":
		b.reply(msg.Chat.ID, formatPlan(b.app.PlanDays()))
	case "/shoppinglist":
		b.handleShoppingList(ctx, msg.Chat.ID)
	case "/suggest":
		b.handleSuggest(ctx, msg.Chat.ID, args)
	default:
		b.reply(msg.Chat.ID, "Unknown command. Send /help for the command list.")
	}
}

func splitCommand(text string) (command, args string) {
	parts := strings.SplitN(strings.TrimSpace(text), " ", 2)
	command = strings.ToLower(parts[0])
	// Strip the @botname suffix used in group chats
	if i := strings.Index(command, "@"); i > 0 {
		command = command[:i]
	}
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}
	return command, args
}

func (b *Bot) handleSearch(ctx context.Context, chatID int64, term string) {
	if term == "" {
		b.reply(chatID, "Usage: /search <ingredient>")
		return
	}

	meals, err := b.app.Search(ctx, term, search.Options{})
	if errors.Is(err, catalog.ErrNotFound) {
		b.reply(chatID, "Sorry, we didn't find any meal!")
		return
	}
	if err != nil {
		log.Printf("Error searching for %q: %v", term, err)
		b.reply(chatID, "Error fetching meal data. Please try again later.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🍽 *Meals with %s*\n\n", term))
	for _, m := range meals {
		star := ""
		if b.app.IsFavorite(m.ID) {
			star = " ★"
		}
		sb.WriteString(fmt.Sprintf("• %s (`%s`)%s\n", m.Name, m.ID, star))
	}
	sb.WriteString("\nSend /recipe <id> for details or /add <id> to plan it.")
	b.reply(chatID, sb.String())
}

func (b *Bot) handleRecipe(ctx context.Context, chatID int64, id string) {
	if id == "" {
		b.reply(chatID, "Usage: /recipe <meal id>")
		return
	}

	meal, err := b.app.Lookup(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		b.reply(chatID, "Recipe not found.")
		return
	}
	if err != nil {
		log.Printf("Error looking up meal %s: %v", id, err)
		b.reply(chatID, "Error loading recipe details. Please try again later.")
		return
	}

	b.reply(chatID, formatRecipe(meal))
}

func (b *Bot) handleFavorite(ctx context.Context, chatID int64, id string) {
	if id == "" {
		b.reply(chatID, "Usage: /fav <meal id>")
		return
	}

	// The toggle needs the displayed record; fetch it from the catalog.
	meal, err := b.app.Lookup(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		b.reply(chatID, "Recipe not found.")
		return
	}
	if err != nil {
		log.Printf("Error looking up meal %s: %v", id, err)
		b.reply(chatID, "Error loading the meal. Please try again later.")
		return
	}

	added, err := b.app.ToggleFavorite(meal.Summary())
	if err != nil {
		log.Printf("Error toggling favorite %s: %v", id, err)
		b.reply(chatID, "Failed to update favorites.")
		return
	}
	if added {
		b.reply(chatID, fmt.Sprintf("★ Added *%s* to favorites.", meal.Name))
	} else {
		b.reply(chatID, fmt.Sprintf("☆ Removed *%s* from favorites.", meal.Name))
	}
}

// handleAdd shows a weekday keyboard; the chosen day comes back as a
// callback query carrying "plan|<day>|<meal id>".
func (b *Bot) handleAdd(chatID int64, id string) {
	if id == "" {
		b.reply(chatID, "Usage: /add <meal id>")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, day := range mealplan.Weekdays {
		label := strings.ToUpper(day[:1]) + day[1:]
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "plan|"+day+"|"+id),
		))
	}

	msg := tgbotapi.NewMessage(chatID, "Which day should it go on?")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.api.Send(msg)
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	// Answer callback to remove the spinner
	b.api.Request(tgbotapi.NewCallback(query.ID, ""))

	parts := strings.Split(query.Data, "|")
	if len(parts) != 3 || parts[0] != "plan" {
		return
	}
	day, id := parts[1], parts[2]
	chatID := query.Message.Chat.ID

	ctx := context.Background()
	meal, err := b.app.Lookup(ctx, id)
	if err != nil {
		log.Printf("Error looking up meal %s for planning: %v", id, err)
		b.reply(chatID, "Failed to add the meal to your plan.")
		return
	}

	planned := mealplan.PlannedMeal{ID: meal.ID, Name: meal.Name, Thumb: meal.Thumb}
	if err := b.app.AddToPlan(day, planned); err != nil {
		log.Printf("Error adding meal %s to %s: %v", id, day, err)
		b.reply(chatID, "Failed to add the meal to your plan.")
		return
	}

	edit := tgbotapi.NewEditMessageText(chatID, query.Message.MessageID,
		fmt.Sprintf("🗓 Added *%s* to %s.", meal.Name, day))
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) handleRemove(chatID int64, args string) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		b.reply(chatID, "Usage: /remove <day> <meal id>")
		return
	}

	if err := b.app.RemoveFromPlan(fields[0], fields[1]); err != nil {
		if errors.Is(err, mealplan.ErrUnknownDay) {
			b.reply(chatID, fmt.Sprintf("%q is not a weekday.", fields[0]))
			return
		}
		log.Printf("Error removing meal from plan: %v", err)
		b.reply(chatID, "Failed to update your plan.")
		return
	}
	b.reply(chatID, "Removed. Send /plan to see the week.")
}

func (b *Bot) handleShoppingList(ctx context.Context, chatID int64) {
	list, err := b.app.BuildShoppingList(ctx)
	if errors.Is(err, shopping.ErrEmptyPlan) {
		b.reply(chatID, "Your meal plan is empty! Add meals with /add first.")
		return
	}
	if err != nil {
		log.Printf("Error building shopping list: %v", err)
		b.reply(chatID, "Failed to generate shopping list. Please try again.")
		return
	}

	b.reply(chatID, formatShoppingList(list))
}

func (b *Bot) handleSuggest(ctx context.Context, chatID int64, request string) {
	if request == "" {
		request = "a balanced week"
	}

	status := tgbotapi.NewMessage(chatID, "🧑‍🍳 *Thinking...*")
	status.ParseMode = "Markdown"
	sent, err := b.api.Send(status)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	suggestions, err := b.app.SuggestPlan(ctx, request)
	var finalText string
	if err != nil {
		log.Printf("Error suggesting plan: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		finalText = fmt.Sprintf("❌ *Couldn't suggest a plan:*\n```\n%v\n```", safeErr)
	} else {
		var sb strings.Builder
		sb.WriteString("📅 *Suggested week*\n\n")
		for _, s := range suggestions {
			sb.WriteString(fmt.Sprintf("*%s*: `%s`", s.Day, s.MealID))
			if s.Note != "" {
				sb.WriteString(fmt.Sprintf(" — _%s_", s.Note))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\nSend /plan to see the full week.")
		finalText = sb.String()
	}

	edit := tgbotapi.NewEditMessageText(chatID, sent.MessageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func helpText() string {
	return strings.Join([]string{
		"*mealdex* — recipe search and weekly meal planning",
		"",
		"/search <ingredient> — find meals",
		"/recipe <id> — full recipe",
		"/fav <id> — toggle favorite",
		"/favorites — list favorites",
		"/add <id> — plan a meal",
		"/remove <day> <id> — unplan a meal",
		"/plan — show the week",
		"/shoppinglist — aggregate ingredients",
		"/suggest <wishes> — let the model fill the week from favorites",
	}, "\n")
}

func formatRecipe(meal *catalog.Meal) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s*\n_%s · %s_\n\n", meal.Name, meal.Category, meal.Area))

	sb.WriteString("*Ingredients:*\n")
	for _, slot := range meal.Ingredients {
		if strings.TrimSpace(slot.Ingredient) == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("• %s", strings.TrimSpace(slot.Ingredient)))
		if m := strings.TrimSpace(slot.Measure); m != "" {
			sb.WriteString(fmt.Sprintf(" — %s", m))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("\n*Instructions:*\n%s\n", meal.Instructions))
	if meal.YouTube != "" {
		sb.WriteString(fmt.Sprintf("\n▶️ %s\n", meal.YouTube))
	}
	return sb.String()
}

func formatFavorites(favs []catalog.MealSummary) string {
	if len(favs) == 0 {
		return "No favorite meals saved."
	}
	var sb strings.Builder
	sb.WriteString("★ *Favorites*\n\n")
	for _, m := range favs {
		sb.WriteString(fmt.Sprintf("• %s (`%s`)\n", m.Name, m.ID))
	}
	return sb.String()
}

func formatPlan(days []mealplan.DayMeals) string {
	if len(days) == 0 {
		return "Your meal plan is empty. Add meals with /add."
	}
	var sb strings.Builder
	sb.WriteString("📅 *Weekly Meal Plan*\n\n")
	for _, d := range days {
		sb.WriteString(fmt.Sprintf("*%s*\n", strings.ToUpper(d.Day[:1])+d.Day[1:]))
		for _, m := range d.Meals {
			sb.WriteString(fmt.Sprintf("  • %s (`%s`)\n", m.Name, m.ID))
		}
	}
	return sb.String()
}

func formatShoppingList(list shopping.List) string {
	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n\n")
	for _, item := range list {
		sb.WriteString(fmt.Sprintf("• %s\n", item.Display()))
	}
	return sb.String()
}
