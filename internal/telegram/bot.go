package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pantry-planner/internal/config"
	"pantry-planner/internal/ingredient"
	"pantry-planner/internal/metrics"
	"pantry-planner/internal/recipe"
	"pantry-planner/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	sessionTypeAddItem = "add_item"
	sessionTTLSeconds  = 300
)

// Bot wraps the Telegram API, the shopping list service, and the recipe importer.
type Bot struct {
	api          *tgbotapi.BotAPI
	shopping     *shopping.Service
	importer     *recipe.Importer
	metricsStore *metrics.Store
	sessions     *SessionRepository
	cfg          *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(
	cfg *config.Config,
	shoppingService *shopping.Service,
	importer *recipe.Importer,
	metricsStore *metrics.Store,
	sessions *SessionRepository,
) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	webhookURL := cfg.TelegramWebhookURL
	wh, _ := tgbotapi.NewWebhook(webhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", webhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          bot,
		shopping:     shoppingService,
		importer:     importer,
		metricsStore: metricsStore,
		sessions:     sessions,
		cfg:          cfg,
	}, nil
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
		if b.isAllowed(update.CallbackQuery.From.ID) {
			b.handleCallbackQuery(update.CallbackQuery)
		}
		return
	}

	if update.Message == nil {
		return
	}

	if !b.isAllowed(update.Message.From.ID) {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) isAllowed(userID int64) bool {
	if b.cfg.TelegramAllowUserID == 0 {
		return true
	}
	return userID == b.cfg.TelegramAllowUserID || userID == b.cfg.AdminTelegramID
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	ctx := context.Background()
	userID := fmt.Sprintf("%d", msg.From.ID)

	// Admin commands first
	if msg.Text == "/metrics" {
		b.handleMetricsRequest(msg)
		return
	}

	if msg.Text == "/lists" || msg.Text == "/start" {
		b.sendListOverview(ctx, userID, msg.Chat.ID)
		return
	}

	// An active add-item session consumes the next plain message
	session, err := b.sessions.GetActive(ctx, userID, time.Now())
	if err != nil {
		log.Printf("Error loading session for user %s: %v", userID, err)
	}
	if session != nil && session.SessionType == sessionTypeAddItem {
		b.handleAddItemReply(ctx, session, msg)
		return
	}

	// A URL means "import this recipe"
	if strings.HasPrefix(msg.Text, "http://") || strings.HasPrefix(msg.Text, "https://") {
		b.handleImportRequest(msg)
		return
	}

	b.sendMarkdown(msg.Chat.ID, "Send me a recipe URL to import it, or use /lists to browse your shopping lists.")
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.sendMarkdown(msg.Chat.ID, "⛔ *Access Denied*: Admin only.")
		return
	}
	b.handleMetricsCommand(msg.Chat.ID)
}

// handleImportRequest imports a recipe from a URL and offers to generate a
// shopping list from it.
func (b *Bot) handleImportRequest(msg *tgbotapi.Message) {
	statusText := "🔎 *Importing recipe...*"
	replyMsg := tgbotapi.NewMessage(msg.Chat.ID, statusText)
	replyMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(replyMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	started := time.Now()
	rec, err := b.importer.ImportURL(ctx, msg.Text)

	var finalText string
	var keyboard *tgbotapi.InlineKeyboardMarkup
	if err != nil {
		log.Printf("Error importing recipe: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		finalText = fmt.Sprintf("❌ *Error importing recipe:*\n```\n%v\n```", safeErr)
	} else {
		_ = b.metricsStore.RecordTimed(metrics.EventRecipeImport, rec.ID, len(rec.Ingredients), started)
		finalText = fmt.Sprintf("✅ *Recipe Imported!*\n\n*%s*\n%d ingredients", rec.Name, len(rec.Ingredients))
		kb := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🛒 Generate shopping list", "gen|"+rec.ID),
			),
		)
		keyboard = &kb
	}

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, finalText)
	edit.ParseMode = "Markdown"
	edit.ReplyMarkup = keyboard
	b.api.Send(edit)
}

func (b *Bot) sendListOverview(ctx context.Context, userID string, chatID int64) {
	lists, err := b.shopping.ListForUser(ctx, userID)
	if err != nil {
		log.Printf("Error listing shopping lists for user %s: %v", userID, err)
		b.sendMarkdown(chatID, "❌ Error fetching your lists.")
		return
	}

	if len(lists) == 0 {
		b.sendMarkdown(chatID, "You have no shopping lists yet. Send me a recipe URL to create one!")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, list := range lists {
		stats := shopping.CompletionStats(list.Items)
		label := fmt.Sprintf("%s (%d/%d)", list.Name, stats.CompletedItems, stats.TotalItems)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "open|"+strconv.FormatInt(list.ID, 10)),
		))
	}

	msg := tgbotapi.NewMessage(chatID, "🛒 *Your Shopping Lists*")
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.api.Send(msg)
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	ctx := context.Background()
	userID := fmt.Sprintf("%d", query.From.ID)

	parts := strings.Split(query.Data, "|")
	if len(parts) < 2 {
		return
	}
	action := parts[0]

	// Answer callback to remove spinner
	b.api.Request(tgbotapi.NewCallback(query.ID, ""))

	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	switch action {
	case "open":
		listID, _ := strconv.ParseInt(parts[1], 10, 64)
		b.showList(ctx, userID, chatID, messageID, listID)

	case "toggle":
		if len(parts) < 3 {
			return
		}
		listID, _ := strconv.ParseInt(parts[1], 10, 64)
		itemID, _ := strconv.ParseInt(parts[2], 10, 64)
		if _, err := b.shopping.ToggleItem(ctx, itemID); err != nil {
			log.Printf("Error toggling item %d: %v", itemID, err)
			return
		}
		_ = b.metricsStore.Record(metrics.Event{
			Name:    metrics.EventItemToggled,
			Subject: strconv.FormatInt(itemID, 10),
		})
		b.showList(ctx, userID, chatID, messageID, listID)

	case "share":
		listID, _ := strconv.ParseInt(parts[1], 10, 64)
		b.shareList(ctx, userID, chatID, listID)

	case "add":
		listID, _ := strconv.ParseInt(parts[1], 10, 64)
		if _, err := b.sessions.Create(ctx, userID, sessionTypeAddItem, "awaiting_name",
			SessionContextData{ListID: listID}, sessionTTLSeconds); err != nil {
			log.Printf("Error creating session: %v", err)
			return
		}
		b.sendMarkdown(chatID, "✏️ What should I add? Send the item name (optionally with quantity, e.g. `2 kg potatoes`).")

	case "gen":
		recipeID := parts[1]
		started := time.Now()
		list, err := b.shopping.GenerateFromRecipes(ctx, userID, []string{recipeID}, shopping.DefaultGenerationOptions())
		if err != nil {
			log.Printf("Error generating list from recipe %s: %v", recipeID, err)
			b.sendMarkdown(chatID, "❌ Could not generate a shopping list from that recipe.")
			return
		}
		_ = b.metricsStore.RecordTimed(metrics.EventListGenerated, strconv.FormatInt(list.ID, 10), len(list.Items), started)
		b.showList(ctx, userID, chatID, 0, list.ID)
	}
}

// handleAddItemReply consumes the text reply of an add-item session.
func (b *Bot) handleAddItemReply(ctx context.Context, session *Session, msg *tgbotapi.Message) {
	defer func() {
		if err := b.sessions.Delete(ctx, session.ID); err != nil {
			log.Printf("Error deleting session %d: %v", session.ID, err)
		}
	}()

	data, err := session.GetContextData()
	if err != nil {
		log.Printf("Error reading session context: %v", err)
		return
	}

	parsed := recipe.ParseLine(msg.Text)
	input := shopping.CreateItemInput{
		CustomName: parsed.Name,
		Name:       parsed.Name,
		Quantity:   parsed.Quantity,
		Unit:       parsed.Unit,
		Category:   "other",
	}

	item, err := b.shopping.AddItem(ctx, data.ListID, input)
	if err != nil {
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		b.sendMarkdown(msg.Chat.ID, fmt.Sprintf("❌ Could not add item: %s", safeErr))
		return
	}

	b.sendMarkdown(msg.Chat.ID, fmt.Sprintf("✅ Added *%s* to the list.", item.Name))
	b.showList(ctx, fmt.Sprintf("%d", msg.From.ID), msg.Chat.ID, 0, data.ListID)
}

// showList renders a list with one toggle button per item. messageID 0 sends
// a new message instead of editing.
func (b *Bot) showList(ctx context.Context, userID string, chatID int64, messageID int, listID int64) {
	list, err := b.shopping.Get(ctx, listID)
	if err != nil {
		log.Printf("Error loading list %d: %v", listID, err)
		b.sendMarkdown(chatID, "❌ Error loading that list.")
		return
	}
	if list.UserID != userID {
		log.Printf("⚠️ User %s tried to open foreign list %d", userID, listID)
		return
	}

	text := formatListMarkdown(*list)
	keyboard := listKeyboard(*list)

	if messageID == 0 {
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = "Markdown"
		msg.ReplyMarkup = keyboard
		b.api.Send(msg)
		return
	}

	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "Markdown"
	edit.ReplyMarkup = &keyboard
	b.api.Send(edit)
}

func (b *Bot) shareList(ctx context.Context, userID string, chatID int64, listID int64) {
	list, err := b.shopping.Get(ctx, listID)
	if err != nil || list.UserID != userID {
		b.sendMarkdown(chatID, "❌ Error loading that list.")
		return
	}

	_ = b.metricsStore.Record(metrics.Event{
		Name:      metrics.EventListExported,
		Subject:   strconv.FormatInt(listID, 10),
		ItemCount: len(list.Items),
	})

	// Plain text on purpose, so it pastes cleanly anywhere
	b.api.Send(tgbotapi.NewMessage(chatID, shopping.ExportText(*list)))
}

func listKeyboard(list shopping.ShoppingList) tgbotapi.InlineKeyboardMarkup {
	listID := strconv.FormatInt(list.ID, 10)

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, item := range list.Items {
		glyph := "⬜"
		if item.IsCompleted {
			glyph = "✅"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s %s", glyph, item.Name),
				fmt.Sprintf("toggle|%s|%d", listID, item.ID),
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Add item", "add|"+listID),
		tgbotapi.NewInlineKeyboardButtonData("📤 Share", "share|"+listID),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func formatListMarkdown(list shopping.ShoppingList) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🛒 *%s*\n", list.Name))

	stats := shopping.CompletionStats(list.Items)
	estimate := shopping.EstimateShoppingTime(list.Items)
	sb.WriteString(fmt.Sprintf("_%d/%d done · ~%s_\n", stats.CompletedItems, stats.TotalItems, estimate.Display))

	groups := shopping.GroupByCategory(list.Items)
	for _, category := range shopping.SortedCategories(groups) {
		c := ingredient.Category(category)
		sb.WriteString(fmt.Sprintf("\n%s *%s*\n", c.Icon(), c.DisplayName()))
		for _, item := range groups[category] {
			glyph := "⬜"
			if item.IsCompleted {
				glyph = "✅"
			}
			sb.WriteString(fmt.Sprintf("%s %s", glyph, item.Name))
			if item.Quantity > 0 {
				sb.WriteString(fmt.Sprintf(" (%s %s)", trimFloat(item.Quantity), item.Unit))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	b.api.Send(msg)
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		b.api.Send(tgbotapi.NewMessage(chatID, "❌ Error fetching metrics."))
		return
	}

	health := metrics.GetSysHealth("data")

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d events (%d items)\n", d.Date, d.Events, d.TotalItems))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDirSize))

	msg := tgbotapi.NewMessage(chatID, sb.String())
	msg.ParseMode = "Markdown"
	b.api.Send(msg)
}
