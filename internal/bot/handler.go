package bot

import (
	"context"
	"errors"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/sirupsen/logrus"

	"bookingcal/internal/app"
	"bookingcal/internal/domain"
)

// Handler holds dependencies for the Telegram bot handlers.
type Handler struct {
	bot *tgbot.Bot
	svc *app.Service
	log logrus.FieldLogger
}

// NewHandler creates a new bot handler instance.
func NewHandler(token string, svc *app.Service, logger logrus.FieldLogger) (*Handler, error) {
	log := logger.WithField("component", "bot_handler")

	h := &Handler{
		svc: svc,
		log: log,
	}

	b, err := tgbot.New(token, tgbot.WithDefaultHandler(h.defaultHandler))
	if err != nil {
		log.WithError(err).Error("Failed to create Telegram bot instance")
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	h.bot = b

	h.registerHandlers()

	log.Info("Telegram bot handler initialized")
	return h, nil
}

func (h *Handler) registerHandlers() {
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, h.startHandler)
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/mylist", tgbot.MatchTypeExact, h.myListHandler)
	h.bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, actionAdd+":", tgbot.MatchTypePrefix, h.callbackHandler)
	h.bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, actionCancel+":", tgbot.MatchTypePrefix, h.callbackHandler)
	h.log.Info("Registered command and callback handlers")
}

// Start begins polling for updates from Telegram.
// This function blocks until the context is cancelled.
func (h *Handler) Start(ctx context.Context) {
	h.log.Info("Starting Telegram bot polling...")
	h.bot.Start(ctx)
	h.log.Info("Telegram bot polling stopped.")
}

func (h *Handler) startHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	h.reply(ctx, b, update.Message.Chat.ID, welcomeText, nil)
}

func (h *Handler) myListHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	userID := update.Message.From.ID
	events, err := h.svc.History(ctx, userID)
	if err != nil {
		h.log.WithError(err).WithField("user_id", userID).Error("Failed to load history")
		h.reply(ctx, b, update.Message.Chat.ID, errorText(err), nil)
		return
	}
	h.reply(ctx, b, update.Message.Chat.ID, historyText(events, h.svc.Location()), nil)
}

// defaultHandler treats any other text message as a possible booking link.
func (h *Handler) defaultHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID
	log := h.log.WithFields(logrus.Fields{"user_id": userID, "chat_id": chatID})

	pageURL, ok := app.FindBookingURL(update.Message.Text)
	if !ok {
		log.Debug("Message without booking link")
		h.reply(ctx, b, chatID, usageText, nil)
		return
	}

	if _, err := b.SendChatAction(ctx, &tgbot.SendChatActionParams{ChatID: chatID, Action: models.ChatActionTyping}); err != nil {
		log.WithError(err).Debug("Failed to send chat action")
	}

	pending, err := h.svc.Prepare(ctx, userID, pageURL)
	if err != nil {
		log.WithError(err).WithField("url", pageURL).Warn("Could not prepare calendar event")
		h.reply(ctx, b, chatID, errorText(err), nil)
		return
	}

	h.reply(ctx, b, chatID, previewText(pending.Event), confirmKeyboard(pending.ID))
}

// callbackHandler resolves the 추가/취소 buttons of a preview.
func (h *Handler) callbackHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	query := update.CallbackQuery
	if query == nil {
		return
	}
	log := h.log.WithFields(logrus.Fields{"user_id": query.From.ID, "data": query.Data})

	if _, err := b.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{CallbackQueryID: query.ID}); err != nil {
		log.WithError(err).Debug("Failed to answer callback query")
	}

	action, id, ok := parseCallback(query.Data)
	if !ok {
		log.Warn("Malformed callback data")
		return
	}

	// Private chats share the user's id.
	chatID := query.From.ID
	if query.Message.Message != nil {
		chatID = query.Message.Message.Chat.ID
	}

	link, err := h.svc.Resolve(ctx, query.From.ID, id, func(domain.Event) bool {
		return action == actionAdd
	})
	if err != nil {
		if !errors.Is(err, domain.ErrDeclined) {
			log.WithError(err).Warn("Could not resolve pending event")
		}
		h.reply(ctx, b, chatID, errorText(err), nil)
		return
	}

	log.Info("Calendar link issued")
	h.reply(ctx, b, chatID, link, linkKeyboard(link))
}

func (h *Handler) reply(ctx context.Context, b *tgbot.Bot, chatID int64, text string, markup models.ReplyMarkup) {
	params := &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}
	if _, err := b.SendMessage(ctx, params); err != nil {
		h.log.WithError(err).WithField("chat_id", chatID).Error("Failed to send message")
	}
}
