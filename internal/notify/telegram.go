package notify

import (
	"encoding/json"
	"fmt"

	"garage/internal/config"
	"garage/internal/events"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// TelegramNotifier шлет менеджерам сообщения о событиях аренды.
type TelegramNotifier struct {
	bot     *tgbotapi.BotAPI
	chatIDs []int64
	logger  *zerolog.Logger
}

// NewTelegramNotifier возвращает nil при пустом токене: уведомления выключены.
func NewTelegramNotifier(cfg config.TelegramConfig, logger *zerolog.Logger) (*TelegramNotifier, error) {
	if cfg.BotToken == "" {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info().Str("bot_username", bot.Self.UserName).Msg("Telegram notifier initialized")
	return &TelegramNotifier{bot: bot, chatIDs: cfg.ManagerChatIDs, logger: logger}, nil
}

// Register подписывает нотификатор на события шины.
func (n *TelegramNotifier) Register(bus *events.EventBus) {
	if n == nil {
		return
	}
	bus.Subscribe(events.EventRentalCreated, n.handleRentalEvent("🆕 Новая аренда"))
	bus.Subscribe(events.EventRentalUpdated, n.handleRentalEvent("✏️ Аренда изменена"))
	bus.Subscribe(events.EventRentalDeleted, n.handleRentalEvent("❌ Аренда отменена"))
}

func (n *TelegramNotifier) handleRentalEvent(title string) events.EventHandler {
	return func(event *events.Event) error {
		var payload events.RentalEventPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			n.logger.Error().Err(err).Str("event_type", event.Type).Msg("failed to decode event payload")
			return err
		}

		message := fmt.Sprintf(`%s:

🚗 Автомобиль: %s
📅 Даты: %s - %s
💰 Стоимость: %.2f
👤 Клиент ID: %d
🆔 ID аренды: %d`,
			title,
			payload.CarName,
			payload.StartDate.Format("02.01.2006"),
			payload.EndDate.Format("02.01.2006"),
			payload.TotalPrice,
			payload.ClientID,
			payload.RentalID)

		n.send(message)
		return nil
	}
}

func (n *TelegramNotifier) send(message string) {
	for _, chatID := range n.chatIDs {
		msg := tgbotapi.NewMessage(chatID, message)
		if _, err := n.bot.Send(msg); err != nil {
			n.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send telegram notification")
		}
	}
}
