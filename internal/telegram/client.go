// Package telegram sends outreach digests to analysts via the Telegram Bot API
// and answers a few read-only bot commands.
package telegram

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rewired-gh/riskwatch/internal/dashboard"
	"github.com/rewired-gh/riskwatch/internal/logger"
	"github.com/rewired-gh/riskwatch/internal/models"
)

// maxDigestRows caps the alert lines in one message; the rest are counted.
const maxDigestRows = 15

// Dashboard is what the bot commands read from.
type Dashboard interface {
	Summary(ctx context.Context) (dashboard.Summary, error)
	UnreadAlerts(ctx context.Context, severities ...models.Status) ([]models.AlertRow, error)
}

// Client handles Telegram notifications.
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client.
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// ListenForCommands polls for updates in a goroutine and answers /ping,
// /summary and /unread. It returns immediately; polling stops when ctx is
// cancelled.
func (c *Client) ListenForCommands(ctx context.Context, d Dashboard) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := c.bot.GetUpdatesChan(u)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.bot.StopReceivingUpdates()
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				if update.Message != nil && update.Message.IsCommand() {
					c.handleCommand(ctx, d, update.Message)
				}
			}
		}
	}()
}

func (c *Client) handleCommand(ctx context.Context, d Dashboard, msg *tgbotapi.Message) {
	var text string
	switch msg.Command() {
	case "ping":
		reply := tgbotapi.NewMessage(msg.Chat.ID, "Pong")
		c.bot.Send(reply) //nolint:errcheck
		return
	case "summary":
		s, err := d.Summary(ctx)
		if err != nil {
			logger.Error("Summary command failed: %v", err)
			return
		}
		text = formatSummary(s)
	case "unread":
		rows, err := d.UnreadAlerts(ctx, models.StatusCritical, models.StatusHigh)
		if err != nil {
			logger.Error("Unread command failed: %v", err)
			return
		}
		text = formatDigest(rows)
	default:
		return
	}
	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ParseMode = "MarkdownV2"
	if _, err := c.bot.Send(reply); err != nil {
		logger.Warn("Failed to answer /%s: %v", msg.Command(), err)
	}
}

// sendMarkdownV2 sends a MarkdownV2 message with linear-backoff retry.
func (c *Client) sendMarkdownV2(text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = "MarkdownV2"

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		if _, err := c.bot.Send(msg); err == nil {
			return nil
		} else {
			lastErr = err
		}
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}
	return fmt.Errorf("failed after %d retries: %w", c.maxRetries, lastErr)
}

// SendError reports a failure to build the dashboard views.
func (c *Client) SendError(err error) error {
	text := fmt.Sprintf("⚠️ *Dashboard error*\n`%s`", escapeMarkdownV2(err.Error()))
	return c.sendMarkdownV2(text)
}

// SendDigest sends the given unread alerts. An empty list sends nothing.
func (c *Client) SendDigest(rows []models.AlertRow) error {
	if len(rows) == 0 {
		return nil
	}
	return c.sendMarkdownV2(formatDigest(rows))
}

var severityEmoji = map[models.Status]string{
	models.StatusCritical: "🔴",
	models.StatusHigh:     "🟠",
	models.StatusMedium:   "🟡",
	models.StatusLow:      "🟢",
}

// formatDigest groups alert rows by caseworker in a MarkdownV2 message.
func formatDigest(rows []models.AlertRow) string {
	var b strings.Builder
	b.WriteString("🚨 *Unread risk alerts*\n\n")
	if len(rows) == 0 {
		b.WriteString("Nothing to review\\.\n")
		return b.String()
	}

	shown := rows
	if len(shown) > maxDigestRows {
		shown = shown[:maxDigestRows]
	}
	byAnalyst := map[string][]models.AlertRow{}
	var analysts []string
	for _, r := range shown {
		if _, ok := byAnalyst[r.AssignedTo]; !ok {
			analysts = append(analysts, r.AssignedTo)
		}
		byAnalyst[r.AssignedTo] = append(byAnalyst[r.AssignedTo], r)
	}
	sort.Strings(analysts)

	for _, a := range analysts {
		fmt.Fprintf(&b, "👤 *%s*\n", escapeMarkdownV2(a))
		for _, r := range byAnalyst[a] {
			fmt.Fprintf(&b, "%s %s \\(%s\\) · %s\n   %s · %s via %s\n",
				severityEmoji[r.Severity],
				escapeMarkdownV2(r.CustomerName),
				escapeMarkdownV2(r.CustomerID),
				escapeMarkdownV2(r.Type),
				escapeMarkdownV2(r.Message),
				escapeMarkdownV2(r.TriggeredAt),
				escapeMarkdownV2(r.Channel))
		}
		b.WriteString("\n")
	}
	if extra := len(rows) - len(shown); extra > 0 {
		fmt.Fprintf(&b, "…and %d more\n", extra)
	}
	return b.String()
}

func formatSummary(s dashboard.Summary) string {
	var b strings.Builder
	b.WriteString("📊 *Dashboard summary*\n\n")
	fmt.Fprintf(&b, "Customers: %d \\(%d critical, %d high, %d flagged\\)\n",
		s.Customers.Total, s.Customers.Critical, s.Customers.High, s.Customers.Flagged)
	fmt.Fprintf(&b, "Alerts: %d \\(%d unread, %d open\\)\n", s.Alerts.Total, s.Alerts.Unread, s.Alerts.Open)
	fmt.Fprintf(&b, "Interventions: %d \\(%d overrides, avg confidence %s%%\\)\n",
		s.Interventions.Total, s.Interventions.Overrides,
		escapeMarkdownV2(strconv.FormatFloat(s.Interventions.AverageConfidence, 'f', 1, 64)))

	names := make([]string, 0, len(s.OpenCases))
	for n := range s.OpenCases {
		names = append(names, n)
	}
	sort.Strings(names)
	if len(names) > 0 {
		b.WriteString("\nOpen cases:\n")
	}
	for _, n := range names {
		fmt.Fprintf(&b, "• %s: %d\n", escapeMarkdownV2(n), s.OpenCases[n])
	}
	return b.String()
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2.
func escapeMarkdownV2(text string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/4) // pre-allocate with room for escapes
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			b.WriteByte('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
