package push

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/stagetribe/stagetribe/internal/config"
)

// Notifier dispatches platform events to Engine-Bot and Discord-style
// webhooks. Dispatch is best-effort: failures are logged and never
// surface to the request that triggered them.
type Notifier struct {
	cfg    *config.PushConfig
	client *http.Client
}

// NewNotifier creates a webhook notifier
func NewNotifier(cfg *config.PushConfig) *Notifier {
	return &Notifier{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// EngineBot posts a structured event to every Engine-Bot webhook URL
func (n *Notifier) EngineBot(ctx context.Context, payload map[string]any) {
	if !n.cfg.EngineBot.Enabled {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("Failed to encode engine bot payload", "error", err)
		return
	}
	for _, url := range n.cfg.EngineBot.URLs {
		n.post(ctx, url, body)
	}
}

// Discord posts a plain message to every Discord-style webhook URL
func (n *Notifier) Discord(ctx context.Context, content string) {
	if !n.cfg.Discord.Enabled {
		return
	}
	body, err := json.Marshal(map[string]string{
		"content":    content,
		"username":   n.cfg.Discord.Nickname,
		"avatar_url": n.cfg.Discord.Avatar,
	})
	if err != nil {
		slog.Warn("Failed to encode discord payload", "error", err)
		return
	}
	for _, url := range n.cfg.Discord.URLs {
		n.post(ctx, url, body)
	}
}

func (n *Notifier) post(ctx context.Context, url string, body []byte) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		slog.Warn("Failed to build webhook request", "url", url, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		slog.Warn("Webhook dispatch failed", "url", url, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		slog.Warn("Webhook rejected", "url", url, "status", resp.StatusCode)
	}
}
