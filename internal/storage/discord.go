package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"gorm.io/gorm"
)

// DiscordAttachment records where a level payload ended up on the chat
// platform, keyed by level ID so later dumps and deletes can find it.
type DiscordAttachment struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement"`
	LevelID   string `gorm:"column:level_id;uniqueIndex;not null;size:19"`
	MessageID string `gorm:"column:message_id;not null"`
	URL       string `gorm:"column:url;not null"`
}

func (DiscordAttachment) TableName() string {
	return "discord_attachments"
}

// DiscordProvider stores level payloads as chat attachments through a
// bot API, keeping an attachment index in the levels store. Payloads
// are forwarded in their opaque encoded form.
type DiscordProvider struct {
	apiURL    string
	baseURL   string
	channelID string
	authKey   string
	db        *gorm.DB
	client    *http.Client
}

// NewDiscordProvider builds the chat-attachment provider
func NewDiscordProvider(apiURL, baseURL, channelID, authKey string, db *gorm.DB) *DiscordProvider {
	return &DiscordProvider{
		apiURL:    apiURL,
		baseURL:   baseURL,
		channelID: channelID,
		authKey:   authKey,
		db:        db,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type discordUploadResponse struct {
	MessageID     string `json:"message_id"`
	AttachmentURL string `json:"attachment_url"`
}

// Upload posts the encoded payload as a file attachment and records the
// resulting message ID and attachment URL.
func (p *DiscordProvider) Upload(ctx context.Context, payload, levelID string) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", levelID+".swe")
	if err != nil {
		return err
	}
	if _, err := part.Write([]byte(payload)); err != nil {
		return err
	}
	if err := writer.WriteField("channel_id", p.channelID); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL+"/attachments", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bot "+p.authKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("attachment upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("attachment upload failed: status %d", resp.StatusCode)
	}

	var uploaded discordUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return fmt.Errorf("failed to decode attachment response: %w", err)
	}

	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := &DiscordAttachment{
			LevelID:   levelID,
			MessageID: uploaded.MessageID,
			URL:       uploaded.AttachmentURL,
		}
		return tx.Create(record).Error
	})
}

// Dump fetches the attachment body, which is already in the canonical
// encoded form. Returns ("", nil) when no attachment is recorded.
func (p *DiscordProvider) Dump(ctx context.Context, levelID string) (string, error) {
	record, err := p.attachment(ctx, levelID)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, record.URL, nil)
	if err != nil {
		return "", err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("attachment fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("attachment fetch failed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Delete removes the chat message holding the attachment and the index
// record. Unknown level IDs are a no-op.
func (p *DiscordProvider) Delete(ctx context.Context, levelID string) error {
	record, err := p.attachment(ctx, levelID)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	url := fmt.Sprintf("%s/channels/%s/messages/%s", p.apiURL, p.channelID, record.MessageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+p.authKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("attachment delete failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("attachment delete failed: status %d", resp.StatusCode)
	}

	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("level_id = ?", levelID).Delete(&DiscordAttachment{}).Error
	})
}

// DownloadURL proxies downloads through the API root; attachment URLs
// on the chat platform expire and cannot be handed to clients directly.
func (p *DiscordProvider) DownloadURL(levelID string) string {
	return fmt.Sprintf("%sstage/%s/file", p.baseURL, levelID)
}

func (p *DiscordProvider) attachment(ctx context.Context, levelID string) (*DiscordAttachment, error) {
	var record DiscordAttachment
	err := p.db.WithContext(ctx).Where("level_id = ?", levelID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
