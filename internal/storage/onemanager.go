package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// OneManagerProvider forwards level payloads to an admin-managed
// OneManager file host. Writes authenticate with the admin password;
// reads are public.
type OneManagerProvider struct {
	url           string
	adminPassword string
	client        *http.Client
}

// NewOneManagerProvider builds the generic file-host provider
func NewOneManagerProvider(hostURL, adminPassword string) *OneManagerProvider {
	return &OneManagerProvider{
		url:           hostURL,
		adminPassword: adminPassword,
		client:        &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *OneManagerProvider) fileURL(levelID string) string {
	return p.url + levelID + ".swe"
}

func (p *OneManagerProvider) adminPost(ctx context.Context, target string, form url.Values) (*http.Response, error) {
	form.Set("password", p.adminPassword)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return p.client.Do(req)
}

// Upload posts the encoded payload through the admin upload action
func (p *OneManagerProvider) Upload(ctx context.Context, payload, levelID string) error {
	form := url.Values{}
	form.Set("action", "upload")
	form.Set("content", payload)

	resp, err := p.adminPost(ctx, p.fileURL(levelID), form)
	if err != nil {
		return fmt.Errorf("onemanager upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("onemanager upload failed: status %d", resp.StatusCode)
	}
	return nil
}

// Dump GETs the stored payload back; a 404 maps to ("", nil)
func (p *OneManagerProvider) Dump(ctx context.Context, levelID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.fileURL(levelID), nil)
	if err != nil {
		return "", err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("onemanager fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("onemanager fetch failed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Delete removes the stored file through the admin delete action
func (p *OneManagerProvider) Delete(ctx context.Context, levelID string) error {
	form := url.Values{}
	form.Set("action", "delete")

	resp, err := p.adminPost(ctx, p.fileURL(levelID), form)
	if err != nil {
		return fmt.Errorf("onemanager delete failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("onemanager delete failed: status %d", resp.StatusCode)
	}
	return nil
}

// DownloadURL points straight at the file host
func (p *OneManagerProvider) DownloadURL(levelID string) string {
	return p.fileURL(levelID)
}
