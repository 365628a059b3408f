package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OneDriveCFProvider forwards level payloads to a OneDrive-compatible
// HTTP index. The payload is stored in its opaque encoded form; the
// index is trusted to return it byte-for-byte.
type OneDriveCFProvider struct {
	url     string
	authKey string
	baseURL string
	proxied bool
	client  *http.Client
}

// NewOneDriveCFProvider builds the OneDrive-proxy provider
func NewOneDriveCFProvider(url, authKey, baseURL string, proxied bool) *OneDriveCFProvider {
	return &OneDriveCFProvider{
		url:     url,
		authKey: authKey,
		baseURL: baseURL,
		proxied: proxied,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *OneDriveCFProvider) fileURL(levelID string) string {
	return p.url + levelID + ".swe"
}

// Upload PUTs the encoded payload under {id}.swe
func (p *OneDriveCFProvider) Upload(ctx context.Context, payload, levelID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, p.fileURL(levelID), strings.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("x-auth-key", p.authKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("onedrive upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("onedrive upload failed: status %d", resp.StatusCode)
	}
	return nil
}

// Dump GETs the stored payload back; a 404 maps to ("", nil)
func (p *OneDriveCFProvider) Dump(ctx context.Context, levelID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.fileURL(levelID), nil)
	if err != nil {
		return "", err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("onedrive fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("onedrive fetch failed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Delete removes the stored file; 404 counts as already gone
func (p *OneDriveCFProvider) Delete(ctx context.Context, levelID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, p.fileURL(levelID), nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-auth-key", p.authKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("onedrive delete failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("onedrive delete failed: status %d", resp.StatusCode)
	}
	return nil
}

// DownloadURL hands out either the direct index URL or the proxied API
// URL depending on configuration.
func (p *OneDriveCFProvider) DownloadURL(levelID string) string {
	if p.proxied {
		return fmt.Sprintf("%sstage/%s/file", p.baseURL, levelID)
	}
	return p.fileURL(levelID)
}
