package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/stagetribe/stagetribe/internal/config"
)

// ChecksumLength is the length of the checksum suffix on an encoded
// level payload. The wire form of a level is base64(raw bytes) followed
// by the checksum, with no delimiter; the split is purely positional at
// len-40 and never content-sniffed.
const ChecksumLength = 40

// Provider is the capability surface every level storage backend
// implements. Upload and Delete either fully complete or return the
// backend failure unmodified; Dump returns the canonical encoded form
// or ("", nil) when the level does not exist. DownloadURL is pure
// string construction and performs no I/O.
type Provider interface {
	Upload(ctx context.Context, payload, levelID string) error
	Delete(ctx context.Context, levelID string) error
	Dump(ctx context.Context, levelID string) (string, error)
	DownloadURL(levelID string) string
}

// New selects the storage provider once at startup from configuration.
// The returned provider is shared for the process lifetime.
func New(cfg *config.StorageConfig, apiRoot string, levelsDB *gorm.DB) (Provider, error) {
	switch cfg.Provider {
	case "database":
		return NewDatabaseProvider(apiRoot, levelsDB), nil
	case "discord":
		return NewDiscordProvider(cfg.URL, apiRoot, cfg.AttachmentChannelID, cfg.AuthKey, levelsDB), nil
	case "onedrive-cf":
		return NewOneDriveCFProvider(cfg.URL, cfg.AuthKey, apiRoot, cfg.Proxied), nil
	case "onemanager":
		return NewOneManagerProvider(cfg.URL, cfg.AuthKey), nil
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}

// splitPayload separates the base64 body from the trailing checksum
func splitPayload(payload string) (body, checksum string, err error) {
	if len(payload) < ChecksumLength {
		return "", "", fmt.Errorf("level payload shorter than checksum suffix: %d bytes", len(payload))
	}
	return payload[:len(payload)-ChecksumLength], payload[len(payload)-ChecksumLength:], nil
}
