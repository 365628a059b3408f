package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// LevelRecord is one stored level: the raw decoded content plus its
// checksum, persisted independently of the base64 wire encoding.
type LevelRecord struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement"`
	LevelID  string `gorm:"column:level_id;uniqueIndex;not null;size:19"`
	Data     string `gorm:"column:data;not null"`
	Checksum string `gorm:"column:checksum;not null;size:40"`
}

func (LevelRecord) TableName() string {
	return "level_data"
}

var dbFileName = regexp.MustCompile(`[^/]+\.db$`)

// DatabaseProvider stores level payloads in the relational levels store
type DatabaseProvider struct {
	baseURL string
	db      *gorm.DB
}

// NewDatabaseProvider builds the relational-blob provider. When the
// levels store is a sqlite file the base URL is the human-readable file
// name; otherwise the configured API root is used verbatim.
func NewDatabaseProvider(baseURL string, db *gorm.DB) *DatabaseProvider {
	resolved := baseURL
	if d, ok := db.Dialector.(*sqlite.Dialector); ok {
		if m := dbFileName.FindString(d.DSN); m != "" {
			resolved = m
		} else {
			resolved = d.DSN
		}
	}
	return &DatabaseProvider{baseURL: resolved, db: db}
}

// Upload splits the payload at len-40, decodes the base64 body and
// persists the decoded content with its checksum in one transaction.
func (p *DatabaseProvider) Upload(ctx context.Context, payload, levelID string) error {
	body, checksum, err := splitPayload(payload)
	if err != nil {
		return err
	}

	data, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return fmt.Errorf("failed to decode level payload: %w", err)
	}

	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := &LevelRecord{
			LevelID:  levelID,
			Data:     string(data),
			Checksum: checksum,
		}
		return tx.Create(record).Error
	})
}

// Dump fetches the stored record and re-encodes it into the canonical
// base64-body + checksum form. Returns ("", nil) when absent.
func (p *DatabaseProvider) Dump(ctx context.Context, levelID string) (string, error) {
	var record LevelRecord
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("level_id = ?", levelID).First(&record).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	encoded := base64.StdEncoding.EncodeToString([]byte(record.Data))
	return encoded + record.Checksum, nil
}

// Delete removes a level by ID. Deleting an ID that was never uploaded
// is a silent no-op; the transaction commits either way.
func (p *DatabaseProvider) Delete(ctx context.Context, levelID string) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("level_id = ?", levelID).Delete(&LevelRecord{}).Error
	})
}

// DownloadURL builds the fetchable URL for a level without any I/O
func (p *DatabaseProvider) DownloadURL(levelID string) string {
	return fmt.Sprintf("%sstage/%s/file", p.baseURL, levelID)
}
