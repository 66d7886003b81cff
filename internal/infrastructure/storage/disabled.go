package storage

import (
	"context"
	"time"

	catalogapp "github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/catalog"
)

// DisabledStorage is used when no object storage is configured.
// Every operation fails with catalogapp.ErrStorageDisabled.
type DisabledStorage struct{}

var _ catalogapp.ImageStorage = DisabledStorage{}

func (DisabledStorage) PresignUpload(context.Context, string, string, int64) (string, time.Time, error) {
	return "", time.Time{}, catalogapp.ErrStorageDisabled
}

func (DisabledStorage) PublicURL(string) string {
	return ""
}

func (DisabledStorage) DeleteObject(context.Context, string) error {
	return catalogapp.ErrStorageDisabled
}
