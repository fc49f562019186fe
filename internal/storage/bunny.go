package storage

import (
	"Vaulted/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrObjectNotFound is returned when a storage key has no object behind it.
var ErrObjectNotFound = errors.New("object not found in storage")

// ObjectStorage is the content-addressable byte store behind file nodes.
type ObjectStorage interface {
	Put(ctx context.Context, body io.Reader, key string, contentType string) error
	GetStream(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// BunnyStorage talks to a BunnyCDN storage zone over its REST API. Uploads
// and deletes go to the storage endpoint; reads come from the CDN URL.
type BunnyStorage struct {
	client *http.Client
	cfg    config.StorageConfig
}

func NewBunnyStorage(configuration *config.Configuration) ObjectStorage {
	return &BunnyStorage{
		client: &http.Client{Timeout: 5 * time.Minute},
		cfg:    configuration.Storage,
	}
}

func (s *BunnyStorage) storageURL(key string) string {
	host := "storage.bunnycdn.com"
	if s.cfg.Region != "" {
		host = fmt.Sprintf("%s.storage.bunnycdn.com", s.cfg.Region)
	}
	return fmt.Sprintf("https://%s/%s/%s", host, s.cfg.Zone, key)
}

func (s *BunnyStorage) Put(ctx context.Context, body io.Reader, key string, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.storageURL(key), body)
	if err != nil {
		return err
	}
	req.Header.Set("AccessKey", s.cfg.ApiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("storage upload failed: %d - %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

func (s *BunnyStorage) GetStream(ctx context.Context, key string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.PublicURL(key), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, ErrObjectNotFound
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("storage fetch failed: %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func (s *BunnyStorage) Delete(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.storageURL(key), nil)
	if err != nil {
		return err
	}
	req.Header.Set("AccessKey", s.cfg.ApiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// An already-absent key counts as deleted.
	if resp.StatusCode != http.StatusNotFound && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("storage delete failed: %d - %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

func (s *BunnyStorage) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.CdnUrl, "/"), key)
}
