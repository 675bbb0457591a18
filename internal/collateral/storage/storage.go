// Package storage stores rendered collateral in MinIO and hands out
// presigned download links.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"tune_outbound_backend/platform/config"
)

// PresignedURLTTL is how long a generated download link stays valid.
const PresignedURLTTL = 15 * time.Minute

// Stored describes an uploaded collateral object.
type Stored struct {
	ObjectKey   string    `json:"objectKey"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Store uploads collateral PDFs to a MinIO bucket.
type Store struct {
	client *minio.Client
	bucket string
}

// New creates a MinIO-backed collateral store.
func New(cfg config.MinIOConfig) (*Store, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("minio is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &Store{client: client, bucket: cfg.GetMinioBucketCollateral()}, nil
}

// EnsureBucket creates the collateral bucket when missing.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// PutReport uploads a savings report under collateral/{campaign}/{company}.pdf
// and returns a presigned download link.
func (s *Store) PutReport(ctx context.Context, campaign, company string, pdf []byte) (Stored, error) {
	key := ObjectKey(campaign, company)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(pdf), int64(len(pdf)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return Stored{}, fmt.Errorf("upload %s: %w", key, err)
	}

	return s.PresignGet(ctx, key)
}

// PresignGet returns a time-limited download link for an object.
func (s *Store) PresignGet(ctx context.Context, key string) (Stored, error) {
	expiresAt := time.Now().Add(PresignedURLTTL)
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, PresignedURLTTL, url.Values{})
	if err != nil {
		return Stored{}, fmt.Errorf("presign %s: %w", key, err)
	}
	return Stored{ObjectKey: key, DownloadURL: presigned.String(), ExpiresAt: expiresAt}, nil
}

// ObjectKey builds the canonical storage key for one company's report.
// The campaign segment is an identifier and kept verbatim.
func ObjectKey(campaign, company string) string {
	return fmt.Sprintf("collateral/%s/%s.pdf", campaign, slug(company))
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "unnamed"
	}
	return b.String()
}
