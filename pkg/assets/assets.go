// Package assets stores uploaded files and the asset records that point at
// them.
//
// Blob bytes are written content-addressed under the asset directory, keyed
// by their BLAKE3 checksum, so uploading the same file twice stores it once.
// Image uploads also get a JPEG thumbnail and their pixel dimensions.
package assets

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"github.com/rs/zerolog"
	"github.com/zeebo/blake3"

	"github.com/surrealdb/surrealblocks/pkg/models"
	"github.com/surrealdb/surrealblocks/pkg/store"
)

const (
	// ThumbnailSize bounds both sides of a thumbnail.
	ThumbnailSize = 200
	// ThumbnailQuality is the JPEG quality of thumbnails.
	ThumbnailQuality = 70

	thumbnailDir = "thumbs"
	defaultMIME  = "application/octet-stream"
)

// ErrAssetNotFound is returned when an asset ID has no record.
var ErrAssetNotFound = errors.New("asset not found")

// Upload is one file received from a client.
type Upload struct {
	Filename string
	Data     []byte
}

// Service uploads, lists and removes assets.
type Service struct {
	store   store.Store
	dir     string
	baseURL string
	now     func() time.Time
	log     zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source used for names and upload stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger of the service.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService stores blobs under dir and publishes them under baseURL.
func NewService(s store.Store, dir, baseURL string, opts ...Option) *Service {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	svc := &Service{
		store:   s,
		dir:     dir,
		baseURL: baseURL,
		now:     time.Now,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Handler serves the stored blobs and thumbnails. Mount it under the base URL
// with the prefix stripped.
func (s *Service) Handler() http.Handler {
	return http.FileServer(http.Dir(s.dir))
}

// UploadMany stores every upload for documentID and returns the new records
// in input order. It stops at the first failure.
func (s *Service) UploadMany(ctx context.Context, documentID models.DocumentID, uploads []Upload) ([]*models.Asset, error) {
	assets := make([]*models.Asset, 0, len(uploads))
	for _, u := range uploads {
		asset, err := s.Upload(ctx, documentID, u)
		if err != nil {
			return assets, fmt.Errorf("failed to upload %s: %w", u.Filename, err)
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

// Upload stores a single file for documentID.
func (s *Service) Upload(ctx context.Context, documentID models.DocumentID, u Upload) (*models.Asset, error) {
	now := s.now()
	mimeType, ext := DetectType(u.Filename, u.Data)

	sum := blake3.Sum256(u.Data)
	checksum := hex.EncodeToString(sum[:])
	blob := blobPath(checksum, ext)
	if err := s.writeOnce(blob, u.Data); err != nil {
		return nil, err
	}

	asset := &models.Asset{
		ID:           models.NewAssetID(),
		DocumentID:   documentID,
		Name:         FileName(u.Filename, ext, now),
		OriginalName: u.Filename,
		Type:         Classify(mimeType),
		MIMEType:     mimeType,
		Size:         int64(len(u.Data)),
		Checksum:     checksum,
		URL:          s.baseURL + blob,
		UploadedAt:   now,
	}

	if asset.Type == models.AssetTypeImage {
		s.addThumbnail(asset, u.Data)
	}

	if err := s.store.SaveAsset(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to save asset: %w", err)
	}
	s.log.Debug().
		Str("document_id", documentID.String()).
		Str("asset_id", asset.ID.String()).
		Str("type", string(asset.Type)).
		Msg("asset uploaded")
	return asset, nil
}

// addThumbnail records the image size and writes the thumbnail. Images the
// decoder does not understand keep no thumbnail.
func (s *Service) addThumbnail(asset *models.Asset, data []byte) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		s.log.Warn().Err(err).Str("asset_id", asset.ID.String()).Msg("unable to decode image")
		return
	}
	asset.Metadata.Width = img.Bounds().Dx()
	asset.Metadata.Height = img.Bounds().Dy()

	thumb := imaging.Fit(img, ThumbnailSize, ThumbnailSize, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(ThumbnailQuality)); err != nil {
		s.log.Warn().Err(err).Str("asset_id", asset.ID.String()).Msg("unable to encode thumbnail")
		return
	}
	rel := path.Join(thumbnailDir, asset.Checksum+".jpg")
	if err := s.writeOnce(rel, buf.Bytes()); err != nil {
		s.log.Warn().Err(err).Str("asset_id", asset.ID.String()).Msg("unable to store thumbnail")
		return
	}
	asset.ThumbnailURL = s.baseURL + rel
}

// writeOnce writes data to rel under the asset directory unless it exists.
func (s *Service) writeOnce(rel string, data []byte) error {
	target := filepath.Join(s.dir, filepath.FromSlash(rel))
	if _, err := os.Stat(target); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create asset directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write blob: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move blob into place: %w", err)
	}
	return nil
}

// List returns the assets of documentID, newest first.
func (s *Service) List(ctx context.Context, documentID models.DocumentID) ([]*models.Asset, error) {
	return s.store.ListAssets(ctx, documentID)
}

// All returns every stored asset, newest first.
func (s *Service) All(ctx context.Context) ([]*models.Asset, error) {
	return s.store.ListAllAssets(ctx)
}

func (s *Service) Get(ctx context.Context, id models.AssetID) (*models.Asset, error) {
	asset, err := s.store.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, ErrAssetNotFound
	}
	return asset, nil
}

// UpdateMetadata merges patch into the stored metadata of the asset.
func (s *Service) UpdateMetadata(ctx context.Context, id models.AssetID, patch models.AssetMetadata) (*models.Asset, error) {
	asset, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	asset.Metadata = asset.Metadata.Merge(patch)
	if err := s.store.SaveAsset(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to save asset: %w", err)
	}
	return asset, nil
}

// Delete removes the asset record. The blob is removed too unless another
// asset still points at it, and the thumbnail unless another asset has the
// same checksum. Assets of deleted documents count as references.
func (s *Service) Delete(ctx context.Context, id models.AssetID) error {
	asset, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteAsset(ctx, id); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	remaining, err := s.store.ListAllAssets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list assets: %w", err)
	}
	blobUsed, thumbUsed := false, false
	for _, other := range remaining {
		blobUsed = blobUsed || other.URL == asset.URL
		thumbUsed = thumbUsed || other.Checksum == asset.Checksum
	}

	var unused []string
	if !blobUsed {
		unused = append(unused, strings.TrimPrefix(asset.URL, s.baseURL))
	}
	if !thumbUsed {
		unused = append(unused, path.Join(thumbnailDir, asset.Checksum+".jpg"))
	}
	for _, rel := range unused {
		if err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("asset_id", id.String()).Msg("unable to remove blob")
		}
	}
	return nil
}

// blobPath is the slash-separated location of a blob below the asset directory.
func blobPath(checksum, ext string) string {
	name := checksum
	if ext != "" {
		name += "." + ext
	}
	return path.Join(checksum[:2], name)
}

// DetectType returns the MIME type and extension of a file. Content sniffing
// wins; the filename extension is the fallback.
func DetectType(filename string, data []byte) (mimeType, ext string) {
	ext = strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	if len(data) > 0 {
		if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
			if ext == "" {
				ext = kind.Extension
			}
			return kind.MIME.Value, ext
		}
	}
	if ext == "" {
		return defaultMIME, ""
	}
	if kind := filetype.GetType(ext); kind != filetype.Unknown && kind.MIME.Value != "" {
		return kind.MIME.Value, ext
	}
	if byExt := mime.TypeByExtension("." + ext); byExt != "" {
		return byExt, ext
	}
	return defaultMIME, ext
}

// Classify maps a MIME type to an asset type.
func Classify(mimeType string) models.AssetType {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return models.AssetTypeImage
	case strings.HasPrefix(mimeType, "video/"):
		return models.AssetTypeVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return models.AssetTypeAudio
	case strings.Contains(mimeType, "pdf"),
		strings.Contains(mimeType, "document"),
		strings.Contains(mimeType, "text"):
		return models.AssetTypeDocument
	case strings.Contains(mimeType, "zip"),
		strings.Contains(mimeType, "rar"),
		strings.Contains(mimeType, "tar"):
		return models.AssetTypeArchive
	default:
		return models.AssetTypeOther
	}
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9]`)

// FileName builds the stored name of an upload: the original base name with
// every non-alphanumeric character replaced by "_", lowercased, followed by
// the upload time in Unix milliseconds and the extension.
func FileName(original, ext string, at time.Time) string {
	base := strings.TrimSuffix(original, filepath.Ext(original))
	clean := strings.ToLower(unsafeName.ReplaceAllString(base, "_"))
	name := fmt.Sprintf("%s_%d", clean, at.UnixMilli())
	if ext != "" {
		name += "." + ext
	}
	return name
}
