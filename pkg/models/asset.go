package models

import (
	"time"

	"gorm.io/gorm"
)

// AssetType is the coarse classification of an uploaded file.
type AssetType string

const (
	AssetTypeImage    AssetType = "image"
	AssetTypeVideo    AssetType = "video"
	AssetTypeAudio    AssetType = "audio"
	AssetTypeDocument AssetType = "document"
	AssetTypeArchive  AssetType = "archive"
	AssetTypeOther    AssetType = "other"
)

// AssetMetadata carries optional media details of an asset.
type AssetMetadata struct {
	Width       int     `json:"width,omitempty"`
	Height      int     `json:"height,omitempty"`
	Duration    float64 `json:"duration,omitempty"`
	Description string  `json:"description,omitempty"`
	Alt         string  `json:"alt,omitempty"`
}

// Merge overwrites the fields that are set in patch.
func (m AssetMetadata) Merge(patch AssetMetadata) AssetMetadata {
	if patch.Width != 0 {
		m.Width = patch.Width
	}
	if patch.Height != 0 {
		m.Height = patch.Height
	}
	if patch.Duration != 0 {
		m.Duration = patch.Duration
	}
	if patch.Description != "" {
		m.Description = patch.Description
	}
	if patch.Alt != "" {
		m.Alt = patch.Alt
	}
	return m
}

// Asset is an uploaded file referenced by URL from block content.
type Asset struct {
	ID           AssetID       `gorm:"type:uuid;primary_key" json:"id"`
	DocumentID   DocumentID    `gorm:"type:uuid;index" json:"documentId"`
	Name         string        `gorm:"not null" json:"name"`
	OriginalName string        `json:"originalName"`
	Type         AssetType     `gorm:"not null" json:"type"`
	MIMEType     string        `json:"mimeType"`
	Size         int64         `json:"size"`
	Checksum     string        `json:"checksum"`
	URL          string        `gorm:"not null" json:"url"`
	ThumbnailURL string        `json:"thumbnailUrl,omitempty"`
	UploadedAt   time.Time     `gorm:"index" json:"uploadedAt"`
	Metadata     AssetMetadata `gorm:"serializer:json" json:"metadata"`
}

// BeforeCreate hook to generate ID if not set
func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID.IsZero() {
		a.ID = NewAssetID()
	}
	return nil
}
