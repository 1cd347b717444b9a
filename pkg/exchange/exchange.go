// Package exchange converts documents and asset listings to and from their
// file backup form.
package exchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/surrealdb/surrealblocks/pkg/editor"
	"github.com/surrealdb/surrealblocks/pkg/models"
)

// ErrInvalidDocument is returned when an import lacks a required top-level field.
var ErrInvalidDocument = errors.New("invalid document")

// BackupVersion is the format version written into asset backups.
const BackupVersion = "1.0"

// requiredFields must be present at the top level of an imported document.
var requiredFields = []string{"id", "metadata", "blocks"}

// Export serializes doc as indented JSON.
func Export(doc *models.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export document %s: %w", doc.ID, err)
	}
	return data, nil
}

// Filename returns the backup file name for a document title: every
// character outside [A-Za-z0-9] becomes an underscore and the result is
// lower-cased.
func Filename(title string) string {
	var sb strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			sb.WriteRune(r + ('a' - 'A'))
		default:
			// One underscore per UTF-16 unit, so astral characters take two.
			n := utf16.RuneLen(r)
			if n < 1 {
				n = 1
			}
			sb.WriteString(strings.Repeat("_", n))
		}
	}
	return sb.String() + ".json"
}

// Import parses a document backup. The document gets a new identifier and
// updatedAt is set to now. Colliding block, chapter and page identifiers are
// renamed; block types are not checked.
func Import(data []byte, now time.Time) (*models.Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	for _, name := range requiredFields {
		if raw, ok := fields[name]; !ok || blank(raw) {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidDocument, name)
		}
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	doc.ID = models.NewDocumentID()
	doc.Metadata.UpdatedAt = now
	editor.NormalizeIDs(doc)
	return doc, nil
}

// Decode parses a document without the import checks. Any identifier is
// accepted: one that is not a document UUID leaves the zero ID for the
// caller to assign.
func Decode(data []byte) (*models.Document, error) {
	doc := &models.Document{}
	shadow := struct {
		ID json.RawMessage `json:"id"`
		*models.Document
	}{Document: doc}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var id string
	if json.Unmarshal(shadow.ID, &id) == nil {
		if parsed, err := models.ParseDocumentID(id); err == nil {
			doc.ID = parsed
		}
	}
	if doc.Blocks == nil {
		doc.Blocks = []models.Block{}
	}
	if doc.Metadata.Tags == nil {
		doc.Metadata.Tags = []string{}
	}
	return doc, nil
}

// blank reports whether raw is a JSON value that counts as absent: null,
// false, zero or the empty string.
func blank(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "null", "false", "0", `""`:
		return true
	}
	return false
}

// AssetBackup is the export form of a document's asset listing.
type AssetBackup struct {
	Files      []*models.Asset `json:"files"`
	ExportedAt time.Time       `json:"exportedAt"`
	Version    string          `json:"version"`
}

// ExportAssets serializes an asset listing as indented JSON.
func ExportAssets(assets []*models.Asset, now time.Time) ([]byte, error) {
	if assets == nil {
		assets = []*models.Asset{}
	}
	data, err := json.MarshalIndent(AssetBackup{
		Files:      assets,
		ExportedAt: now,
		Version:    BackupVersion,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export assets: %w", err)
	}
	return data, nil
}
