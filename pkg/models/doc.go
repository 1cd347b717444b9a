// Package models defines the document model edited and rendered by surrealblocks.
//
// A [Document] is an ordered sequence of [Block] instances plus metadata, optionally grouped
// into [Chapter] and [Page] entries that carry their own block sequences. Each block has a
// [BlockType] tag that must resolve in the block registry
// ([github.com/surrealdb/surrealblocks/pkg/blocks.Registry]) and a content value whose shape
// is defined by that type.
//
// # Content Representation
//
// Block content is held as raw JSON ([Block.Content]). The document model and every store
// treat it as an opaque value, which keeps persistence independent of the block catalog. The
// blocks package decodes the raw value into the typed content record of the block's type
// whenever it renders, edits or merges a block.
//
// Parameters ([Params]) are type-specific secondary settings, such as list style or tip
// color. They stay a plain map because they are shallow-merged by key and many block types
// define none.
//
// # Typed IDs
//
// Documents and assets use strongly-typed identifiers ([DocumentID], [AssetID]) wrapping a
// UUID. Each typed ID knows its table, so the same value works everywhere:
//   - JSON encodes it as a plain UUID string
//   - PostgreSQL stores it as a native uuid column through driver.Valuer and sql.Scanner
//   - SurrealDB stores it as a RecordID through CBOR tag 8 ([table, id])
//
// Block, chapter and page identifiers are plain strings. The user may reassign them, and
// they only need to be unique within their containing sequence.
//
// # Wire Format
//
// JSON field names are camelCase so that exported files stay compatible with documents
// written by earlier versions of the editor.
package models
