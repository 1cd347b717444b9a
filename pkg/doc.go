// Package pkg contains the sub-packages of the surrealblocks application.
//
// # Application Layer
//
// [github.com/surrealdb/surrealblocks/pkg/surrealblocks] - Configuration, commands, HTTP API and
// live editing sessions. [github.com/surrealdb/surrealblocks/pkg/client] is the typed client for
// that API.
//
// # Editing Layer
//
// [github.com/surrealdb/surrealblocks/pkg/models] - Documents, chapters, pages, block instances,
// assets and their typed IDs.
//
// [github.com/surrealdb/surrealblocks/pkg/blocks] - The block catalog: typed content per block
// type, the registry, rendering and edit forms.
//
// [github.com/surrealdb/surrealblocks/pkg/editor] - Editing operations on one working document.
//
// [github.com/surrealdb/surrealblocks/pkg/exchange] - Export and import files.
//
// # Infrastructure Layer
//
// [github.com/surrealdb/surrealblocks/pkg/store] - The [github.com/surrealdb/surrealblocks/pkg/store.Store]
// interface and its read-only guard. Implementations live in
// [github.com/surrealdb/surrealblocks/pkg/store/kv] (in memory, or SQLite through
// [github.com/surrealdb/surrealblocks/pkg/store/sqlite]),
// [github.com/surrealdb/surrealblocks/pkg/store/postgres] and
// [github.com/surrealdb/surrealblocks/pkg/store/surrealdb].
//
// [github.com/surrealdb/surrealblocks/pkg/assets] - Uploaded files, thumbnails and their records.
//
// [github.com/surrealdb/surrealblocks/pkg/generate] - Document drafts from a chat-completions API.
//
// [github.com/surrealdb/surrealblocks/pkg/logger] - The zerolog logger builder.
package pkg
