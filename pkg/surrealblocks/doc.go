// Package surrealblocks provides the application around the block editor:
// configuration, the command line, the HTTP API and live editing sessions.
//
// # Getting Started
//
// The command line is described at [Main] and the API endpoints at [App.Run].
//
//	# Local server backed by ./surrealblocks.db, with the sample document
//	./bin/surrealblocks run
//
//	# Throwaway server
//	./bin/surrealblocks -store memory -port 8090 run
//
//	# SurrealDB backend
//	surreal start --user root --pass root
//	SURREALBLOCKS_STORE=surrealdb ./bin/surrealblocks migrate
//	SURREALBLOCKS_STORE=surrealdb ./bin/surrealblocks run
//
//	# PostgreSQL backend
//	POSTGRES_DSN=postgres://... SURREALBLOCKS_STORE=postgres ./bin/surrealblocks run
//
//	# Documents as files
//	./bin/surrealblocks export -id 4f1c... -out ./exports
//	./bin/surrealblocks import ./exports/mi_documento.json
//
// # Configuration
//
// Settings come from defaults, then an optional YAML file given with
// -config, then the environment, then flags set on the command line:
//
//	store: sqlite
//	sqlite_path: surrealblocks.db
//	port: "8080"
//	assets_dir: assets
//	generation:
//	  api_key: sk-...
//	  model: gpt-4
//	  page_delay: 1s
//
// # Editing
//
// Every block, chapter and page endpoint loads the document, applies one
// editor operation and saves it. When the save fails the response carries
// both the error and the edited document.
//
// A live session (GET /api/documents/{id}/live) keeps one editor per
// websocket connection. Messages apply in order and only "save" writes to
// the store.
package surrealblocks
