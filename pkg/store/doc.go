// Package store persists mind map documents between runs.
//
// A [Store] maps a document name to its [mindmap.Data]. Five backends are
// provided:
//   - [FileStore]: one JSON file per document, replaced atomically
//   - [SQLiteStore]: a single SQLite database in WAL mode
//   - [RedisStore]: shared remote storage for several server instances
//   - [MongoStore]: one BSON document per mind map
//   - [MemoryStore]: process-local, used by tests and ephemeral servers
//
// Interaction never waits for persistence. Editors hand every change to a
// [Debouncer], which coalesces bursts of edits into a single write per
// document once the quiet interval has passed:
//
//	st, err := store.Open(ctx, cfg.Store)
//	deb := store.NewDebouncer(st, cfg.Store.Debounce, logger)
//	defer deb.Close()
//	deb.Schedule("ideas", doc.Data())
//
// A pending write that is replaced before it fires is dropped, not merged.
package store
