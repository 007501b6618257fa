package db

func (db *DB) initSchema() error {
	schema := `
	-- Days table
	CREATE TABLE IF NOT EXISTS days (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day_id TEXT UNIQUE NOT NULL,
		label TEXT NOT NULL,
		date TEXT,
		position INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_days_day_id ON days(day_id);
	CREATE INDEX IF NOT EXISTS idx_days_position ON days(position);

	-- Sessions table
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT UNIQUE NOT NULL,
		day_id INTEGER NOT NULL,
		start_time TEXT,
		end_time TEXT,
		track TEXT,
		room TEXT,
		title TEXT NOT NULL,
		url TEXT,
		position INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (day_id) REFERENCES days(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_session_id ON sessions(session_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_day_id ON sessions(day_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_track ON sessions(track);
	CREATE INDEX IF NOT EXISTS idx_sessions_room ON sessions(room);

	-- Items table (papers, talks and keynote slots within a session)
	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		item_id TEXT NOT NULL,
		session_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		url TEXT,
		authors TEXT,
		position INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_items_session_id ON items(session_id);
	CREATE INDEX IF NOT EXISTS idx_items_item_id ON items(item_id);

	-- Dataset provenance
	CREATE TABLE IF NOT EXISTS program_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	-- Application state slots (starred set, share link)
	CREATE TABLE IF NOT EXISTS app_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Import log table
	CREATE TABLE IF NOT EXISTS import_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file_path TEXT NOT NULL,
		file_hash TEXT NOT NULL,
		imported_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		days_imported INTEGER,
		sessions_imported INTEGER,
		items_imported INTEGER,
		status TEXT CHECK(status IN ('success', 'partial', 'failed')),
		error_message TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_import_log_file_hash ON import_log(file_hash);

	-- FTS5 tables for full-text search
	-- Natural language search with porter stemming
	CREATE VIRTUAL TABLE IF NOT EXISTS sessions_fts USING fts5(
		title,
		track,
		room,
		content=sessions,
		content_rowid=id,
		tokenize='porter unicode61'
	);

	CREATE VIRTUAL TABLE IF NOT EXISTS items_fts USING fts5(
		title,
		authors,
		content=items,
		content_rowid=id,
		tokenize='porter unicode61'
	);

	-- Triggers to keep FTS in sync
	CREATE TRIGGER IF NOT EXISTS sessions_ai AFTER INSERT ON sessions BEGIN
		INSERT INTO sessions_fts(rowid, title, track, room)
		VALUES (new.id, new.title, new.track, new.room);
	END;

	CREATE TRIGGER IF NOT EXISTS sessions_ad AFTER DELETE ON sessions BEGIN
		INSERT INTO sessions_fts(sessions_fts, rowid, title, track, room)
		VALUES ('delete', old.id, old.title, old.track, old.room);
	END;

	CREATE TRIGGER IF NOT EXISTS sessions_au AFTER UPDATE ON sessions BEGIN
		INSERT INTO sessions_fts(sessions_fts, rowid, title, track, room)
		VALUES ('delete', old.id, old.title, old.track, old.room);
		INSERT INTO sessions_fts(rowid, title, track, room)
		VALUES (new.id, new.title, new.track, new.room);
	END;

	CREATE TRIGGER IF NOT EXISTS items_ai AFTER INSERT ON items BEGIN
		INSERT INTO items_fts(rowid, title, authors)
		VALUES (new.id, new.title, new.authors);
	END;

	CREATE TRIGGER IF NOT EXISTS items_ad AFTER DELETE ON items BEGIN
		INSERT INTO items_fts(items_fts, rowid, title, authors)
		VALUES ('delete', old.id, old.title, old.authors);
	END;

	CREATE TRIGGER IF NOT EXISTS items_au AFTER UPDATE ON items BEGIN
		INSERT INTO items_fts(items_fts, rowid, title, authors)
		VALUES ('delete', old.id, old.title, old.authors);
		INSERT INTO items_fts(rowid, title, authors)
		VALUES (new.id, new.title, new.authors);
	END;
	`

	_, err := db.conn.Exec(schema)
	return err
}
