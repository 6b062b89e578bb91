/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

const createFramesTable = `
CREATE TABLE IF NOT EXISTS frames (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	direction TEXT NOT NULL,
	transaction_code INTEGER NOT NULL,
	trader_id INTEGER NOT NULL,
	error_code INTEGER NOT NULL,
	feed_timestamp INTEGER NOT NULL,
	frame BLOB NOT NULL,
	recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_frames_session ON frames(session_id);
CREATE INDEX IF NOT EXISTS idx_frames_code ON frames(transaction_code);
`

const createSessionsTable = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	remote_addr TEXT NOT NULL,
	started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	ended_at DATETIME
);
`

const insertFrameQuery = `
INSERT INTO frames (session_id, direction, transaction_code, trader_id, error_code, feed_timestamp, frame)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

const insertSessionQuery = `
INSERT OR REPLACE INTO sessions (session_id, remote_addr) VALUES (?, ?)
`

const endSessionQuery = `
UPDATE sessions SET ended_at = CURRENT_TIMESTAMP WHERE session_id = ?
`

// FrameDb provides SQLite storage for the exchange's wire traffic with
// prepared statements. The frame insert statement is prepared once and
// reused for all batch operations, avoiding SQL parsing overhead on the
// hot path.
type FrameDb struct {
	db *sql.DB

	stmtFrame *sql.Stmt
}

func NewFrameDb(dbPath string) (*FrameDb, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	fdb := &FrameDb{db: db}
	if err := fdb.initSchema(); err != nil {
		_ = db.Close() // Cleanup on error - return value ignored
		return nil, fmt.Errorf("failed to initialize schema: %v", err)
	}

	if fdb.stmtFrame, err = db.Prepare(insertFrameQuery); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare frame statement: %v", err)
	}

	log.Printf("SQLite database initialized at %s", dbPath)
	return fdb, nil
}

func (fdb *FrameDb) initSchema() error {
	if _, err := fdb.db.Exec(createFramesTable); err != nil {
		return err
	}
	_, err := fdb.db.Exec(createSessionsTable)
	return err
}

func (fdb *FrameDb) Close() error {
	// Close prepared statements first - errors ignored as we're shutting down
	if fdb.stmtFrame != nil {
		_ = fdb.stmtFrame.Close()
	}
	return fdb.db.Close()
}

// Session management
func (fdb *FrameDb) CreateSession(sessionId, remoteAddr string) error {
	_, err := fdb.db.Exec(insertSessionQuery, sessionId, remoteAddr)
	return err
}

func (fdb *FrameDb) EndSession(sessionId string) error {
	_, err := fdb.db.Exec(endSessionQuery, sessionId)
	return err
}

// StoreFrame records one wire frame. Direction is "in" for trader requests
// and "out" for exchange responses and broadcasts.
func (fdb *FrameDb) StoreFrame(sessionId, direction string, transactionCode int16, traderId int32, errorCode int16, feedTimestamp uint64, frame []byte) error {
	_, err := fdb.stmtFrame.Exec(sessionId, direction, transactionCode, traderId, errorCode, int64(feedTimestamp), frame)
	return err
}

// Batch operations for better performance
func (fdb *FrameDb) BeginTransaction() (*sql.Tx, error) {
	return fdb.db.Begin()
}

// StoreFrameBatch inserts a frame using the prepared statement within a
// transaction. Using tx.Stmt() binds the prepared statement to the
// transaction context.
func (fdb *FrameDb) StoreFrameBatch(tx *sql.Tx, sessionId, direction string, transactionCode int16, traderId int32, errorCode int16, feedTimestamp uint64, frame []byte) error {
	_, err := tx.Stmt(fdb.stmtFrame).Exec(sessionId, direction, transactionCode, traderId, errorCode, int64(feedTimestamp), frame)
	return err
}

// FrameCount returns the number of recorded frames, for status display.
func (fdb *FrameDb) FrameCount() (int64, error) {
	var n int64
	err := fdb.db.QueryRow("SELECT COUNT(*) FROM frames").Scan(&n)
	return n, err
}
