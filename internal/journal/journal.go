// Package journal is an optional write-only diagnostic sink: tracked events
// stream over a buffered channel into a batching writer backed by a local
// SQLite file. The in-memory session log stays the source of truth; losing
// the journal changes no page behavior.
package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // CGO-free SQLite

	"github.com/BarkinBalci/landing-behavior-service/internal/domain"
)

// Config sizes the journal's buffering and flush behavior.
type Config struct {
	BatchSizeMax int
	FlushTimeout time.Duration
	BufferSize   int
}

// Journal batches events into SQLite on a size or timeout trigger.
type Journal struct {
	db  *sql.DB
	log *zap.Logger
	cfg Config

	in   chan *domain.Event
	done chan struct{}

	mu     sync.RWMutex
	closed bool
}

// Open creates the journal file, initializes the schema, and starts the
// writer goroutine.
func Open(path string, cfg Config, log *zap.Logger) (*Journal, error) {
	// WAL + busy timeout to avoid "database is locked"
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	j := &Journal{
		db:   db,
		log:  log,
		cfg:  cfg,
		in:   make(chan *domain.Event, cfg.BufferSize),
		done: make(chan struct{}),
	}

	go j.run()

	return j, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS events(
	  id          INTEGER PRIMARY KEY,
	  session_id  TEXT NOT NULL,
	  variant     TEXT NOT NULL,
	  name        TEXT NOT NULL,
	  ts          TEXT NOT NULL,
	  fields_json TEXT NOT NULL CHECK (json_valid(fields_json))
	);
	CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id);
	CREATE INDEX IF NOT EXISTS idx_events_name    ON events(name);
	`)
	if err != nil {
		return fmt.Errorf("failed to create journal schema: %w", err)
	}
	return nil
}

// Offer hands an event to the writer without blocking. When the buffer is
// full, or the journal is already shut down, the diagnostic copy is dropped;
// tracking must never stall on the journal.
func (j *Journal) Offer(event *domain.Event) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return
	}

	select {
	case j.in <- event:
	default:
		j.log.Debug("Journal buffer full, dropping event",
			zap.String("event", event.Name))
	}
}

// run batches incoming events and flushes on the size threshold, the flush
// timeout, or shutdown.
func (j *Journal) run() {
	defer close(j.done)

	ticker := time.NewTicker(j.cfg.FlushTimeout)
	defer ticker.Stop()

	batch := make([]*domain.Event, 0, j.cfg.BatchSizeMax)

	for {
		select {
		case event, ok := <-j.in:
			if !ok {
				if len(batch) > 0 {
					j.flush(batch)
				}
				return
			}
			batch = append(batch, event)
			if len(batch) >= j.cfg.BatchSizeMax {
				j.flush(batch)
				batch = batch[:0]
			}

		case <-ticker.C:
			if len(batch) > 0 {
				j.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

func (j *Journal) flush(batch []*domain.Event) {
	tx, err := j.db.Begin()
	if err != nil {
		j.log.Error("Failed to begin journal transaction", zap.Error(err))
		return
	}

	stmt, err := tx.Prepare(`INSERT INTO events(session_id, variant, name, ts, fields_json) VALUES(?,?,?,?,json(?))`)
	if err != nil {
		_ = tx.Rollback()
		j.log.Error("Failed to prepare journal insert", zap.Error(err))
		return
	}
	defer stmt.Close()

	for _, event := range batch {
		fields := "{}"
		if len(event.Fields) > 0 {
			raw, err := json.Marshal(event.Fields)
			if err != nil {
				j.log.Warn("Failed to marshal event fields",
					zap.String("event", event.Name),
					zap.Error(err))
			} else {
				fields = string(raw)
			}
		}

		if _, err := stmt.Exec(event.SessionID, string(event.Variant), event.Name, event.Timestamp, fields); err != nil {
			_ = tx.Rollback()
			j.log.Error("Failed to insert journal event", zap.Error(err))
			return
		}
	}

	if err := tx.Commit(); err != nil {
		j.log.Error("Failed to commit journal batch", zap.Error(err))
		return
	}

	j.log.Debug("Journal batch flushed", zap.Int("event_count", len(batch)))
}

// CountBySession returns how many journaled events carry the given session
// ID. Used by diagnostics and tests.
func (j *Journal) CountBySession(sessionID string) (int, error) {
	var count int
	err := j.db.QueryRow(`SELECT COUNT(*) FROM events WHERE session_id = ?`, sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count journal events: %w", err)
	}
	return count, nil
}

// Close drains the buffer, flushes the final batch, and closes the database.
func (j *Journal) Close() error {
	j.mu.Lock()
	if !j.closed {
		j.closed = true
		close(j.in)
	}
	j.mu.Unlock()

	<-j.done
	return j.db.Close()
}
