// Package persistence provides SQLite-backed save slots. Each slot stores
// a full game snapshot as JSON plus a queryable mirror of the chronicle.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/graveworks/lichfolio/internal/gamedata"
)

// ErrSlotNotFound is returned when loading or deleting a missing slot.
var ErrSlotNotFound = errors.New("save slot not found")

// Store wraps a SQLite connection for save management.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a save database at the given path. Use ":memory:"
// for an ephemeral store.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		slot TEXT PRIMARY KEY,
		format_version INTEGER NOT NULL,
		current_year INTEGER NOT NULL,
		total_years_played INTEGER NOT NULL,
		total_value REAL NOT NULL,
		saved_at TEXT NOT NULL,
		snapshot_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS chronicle_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		slot TEXT NOT NULL,
		event_id TEXT NOT NULL,
		event_name TEXT NOT NULL,
		event_type INTEGER NOT NULL,
		severity INTEGER NOT NULL,
		year_occurred INTEGER NOT NULL,
		kingdom_id TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_chronicle_slot ON chronicle_entries(slot);
	CREATE INDEX IF NOT EXISTS idx_chronicle_year ON chronicle_entries(year_occurred);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// SlotInfo summarizes one save slot without decoding its snapshot.
type SlotInfo struct {
	Slot             string    `db:"slot"`
	FormatVersion    int       `db:"format_version"`
	CurrentYear      int       `db:"current_year"`
	TotalYearsPlayed int       `db:"total_years_played"`
	TotalValue       float64   `db:"total_value"`
	SavedAt          time.Time `db:"saved_at"`
}

// SaveGame writes the game into a slot, replacing any previous save there.
func (s *Store) SaveGame(slot string, g *gamedata.GameData) error {
	if slot == "" {
		return errors.New("empty slot name")
	}

	snap := g.Snapshot()
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT OR REPLACE INTO saves
		(slot, format_version, current_year, total_years_played, total_value, saved_at, snapshot_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		slot, snap.Version, snap.CurrentYear, snap.TotalYearsPlayed,
		g.Portfolio().TotalValue(), time.Now().UTC().Format(time.RFC3339), string(raw),
	)
	if err != nil {
		return fmt.Errorf("insert save: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM chronicle_entries WHERE slot = ?", slot); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO chronicle_entries
		(slot, event_id, event_name, event_type, severity, year_occurred, kingdom_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range snap.ChronicleEntries {
		if _, err := stmt.Exec(slot, e.EventID, e.EventName,
			int(e.EventType), int(e.Severity), e.YearOccurred, e.KingdomID); err != nil {
			return fmt.Errorf("insert chronicle entry %s: %w", e.EventID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	slog.Info("game saved", "slot", slot,
		"year", snap.CurrentYear, "entries", len(snap.ChronicleEntries))
	return nil
}

// LoadGame restores the game from a slot.
func (s *Store) LoadGame(slot string, g *gamedata.GameData) error {
	var raw string
	err := s.conn.Get(&raw, "SELECT snapshot_json FROM saves WHERE slot = ?", slot)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSlotNotFound
	}
	if err != nil {
		return fmt.Errorf("read save: %w", err)
	}

	var snap gamedata.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if err := g.Restore(snap); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}

	slog.Info("game loaded", "slot", slot, "year", snap.CurrentYear)
	return nil
}

// ListSlots returns all save slots, most recently saved first.
func (s *Store) ListSlots() ([]SlotInfo, error) {
	var rows []struct {
		Slot             string  `db:"slot"`
		FormatVersion    int     `db:"format_version"`
		CurrentYear      int     `db:"current_year"`
		TotalYearsPlayed int     `db:"total_years_played"`
		TotalValue       float64 `db:"total_value"`
		SavedAt          string  `db:"saved_at"`
	}
	err := s.conn.Select(&rows, `SELECT slot, format_version, current_year,
		total_years_played, total_value, saved_at
		FROM saves ORDER BY saved_at DESC`)
	if err != nil {
		return nil, err
	}

	infos := make([]SlotInfo, 0, len(rows))
	for _, r := range rows {
		savedAt, err := time.Parse(time.RFC3339, r.SavedAt)
		if err != nil {
			return nil, fmt.Errorf("parse saved_at for slot %s: %w", r.Slot, err)
		}
		infos = append(infos, SlotInfo{
			Slot:             r.Slot,
			FormatVersion:    r.FormatVersion,
			CurrentYear:      r.CurrentYear,
			TotalYearsPlayed: r.TotalYearsPlayed,
			TotalValue:       r.TotalValue,
			SavedAt:          savedAt,
		})
	}
	return infos, nil
}

// DeleteSlot removes a save and its chronicle mirror.
func (s *Store) DeleteSlot(slot string) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM saves WHERE slot = ?", slot)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSlotNotFound
	}

	if _, err := tx.Exec("DELETE FROM chronicle_entries WHERE slot = ?", slot); err != nil {
		return err
	}

	return tx.Commit()
}

// ChronicleEntryRow is one mirrored chronicle entry.
type ChronicleEntryRow struct {
	EventID      string `db:"event_id"`
	EventName    string `db:"event_name"`
	EventType    int    `db:"event_type"`
	Severity     int    `db:"severity"`
	YearOccurred int    `db:"year_occurred"`
	KingdomID    string `db:"kingdom_id"`
}

// ChronicleEntries returns the mirrored chronicle for a slot, most recent
// year first.
func (s *Store) ChronicleEntries(slot string, limit int) ([]ChronicleEntryRow, error) {
	var entries []ChronicleEntryRow
	err := s.conn.Select(&entries, `SELECT event_id, event_name, event_type,
		severity, year_occurred, kingdom_id
		FROM chronicle_entries WHERE slot = ?
		ORDER BY year_occurred DESC, id DESC LIMIT ?`, slot, limit)
	return entries, err
}
