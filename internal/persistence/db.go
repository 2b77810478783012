// Package persistence provides SQLite-based storage for finished road
// plans, so downstream generators (building placement, scene assembly)
// can consume a plan without re-running the pipeline.
package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/roadplan/internal/density"
	"github.com/talgya/roadplan/internal/geom"
	"github.com/talgya/roadplan/internal/roadnet"
)

// DB wraps a SQLite connection for plan persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS roads (
		id TEXT PRIMARY KEY,
		type INTEGER NOT NULL,
		width REAL NOT NULL,
		demand REAL NOT NULL,
		from_x REAL NOT NULL, from_y REAL NOT NULL, from_z REAL NOT NULL,
		to_x REAL NOT NULL, to_y REAL NOT NULL, to_z REAL NOT NULL,
		path_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settlements (
		id TEXT PRIMARY KEY,
		x REAL NOT NULL, y REAL NOT NULL, z REAL NOT NULL,
		radius REAL NOT NULL,
		density_score REAL NOT NULL,
		class INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exclusion_zones (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		x REAL NOT NULL, y REAL NOT NULL, z REAL NOT NULL,
		radius REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS plan_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_roads_type ON roads(type);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SavePlan writes a complete plan to the database (full replace).
func (db *DB) SavePlan(plan *roadnet.Plan) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"roads", "settlements", "exclusion_zones"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	stmt, err := tx.Preparex(`INSERT INTO roads
		(id, type, width, demand, from_x, from_y, from_z, to_x, to_y, to_z, path_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range plan.Roads {
		pathJSON, err := json.Marshal(r.Path)
		if err != nil {
			return fmt.Errorf("marshal road %s path: %w", r.ID, err)
		}
		_, err = stmt.Exec(
			r.ID.String(), r.Type, r.Width, r.Demand,
			r.From.X, r.From.Y, r.From.Z,
			r.To.X, r.To.Y, r.To.Z,
			string(pathJSON),
		)
		if err != nil {
			return fmt.Errorf("insert road %s: %w", r.ID, err)
		}
	}

	for _, s := range plan.Settlements {
		_, err := tx.Exec(`INSERT INTO settlements
			(id, x, y, z, radius, density_score, class)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			s.ID.String(), s.Center.X, s.Center.Y, s.Center.Z,
			s.Radius, s.DensityScore, s.Class,
		)
		if err != nil {
			return fmt.Errorf("insert settlement %s: %w", s.ID, err)
		}
	}

	for _, z := range plan.ExclusionZones {
		_, err := tx.Exec(`INSERT INTO exclusion_zones (x, y, z, radius) VALUES (?, ?, ?, ?)`,
			z.Center.X, z.Center.Y, z.Center.Z, z.Radius,
		)
		if err != nil {
			return fmt.Errorf("insert exclusion zone: %w", err)
		}
	}

	return tx.Commit()
}

// LoadPlan reads the stored plan back from the database.
func (db *DB) LoadPlan() (*roadnet.Plan, error) {
	plan := &roadnet.Plan{}

	type roadRow struct {
		ID       string  `db:"id"`
		Type     uint8   `db:"type"`
		Width    float64 `db:"width"`
		Demand   float64 `db:"demand"`
		FromX    float64 `db:"from_x"`
		FromY    float64 `db:"from_y"`
		FromZ    float64 `db:"from_z"`
		ToX      float64 `db:"to_x"`
		ToY      float64 `db:"to_y"`
		ToZ      float64 `db:"to_z"`
		PathJSON string  `db:"path_json"`
	}
	var roadRows []roadRow
	if err := db.conn.Select(&roadRows, "SELECT * FROM roads"); err != nil {
		return nil, fmt.Errorf("load roads: %w", err)
	}
	for _, row := range roadRows {
		id, err := uuid.Parse(row.ID)
		if err != nil {
			return nil, fmt.Errorf("parse road id %q: %w", row.ID, err)
		}
		var path []geom.Point3
		if err := json.Unmarshal([]byte(row.PathJSON), &path); err != nil {
			return nil, fmt.Errorf("unmarshal road %s path: %w", row.ID, err)
		}
		plan.Roads = append(plan.Roads, &roadnet.Road{
			ID:     id,
			Path:   path,
			Width:  row.Width,
			Type:   roadnet.RoadType(row.Type),
			From:   geom.Point3{X: row.FromX, Y: row.FromY, Z: row.FromZ},
			To:     geom.Point3{X: row.ToX, Y: row.ToY, Z: row.ToZ},
			Demand: row.Demand,
		})
	}

	type settlementRow struct {
		ID           string  `db:"id"`
		X            float64 `db:"x"`
		Y            float64 `db:"y"`
		Z            float64 `db:"z"`
		Radius       float64 `db:"radius"`
		DensityScore float64 `db:"density_score"`
		Class        uint8   `db:"class"`
	}
	var settlementRows []settlementRow
	if err := db.conn.Select(&settlementRows, "SELECT * FROM settlements"); err != nil {
		return nil, fmt.Errorf("load settlements: %w", err)
	}
	for _, row := range settlementRows {
		id, err := uuid.Parse(row.ID)
		if err != nil {
			return nil, fmt.Errorf("parse settlement id %q: %w", row.ID, err)
		}
		plan.Settlements = append(plan.Settlements, density.Settlement{
			ID:           id,
			Center:       geom.Point3{X: row.X, Y: row.Y, Z: row.Z},
			Radius:       row.Radius,
			DensityScore: row.DensityScore,
			Class:        density.DensityClass(row.Class),
		})
	}

	type zoneRow struct {
		ID     int64   `db:"id"`
		X      float64 `db:"x"`
		Y      float64 `db:"y"`
		Z      float64 `db:"z"`
		Radius float64 `db:"radius"`
	}
	var zoneRows []zoneRow
	if err := db.conn.Select(&zoneRows, "SELECT * FROM exclusion_zones"); err != nil {
		return nil, fmt.Errorf("load exclusion zones: %w", err)
	}
	for _, row := range zoneRows {
		plan.ExclusionZones = append(plan.ExclusionZones, roadnet.ExclusionZone{
			Center: geom.Point3{X: row.X, Y: row.Y, Z: row.Z},
			Radius: row.Radius,
		})
	}

	return plan, nil
}

// SaveMeta stores a key-value pair in plan metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO plan_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM plan_meta WHERE key = ?", key)
	return value, err
}
