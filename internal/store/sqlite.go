package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"MarketTracker/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists readings to a SQLite database. Writes are
// serialized with a mutex; reads go straight to the pool so ranking
// queries never block the capture loop.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so analysis reads proceed while the capture loop writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id                      INTEGER PRIMARY KEY AUTOINCREMENT,
			name                    TEXT NOT NULL UNIQUE,
			region                  TEXT NOT NULL,
			first_seen              INTEGER NOT NULL,
			highest_difference_ever INTEGER NOT NULL DEFAULT 0,
			highest_difference_date INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS capture_sessions (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			public_id      TEXT NOT NULL UNIQUE,
			start_time     INTEGER NOT NULL,
			end_time       INTEGER,
			region         TEXT,
			goods_captured INTEGER NOT NULL DEFAULT 0,
			status         TEXT NOT NULL DEFAULT 'active',
			error_message  TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS price_readings (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp           INTEGER NOT NULL,
			session_id          INTEGER REFERENCES capture_sessions(id),
			product_id          INTEGER NOT NULL REFERENCES products(id),
			region              TEXT NOT NULL,
			local_price         INTEGER NOT NULL,
			friend_price        INTEGER,
			average_cost        INTEGER,
			quantity_owned      INTEGER NOT NULL DEFAULT 0,
			vs_local_percent    REAL,
			vs_owned_percent    REAL,
			absolute_difference INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_readings_ts ON price_readings(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_readings_product_ts ON price_readings(product_id, timestamp)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) SaveReading(r *model.PriceReading) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	productID, highest, err := getOrCreateProduct(tx, r.ProductName, r.Region, r.Timestamp)
	if err != nil {
		return 0, err
	}

	if r.FriendPrice > 0 && r.LocalPrice > 0 {
		r.AbsoluteDifference = r.FriendPrice - r.LocalPrice
		if r.AbsoluteDifference > highest {
			_, err = tx.Exec(`UPDATE products SET highest_difference_ever=?, highest_difference_date=? WHERE id=?`,
				r.AbsoluteDifference, r.Timestamp.Unix(), productID)
			if err != nil {
				return 0, fmt.Errorf("update all-time high: %w", err)
			}
		}
	}

	res, err := tx.Exec(`INSERT INTO price_readings
		(timestamp, session_id, product_id, region, local_price, friend_price,
		 average_cost, quantity_owned, vs_local_percent, vs_owned_percent, absolute_difference)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		r.Timestamp.Unix(), nullInt64(r.SessionID), productID, string(r.Region),
		r.LocalPrice, nullInt(r.FriendPrice), nullInt(r.AverageCost), r.QuantityOwned,
		nullFloat(r.VsLocalPct), nullFloat(r.VsOwnedPct), nullInt(r.AbsoluteDifference),
	)
	if err != nil {
		return 0, fmt.Errorf("insert reading: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading id: %w", err)
	}

	if r.SessionID != 0 {
		if _, err := tx.Exec(`UPDATE capture_sessions SET goods_captured = goods_captured + 1 WHERE id=?`, r.SessionID); err != nil {
			return 0, fmt.Errorf("bump session counter: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	r.ID = id
	return id, nil
}

func getOrCreateProduct(tx *sql.Tx, name string, region model.Region, now time.Time) (id int64, highest int, err error) {
	err = tx.QueryRow(`SELECT id, highest_difference_ever FROM products WHERE name=?`, name).Scan(&id, &highest)
	if err == sql.ErrNoRows {
		res, insErr := tx.Exec(`INSERT INTO products (name, region, first_seen) VALUES (?,?,?)`,
			name, string(region), now.Unix())
		if insErr != nil {
			return 0, 0, fmt.Errorf("create product %q: %w", name, insErr)
		}
		id, insErr = res.LastInsertId()
		if insErr != nil {
			return 0, 0, fmt.Errorf("product id: %w", insErr)
		}
		return id, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("lookup product %q: %w", name, err)
	}
	return id, highest, nil
}

func (s *SQLiteStore) StartSession(region model.Region) (*model.CaptureSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &model.CaptureSession{
		PublicID:  uuid.NewString(),
		StartTime: time.Now(),
		Region:    region,
		Status:    model.SessionActive,
	}
	res, err := s.db.Exec(`INSERT INTO capture_sessions (public_id, start_time, region, status) VALUES (?,?,?,?)`,
		sess.PublicID, sess.StartTime.Unix(), string(region), sess.Status)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	sess.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("session id: %w", err)
	}
	return sess, nil
}

func (s *SQLiteStore) EndSession(sessionID int64, status, errorMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE capture_sessions SET end_time=?, status=?, error_message=? WHERE id=?`,
		time.Now().Unix(), status, nullString(errorMsg), sessionID)
	if err != nil {
		return fmt.Errorf("end session %d: %w", sessionID, err)
	}
	return nil
}

const readingColumns = `r.id, p.name, r.region, r.local_price,
	COALESCE(r.friend_price, 0), COALESCE(r.average_cost, 0), r.quantity_owned,
	r.vs_local_percent, r.vs_owned_percent, COALESCE(r.absolute_difference, 0),
	r.timestamp, COALESCE(r.session_id, 0)`

func (s *SQLiteStore) LatestReadingsToday() ([]model.PriceReading, error) {
	midnight := time.Now().UTC().Truncate(24 * time.Hour).Unix()
	rows, err := s.db.Query(`SELECT `+readingColumns+`
		FROM price_readings r
		JOIN products p ON p.id = r.product_id
		JOIN (SELECT product_id, MAX(timestamp) AS max_ts
		      FROM price_readings WHERE timestamp >= ?
		      GROUP BY product_id) latest
		  ON latest.product_id = r.product_id AND latest.max_ts = r.timestamp
		ORDER BY COALESCE(r.absolute_difference, 0) DESC`, midnight)
	if err != nil {
		return nil, fmt.Errorf("query today's readings: %w", err)
	}
	defer rows.Close()
	return scanReadings(rows)
}

func (s *SQLiteStore) History(productName string, since time.Time) ([]model.PriceReading, error) {
	rows, err := s.db.Query(`SELECT `+readingColumns+`
		FROM price_readings r
		JOIN products p ON p.id = r.product_id
		WHERE p.name = ? AND r.timestamp >= ?
		ORDER BY r.timestamp ASC`, productName, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("query history for %q: %w", productName, err)
	}
	defer rows.Close()
	return scanReadings(rows)
}

func (s *SQLiteStore) PriceStats(productName string) (*model.PriceStats, error) {
	readings, err := s.History(productName, time.Unix(0, 0))
	if err != nil {
		return nil, err
	}
	stats := &model.PriceStats{TotalReadings: len(readings)}
	if len(readings) == 0 {
		return stats, nil
	}

	var localSum, friendSum, diffSum float64
	var localN, friendN, diffN int
	for _, r := range readings {
		if r.LocalPrice > 0 {
			localSum += float64(r.LocalPrice)
			localN++
		}
		if r.FriendPrice > 0 {
			friendSum += float64(r.FriendPrice)
			friendN++
		}
		if d, ok := r.ProfitPotential(); ok {
			diffSum += float64(d)
			diffN++
			if diffN == 1 || d > stats.MaxDifference {
				stats.MaxDifference = d
			}
			if diffN == 1 || d < stats.MinDifference {
				stats.MinDifference = d
			}
		}
	}
	if localN > 0 {
		stats.AvgLocalPrice = localSum / float64(localN)
	}
	if friendN > 0 {
		stats.AvgFriendPrice = friendSum / float64(friendN)
	}
	if diffN > 0 {
		stats.AvgDifference = diffSum / float64(diffN)
	}
	return stats, nil
}

func (s *SQLiteStore) AllTimeHighs() ([]model.Product, error) {
	rows, err := s.db.Query(`SELECT id, name, region, first_seen,
			highest_difference_ever, COALESCE(highest_difference_date, 0)
		FROM products
		WHERE highest_difference_ever > 0
		ORDER BY highest_difference_ever DESC`)
	if err != nil {
		return nil, fmt.Errorf("query all-time highs: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		var region string
		var firstSeen, highDate int64
		if err := rows.Scan(&p.ID, &p.Name, &region, &firstSeen, &p.HighestDifferenceEver, &highDate); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Region = model.Region(region)
		p.FirstSeen = time.Unix(firstSeen, 0)
		if highDate > 0 {
			p.HighestDifferenceDate = time.Unix(highDate, 0)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}

func scanReadings(rows *sql.Rows) ([]model.PriceReading, error) {
	var readings []model.PriceReading
	for rows.Next() {
		var r model.PriceReading
		var region string
		var ts int64
		var vsLocal, vsOwned sql.NullFloat64
		if err := rows.Scan(&r.ID, &r.ProductName, &region, &r.LocalPrice,
			&r.FriendPrice, &r.AverageCost, &r.QuantityOwned,
			&vsLocal, &vsOwned, &r.AbsoluteDifference, &ts, &r.SessionID); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		r.Region = model.Region(region)
		r.Timestamp = time.Unix(ts, 0)
		if vsLocal.Valid {
			r.VsLocalPct = &vsLocal.Float64
		}
		if vsOwned.Valid {
			r.VsOwnedPct = &vsOwned.Float64
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

func nullInt(v int) interface{} {
	if v == 0 {
		return nil
	}
	return v
}

func nullInt64(v int64) interface{} {
	if v == 0 {
		return nil
	}
	return v
}

func nullFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(v string) interface{} {
	if v == "" {
		return nil
	}
	return v
}
