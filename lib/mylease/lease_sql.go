package mylease

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/MarcGrol/userarea/lib/mytime"
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS shedlock (
	name VARCHAR(64) PRIMARY KEY,
	lock_until TIMESTAMPTZ NOT NULL,
	locked_at TIMESTAMPTZ NOT NULL,
	locked_by VARCHAR(255) NOT NULL
)`

	acquireSQL = `INSERT INTO shedlock (name, lock_until, locked_at, locked_by) VALUES ($1, $2, $3, $4)
ON CONFLICT (name) DO UPDATE SET lock_until = EXCLUDED.lock_until, locked_at = EXCLUDED.locked_at, locked_by = EXCLUDED.locked_by
WHERE shedlock.lock_until <= EXCLUDED.locked_at`

	releaseSQL = `UPDATE shedlock SET lock_until = GREATEST($2, locked_at + $3 * INTERVAL '1 millisecond') WHERE name = $1 AND locked_by = $4`
)

// SQLLease keeps leases in the shedlock table of a PostgreSQL database
type SQLLease struct {
	db    *sql.DB
	nower mytime.Nower
	owner string
}

func NewSQLLease(db *sql.DB, nower mytime.Nower, owner string) *SQLLease {
	return &SQLLease{
		db:    db,
		nower: nower,
		owner: owner,
	}
}

func (l *SQLLease) EnsureSchema(c context.Context) error {
	_, err := l.db.ExecContext(c, createTableSQL)
	if err != nil {
		return fmt.Errorf("error creating shedlock table: %s", err)
	}
	return nil
}

func (l *SQLLease) TryAcquire(c context.Context, name string, maxHold time.Duration) (bool, error) {
	now := l.nower.Now()
	res, err := l.db.ExecContext(c, acquireSQL, name, now.Add(maxHold), now, l.owner)
	if err != nil {
		return false, fmt.Errorf("error acquiring lease %s: %s", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error acquiring lease %s: %s", name, err)
	}
	return affected == 1, nil
}

func (l *SQLLease) Release(c context.Context, name string, minHold time.Duration) error {
	_, err := l.db.ExecContext(c, releaseSQL, name, l.nower.Now(), minHold.Milliseconds(), l.owner)
	if err != nil {
		return fmt.Errorf("error releasing lease %s: %s", name, err)
	}
	return nil
}
