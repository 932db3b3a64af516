package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/MarcGrol/userarea/lib/myerrors"
)

const (
	columns = `id, number, status, fo_module, ip_right_type, eservice_name, applicant, representative, owner, fees, ` +
		`locked_by, locked_date, last_modified_by, last_modified_date, status_date, application_date, created_date`

	createTableSQL = `CREATE TABLE IF NOT EXISTS application (
	id BIGINT PRIMARY KEY,
	number VARCHAR(64) NOT NULL,
	status VARCHAR(64) NOT NULL,
	fo_module VARCHAR(32) NOT NULL,
	ip_right_type VARCHAR(64) NOT NULL DEFAULT '',
	eservice_name VARCHAR(255) NOT NULL DEFAULT '',
	applicant VARCHAR(255) NOT NULL DEFAULT '',
	representative VARCHAR(255) NOT NULL DEFAULT '',
	owner VARCHAR(255) NOT NULL,
	fees NUMERIC(12,2),
	locked_by VARCHAR(255),
	locked_date TIMESTAMPTZ,
	last_modified_by VARCHAR(255) NOT NULL DEFAULT '',
	last_modified_date TIMESTAMPTZ,
	status_date TIMESTAMPTZ,
	application_date TIMESTAMPTZ,
	created_date TIMESTAMPTZ NOT NULL
)`

	getSQL      = `SELECT ` + columns + ` FROM application WHERE id = $1`
	getByIDsSQL = `SELECT ` + columns + ` FROM application WHERE id = ANY($1) ORDER BY id`
	lockedSQL   = `SELECT ` + columns + ` FROM application WHERE locked_by IS NOT NULL ORDER BY id`

	// lock columns are only written on insert; an update of a row locked by someone else touches nothing
	upsertSQL = `INSERT INTO application (` + columns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
ON CONFLICT (id) DO UPDATE SET number = EXCLUDED.number, status = EXCLUDED.status, fo_module = EXCLUDED.fo_module,
ip_right_type = EXCLUDED.ip_right_type, eservice_name = EXCLUDED.eservice_name, applicant = EXCLUDED.applicant,
representative = EXCLUDED.representative, owner = EXCLUDED.owner, fees = EXCLUDED.fees,
last_modified_by = EXCLUDED.last_modified_by, last_modified_date = EXCLUDED.last_modified_date,
status_date = EXCLUDED.status_date, application_date = EXCLUDED.application_date
WHERE application.locked_by IS NULL OR application.locked_by = $18`

	// a single conditional statement: two concurrent lockers can never both win
	lockSQL = `UPDATE application SET locked_by = $2, locked_date = $3 WHERE id = $1 AND (locked_by IS NULL OR locked_by = $2) RETURNING ` + columns

	unlockSQL      = `UPDATE application SET locked_by = NULL, locked_date = NULL WHERE id = $1 AND locked_by = $2`
	forceUnlockSQL = `UPDATE application SET locked_by = NULL, locked_date = NULL
WHERE id = $1 AND locked_by IS NOT NULL AND (locked_date IS NULL OR locked_date <= $2)`
)

type rowScanner interface {
	Scan(dest ...any) error
}

// SQLStore keeps applications in PostgreSQL
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) EnsureSchema(c context.Context) error {
	_, err := s.db.ExecContext(c, createTableSQL)
	if err != nil {
		return fmt.Errorf("error creating application table: %s", err)
	}
	return nil
}

func scanApplication(row rowScanner) (Application, error) {
	a := Application{}
	err := row.Scan(&a.ID, &a.Number, &a.Status, &a.FoModule, &a.IPRightType, &a.EServiceName, &a.Applicant,
		&a.Representative, &a.Owner, &a.Fees, &a.LockedBy, &a.LockedDate, &a.LastModifiedBy, &a.LastModifiedDate,
		&a.StatusDate, &a.ApplicationDate, &a.CreatedDate)
	return a, err
}

func (s *SQLStore) Get(c context.Context, id int64) (Application, bool, error) {
	a, err := scanApplication(s.db.QueryRowContext(c, getSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, false, nil
		}
		return Application{}, false, fmt.Errorf("error fetching application %d: %s", id, err)
	}
	return a, true, nil
}

func (s *SQLStore) query(c context.Context, query string, args ...any) ([]Application, error) {
	rows, err := s.db.QueryContext(c, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (s *SQLStore) GetByIDs(c context.Context, ids []int64) ([]Application, error) {
	apps, err := s.query(c, getByIDsSQL, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("error fetching applications %v: %s", ids, err)
	}
	return apps, nil
}

func (s *SQLStore) FindLocked(c context.Context) ([]Application, error) {
	apps, err := s.query(c, lockedSQL)
	if err != nil {
		return nil, fmt.Errorf("error fetching locked applications: %s", err)
	}
	return apps, nil
}

type execer interface {
	ExecContext(c context.Context, query string, args ...any) (sql.Result, error)
}

func save(c context.Context, db execer, a Application, username string) error {
	res, err := db.ExecContext(c, upsertSQL, a.ID, a.Number, a.Status, a.FoModule, a.IPRightType, a.EServiceName,
		a.Applicant, a.Representative, a.Owner, a.Fees, a.LockedBy, a.LockedDate, a.LastModifiedBy, a.LastModifiedDate,
		a.StatusDate, a.ApplicationDate, a.CreatedDate, username)
	if err != nil {
		return fmt.Errorf("error saving application %d: %s", a.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error saving application %d: %s", a.ID, err)
	}
	if affected == 0 {
		return myerrors.NewConflictError(fmt.Errorf("application %s is locked by another user than %s", a.Number, username))
	}
	return nil
}

func (s *SQLStore) Save(c context.Context, a Application, username string) error {
	return save(c, s.db, a, username)
}

func (s *SQLStore) SaveAll(c context.Context, apps []Application, username string) error {
	tx, err := s.db.BeginTx(c, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %s", err)
	}
	for _, a := range apps {
		err = save(c, tx, a, username)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("error committing applications: %s", err)
	}
	return nil
}

func (s *SQLStore) Lock(c context.Context, id int64, username string, lockedAt time.Time) (Application, error) {
	a, err := scanApplication(s.db.QueryRowContext(c, lockSQL, id, username, lockedAt))
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Application{}, fmt.Errorf("error locking application %d: %s", id, err)
	}

	// nothing updated: either absent or held by someone else
	existing, found, err := s.Get(c, id)
	if err != nil {
		return Application{}, err
	}
	if !found {
		return Application{}, myerrors.NewNotFoundError(fmt.Errorf("application %d not found", id))
	}
	return Application{}, lockConflict(existing)
}

func lockConflict(a Application) error {
	holder := ""
	if a.LockedBy != nil {
		holder = *a.LockedBy
	}
	return myerrors.NewConflictError(fmt.Errorf("application %s is locked by %s", a.Number, holder))
}

func (s *SQLStore) Unlock(c context.Context, id int64, username string) (bool, error) {
	res, err := s.db.ExecContext(c, unlockSQL, id, username)
	if err != nil {
		return false, fmt.Errorf("error unlocking application %d: %s", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error unlocking application %d: %s", id, err)
	}
	return affected == 1, nil
}

func (s *SQLStore) ForceUnlock(c context.Context, id int64, lockedBefore time.Time) (bool, error) {
	res, err := s.db.ExecContext(c, forceUnlockSQL, id, lockedBefore)
	if err != nil {
		return false, fmt.Errorf("error force-unlocking application %d: %s", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error force-unlocking application %d: %s", id, err)
	}
	return affected == 1, nil
}
