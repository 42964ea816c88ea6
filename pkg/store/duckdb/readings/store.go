package readings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/bp-atlas/pkg/models/store"
	"github.com/de-tools/bp-atlas/pkg/store/duckdb"
	"github.com/google/uuid"
)

var ErrReportNotFound = errors.New("report not found")

// Store persists accepted reports and their readings in DuckDB.
// Write operations join the transaction carried by ctx, if any.
type Store interface {
	AddReport(ctx context.Context, report *store.Report) (string, error)
	GetReport(ctx context.Context, id string) (*store.Report, error)
	ListReports(ctx context.Context) ([]store.Report, error)
	// ListReadings returns readings taken on days in [from, to). A zero bound
	// leaves that side open.
	ListReadings(ctx context.Context, from, to time.Time) ([]store.Reading, error)
}

type readingsStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &readingsStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *readingsStore) inTransaction(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		return fn(tx)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *readingsStore) AddReport(ctx context.Context, report *store.Report) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report is nil")
	}
	id := report.ID
	if id == "" {
		id = uuid.NewString()
	}
	importedAt := report.ImportedAt
	if importedAt.IsZero() {
		importedAt = s.now()
	}

	err := s.inTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO reports (
				id, source, imported_at, member_name, email, month, year,
				gender, date_of_birth, height, weight, summary
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id,
			report.Source,
			importedAt,
			report.MemberName,
			report.Email,
			report.Month,
			report.Year,
			report.Gender,
			report.DateOfBirth,
			report.Height,
			report.Weight,
			nullString(report.Summary),
		)
		if err != nil {
			return fmt.Errorf("insert report: %w", err)
		}

		if len(report.Readings) == 0 {
			return nil
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO readings (
				report_id, seq, reading_date, reading_time, taken_at,
				systolic, diastolic, heart_rate, reading_type
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare statement: %w", err)
		}
		defer stmt.Close()

		for i, r := range report.Readings {
			_, err = stmt.ExecContext(ctx,
				id,
				i,
				r.Date,
				r.Time,
				nullTime(r.TakenAt),
				r.Systolic,
				r.Diastolic,
				r.HeartRate,
				r.ReadingType,
			)
			if err != nil {
				return fmt.Errorf("insert reading %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

const reportColumns = `
	r.id, r.source, r.imported_at, r.member_name, r.email, r.month, r.year,
	r.gender, r.date_of_birth, r.height, r.weight, r.summary,
	(SELECT COUNT(*) FROM readings rd WHERE rd.report_id = r.id) AS readings_count`

func (s *readingsStore) GetReport(ctx context.Context, id string) (*store.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports r WHERE r.id = ?`
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}
	defer rows.Close()

	reports, err := scanReportRows(rows)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, ErrReportNotFound
	}
	report := reports[0]

	readings, err := s.queryReadings(ctx, `
		SELECT report_id, seq, reading_date, reading_time, taken_at,
			systolic, diastolic, heart_rate, reading_type
		FROM readings
		WHERE report_id = ?
		ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	report.Readings = readings
	return &report, nil
}

func (s *readingsStore) ListReports(ctx context.Context) ([]store.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports r ORDER BY r.imported_at DESC, r.id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()
	return scanReportRows(rows)
}

func (s *readingsStore) ListReadings(ctx context.Context, from, to time.Time) ([]store.Reading, error) {
	conditions := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)
	if !from.IsZero() {
		conditions = append(conditions, "reading_date >= ?")
		args = append(args, from)
	}
	if !to.IsZero() {
		conditions = append(conditions, "reading_date < ?")
		args = append(args, to)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	query := fmt.Sprintf(`
		SELECT report_id, seq, reading_date, reading_time, taken_at,
			systolic, diastolic, heart_rate, reading_type
		FROM readings
		%s
		ORDER BY COALESCE(taken_at, reading_date), report_id, seq
	`, where)

	return s.queryReadings(ctx, query, args...)
}

func (s *readingsStore) queryReadings(ctx context.Context, query string, args ...interface{}) ([]store.Reading, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}
	defer rows.Close()
	return scanReadingRows(rows)
}

func scanReportRows(rows *sql.Rows) ([]store.Report, error) {
	reports := make([]store.Report, 0)
	for rows.Next() {
		var (
			r       store.Report
			source  sql.NullString
			summary sql.NullString
			count   int64
		)
		if err := rows.Scan(
			&r.ID, &source, &r.ImportedAt, &r.MemberName, &r.Email, &r.Month, &r.Year,
			&r.Gender, &r.DateOfBirth, &r.Height, &r.Weight, &summary, &count,
		); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		r.Source = source.String
		if summary.Valid {
			s := summary.String
			r.Summary = &s
		}
		r.ReadingsCount = int(count)
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func scanReadingRows(rows *sql.Rows) ([]store.Reading, error) {
	readings := make([]store.Reading, 0)
	for rows.Next() {
		var (
			r       store.Reading
			takenAt sql.NullTime
		)
		if err := rows.Scan(
			&r.ReportID, &r.Seq, &r.Date, &r.Time, &takenAt,
			&r.Systolic, &r.Diastolic, &r.HeartRate, &r.ReadingType,
		); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		if takenAt.Valid {
			t := takenAt.Time
			r.TakenAt = &t
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

func nullString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
