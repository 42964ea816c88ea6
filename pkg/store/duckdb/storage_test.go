package duckdb

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_BootsSchema(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "duckdb-test-*")
	require.NoError(t, err)

	defer func() {
		err := os.RemoveAll(tmpDir)
		if err != nil {
			t.Errorf("failed to cleanup test directory: %v", err)
		}
	}()

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := NewDB(Settings{
		DbPath: dbPath,
	})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(
		`INSERT INTO reports (id, source, member_name) VALUES (?, ?, ?)`,
		"report-001", "feb.pdf", "Jane Doe",
	)
	require.NoError(t, err)

	_, err = db.Exec(
		`INSERT INTO readings (report_id, seq, reading_date, reading_time, systolic, diastolic, heart_rate, reading_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		"report-001", 0, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "07:45", 125, 82, 64, "normal",
	)
	require.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM readings WHERE report_id = ?", "report-001").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
