package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ReportsTableSchema = `
	CREATE TABLE IF NOT EXISTS reports (
		id VARCHAR NOT NULL PRIMARY KEY,
		source VARCHAR,
		imported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		member_name VARCHAR,
		email VARCHAR,
		month VARCHAR,
		year VARCHAR,
		gender VARCHAR,
		date_of_birth VARCHAR,
		height VARCHAR,
		weight VARCHAR,
		summary VARCHAR
	);
`
const ReadingsTableSchema = `
	CREATE TABLE IF NOT EXISTS readings (
		report_id VARCHAR NOT NULL,
		seq INTEGER NOT NULL,
		reading_date TIMESTAMP NOT NULL,
		reading_time VARCHAR,
		taken_at TIMESTAMP NULL,
		systolic INTEGER,
		diastolic INTEGER,
		heart_rate INTEGER,
		reading_type VARCHAR,
		PRIMARY KEY (report_id, seq)
	);
`

var bootQueries = []string{
	ReportsTableSchema,
	ReadingsTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		bootQueries := append([]string{}, bootQueries...)

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
