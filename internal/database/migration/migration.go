package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_document_requests",
		SQL: `CREATE TABLE IF NOT EXISTS document_requests (
  id                    TEXT          PRIMARY KEY,
  resident_id           TEXT          NOT NULL,
  type                  TEXT          NOT NULL,
  status                TEXT          NOT NULL,
  purpose               TEXT          NOT NULL DEFAULT '',
  request_date          TIMESTAMPTZ   NOT NULL DEFAULT now(),
  processed_date        TIMESTAMPTZ,
  completed_date        TIMESTAMPTZ,
  processed_by          TEXT          NOT NULL DEFAULT '',
  payment_status        TEXT          NOT NULL,
  payment_amount        NUMERIC(12,2) NOT NULL CHECK (payment_amount >= 0),
  payment_method        TEXT          NOT NULL DEFAULT '',
  payment_reference     TEXT          NOT NULL DEFAULT '',
  payment_proof         TEXT          NOT NULL DEFAULT '',
  payment_reviewed_by   TEXT          NOT NULL DEFAULT '',
  payment_reviewed_date TIMESTAMPTZ,
  reference_number      TEXT          NOT NULL UNIQUE,
  notes                 TEXT          NOT NULL DEFAULT '',
  document_url          TEXT          NOT NULL DEFAULT '',
  CHECK (status <> 'completed' OR payment_status = 'verified')
);`,
	},
	{
		Name: "create_index_document_requests_resident_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_requests_resident_id ON document_requests (resident_id);`,
	},
	{
		Name: "create_index_document_requests_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_requests_status ON document_requests (status);`,
	},
	{
		Name: "create_index_document_requests_request_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_requests_request_date ON document_requests (request_date);`,
	},
}

// EnsureMigrated creates the schema unless the document_requests table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log logrus.FieldLogger, dbHost string) error {
	start := time.Now()
	log = log.WithFields(logrus.Fields{"component": "database", "db_host": dbHost})

	log.WithFields(logrus.Fields{"event": "db_migration_check", "status": "starting"}).Info("checking schema")

	var exists bool
	query := "SELECT to_regclass('public.document_requests') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_failed",
			"status":      "error",
			"duration_ms": time.Since(start).Milliseconds(),
		}).WithError(err).Error("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_skip",
			"status":      "success",
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("schema already exists, skipping migration")
		return nil
	}

	log.WithFields(logrus.Fields{"event": "db_migration_start", "status": "in_progress"}).Info("applying migrations")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.WithFields(logrus.Fields{
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}).WithError(err).Error("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.WithFields(logrus.Fields{
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Info("migration step applied")
	}

	log.WithFields(logrus.Fields{
		"event":       "db_migration_success",
		"status":      "success",
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("migrations applied")

	return nil
}
