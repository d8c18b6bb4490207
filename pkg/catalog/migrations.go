package catalog

import (
	"github.com/BurntSushi/migration"
	"github.com/cyclopcam/logs"
	"github.com/cyclopcam/solo2yolo/pkg/dbh"
)

func Migrations(log logs.Log) []migration.Migrator {
	migs := []migration.Migrator{}
	idx := 0

	migs = append(migs, dbh.MakeMigrationFromSQL(log, &idx,
		`
		CREATE TABLE run(
			id INTEGER PRIMARY KEY,
			started_at INT NOT NULL,
			finished_at INT,
			input_root TEXT NOT NULL,
			output_root TEXT NOT NULL,
			seed INT NOT NULL,
			train_fraction REAL NOT NULL,
			val_fraction REAL NOT NULL,
			test_fraction REAL NOT NULL,
			pairs_considered INT
		);

		CREATE TABLE example(
			id INTEGER PRIMARY KEY,
			run_id INT NOT NULL,
			split TEXT NOT NULL,
			stem TEXT NOT NULL,
			source_image TEXT NOT NULL,
			source_annotation TEXT NOT NULL,
			num_boxes INT NOT NULL
		);

		CREATE INDEX idx_example_run_id ON example (run_id);
	`))

	return migs
}
