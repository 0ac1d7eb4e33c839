package store

// The destination tables are fully replaced on every run except
// dataset_update_events, which only grows. Most columns are nullable by
// design: upstream data is loosely typed and soft coercions map bad
// values to NULL.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS contest_categories (
		id   INTEGER,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS splits (
		id                  INTEGER,
		name                TEXT NOT NULL,
		label               TEXT NOT NULL,
		split_type          INTEGER,
		contest_category_id INTEGER,
		type_of_sport_id    INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS athletes (
		bib                 INTEGER,
		contest             TEXT,
		name                TEXT,
		gender              TEXT,
		start               TEXT,
		age_group           TEXT,
		club                TEXT,
		company             TEXT,
		country             TEXT,
		year_born           INTEGER,
		age                 INTEGER,
		contest_category    TEXT,
		contest_category_id INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS athletes_wait_list (
		autorank            INTEGER,
		id                  INTEGER,
		autorank2           INTEGER,
		name                TEXT,
		gender              TEXT,
		age_group           TEXT,
		country             TEXT,
		contest_category    TEXT,
		contest_category_id INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS dataset_update_events (
		id                       BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		created_at               TIMESTAMPTZ NOT NULL,
		run_id                   UUID NOT NULL,
		used_data                JSONB NOT NULL,
		athletes_count           INTEGER NOT NULL,
		athletes_wait_list_count INTEGER NOT NULL
	)`,
}
