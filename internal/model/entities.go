// Package model defines the typed entities produced by one ingestion run.
//
// All entities are value objects: built once by the normalizer, never
// mutated afterwards. Nullable scalars use pgtype values with Valid=false
// as the uniform "no value", so malformed upstream data maps cleanly to
// SQL NULLs instead of errors.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ContestCategory is one competition category of the event.
type ContestCategory struct {
	ID   pgtype.Int4
	Name string
}

// SplitDefinition is one timing split/checkpoint of a contest.
type SplitDefinition struct {
	ID                pgtype.Int4
	Name              string
	Label             string
	SplitType         pgtype.Int4
	ContestCategoryID pgtype.Int4
	TypeOfSportID     pgtype.Int4
}

// Athlete is one starting-list entry.
//
// Bib stays NULL until race-day assignment. Age is derived from YearBorn
// at normalization time and is never set without a birth year.
type Athlete struct {
	Bib               pgtype.Int4
	Contest           pgtype.Text
	Name              pgtype.Text
	Gender            pgtype.Text
	Start             pgtype.Text
	AgeGroup          pgtype.Text
	Club              pgtype.Text
	Company           pgtype.Text
	Country           pgtype.Text
	YearBorn          pgtype.Int4
	Age               pgtype.Int4
	ContestCategory   pgtype.Text
	ContestCategoryID pgtype.Int4
}

// WaitlistAthlete is one waitlist entry.
//
// The upstream list carries two rank-like columns whose relationship is
// not documented; AutoRank and AutoRank2 are kept as independent values.
// The positional schema is incompatible with Athlete, so the two types
// are deliberately not unified.
type WaitlistAthlete struct {
	AutoRank          pgtype.Int4
	ID                pgtype.Int4
	AutoRank2         pgtype.Int4
	Name              pgtype.Text
	Gender            pgtype.Text
	AgeGroup          pgtype.Text
	Country           pgtype.Text
	ContestCategory   pgtype.Text
	ContestCategoryID pgtype.Int4
}

// AuditEvent records one pipeline run: when it happened, the exact raw
// upstream payloads it consumed, and how many rows it produced.
// Audit rows are append-only.
type AuditEvent struct {
	CreatedAt     time.Time
	RunID         uuid.UUID
	UsedData      []byte
	AthletesCount int
	WaitlistCount int
}
