// Package normalize reshapes raw raceresult payloads into typed entities.
//
// All transforms are pure functions of the fetched data: no I/O, no
// mutation of inputs, and soft coercions throughout. A malformed field
// becomes NULL, never an error; only the fetcher can fail a run.
package normalize

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fredgido/triathlon-dashboard/internal/model"
	"github.com/fredgido/triathlon-dashboard/internal/raceresult"
)

// Positional columns of a starting-list row. flag_icon carries only an
// image URL and is dropped.
const (
	athleteColBib = iota
	athleteColContest
	athleteColName
	athleteColGender
	athleteColStart
	athleteColAgeGroup
	athleteColClub
	athleteColCompany
	athleteColFlagIcon
	athleteColCountry
	athleteColYearBorn
)

// Positional columns of a waitlist row. The schema is not interchangeable
// with starting-list rows.
const (
	waitlistColAutoRank = iota
	waitlistColID
	waitlistColAutoRank2
	waitlistColName
	waitlistColGender
	waitlistColAgeGroup
	waitlistColFlagIcon
	waitlistColCountry
)

// genderLabels normalizes the upstream gender markers. Unrecognized raw
// values pass through unchanged.
var genderLabels = map[string]string{
	"M":        "Male",
	"W":        "Female",
	"Männlich": "Male",
	"Weiblich": "Female",
	"Mixed":    "Mixed",
}

// invalidClubs are placeholder strings the registration form produces for
// "no club", matched case-insensitively.
var invalidClubs = map[string]struct{}{
	",  ,":        {},
	"-":           {},
	"NONE":        {},
	"N/A":         {},
	"KEIN VEREIN": {},
}

// Normalizer holds the shared read-only lookup state for one process.
type Normalizer struct {
	countries *CountryResolver
}

// New creates a Normalizer around the given country resolver.
func New(countries *CountryResolver) *Normalizer {
	return &Normalizer{countries: countries}
}

// ContestCategories maps the config document's contest entries to typed
// rows, resolving bilingual labels and coercing ids. Output is ordered by
// numeric id for determinism.
func (n *Normalizer) ContestCategories(doc *raceresult.ConfigDocument) []model.ContestCategory {
	ids := make([]string, 0, len(doc.Contests))
	for id := range doc.Contests {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return ids[i] < ids[j]
	})

	categories := make([]model.ContestCategory, 0, len(ids))
	for _, id := range ids {
		categories = append(categories, model.ContestCategory{
			ID:   toPgInt4(id),
			Name: EnglishLabel(doc.Contests[id]),
		})
	}
	return categories
}

// Splits projects the config document's split definitions. Fields pass
// through verbatim except the label, which is resolved to English, and
// the four numeric columns, which are coerced softly.
func (n *Normalizer) Splits(doc *raceresult.ConfigDocument) []model.SplitDefinition {
	splits := make([]model.SplitDefinition, 0, len(doc.Splits))
	for _, s := range doc.Splits {
		splits = append(splits, model.SplitDefinition{
			ID:                coercePgInt4(s.ID),
			Name:              s.Name,
			Label:             EnglishLabel(s.Label),
			SplitType:         coercePgInt4(s.SplitType),
			ContestCategoryID: coercePgInt4(s.Contest),
			TypeOfSportID:     coercePgInt4(s.TypeOfSport),
		})
	}
	return splits
}

// Athletes flattens the per-category starting lists into typed rows.
//
// Age is derived from the birth year against now and is recomputed every
// run; it is never set without a birth year. Output is ordered by
// category key, preserving row order within each category.
func (n *Normalizer) Athletes(lists raceresult.RowList, now time.Time) []model.Athlete {
	caser := cases.Title(language.English)

	athletes := make([]model.Athlete, 0)
	for _, key := range sortedKeys(lists) {
		categoryID, categoryName := parseCategoryKey(key)
		if categoryName.Valid {
			categoryName.String = EnglishLabel(categoryName.String)
		}

		for _, row := range lists[key] {
			yearBorn := toPgInt4(cell(row, athleteColYearBorn))
			age := pgtype.Int4{Valid: false}
			if yearBorn.Valid {
				age = pgtype.Int4{Int32: int32(now.Year()) - yearBorn.Int32, Valid: true}
			}

			athletes = append(athletes, model.Athlete{
				Bib:               toPgInt4(cell(row, athleteColBib)),
				Contest:           toPgText(cell(row, athleteColContest)),
				Name:              titleName(caser, cell(row, athleteColName)),
				Gender:            n.gender(cell(row, athleteColGender)),
				Start:             toPgText(cell(row, athleteColStart)),
				AgeGroup:          toPgText(cell(row, athleteColAgeGroup)),
				Club:              n.club(cell(row, athleteColClub)),
				Company:           toPgText(cell(row, athleteColCompany)),
				Country:           n.country(cell(row, athleteColCountry)),
				YearBorn:          yearBorn,
				Age:               age,
				ContestCategory:   categoryName,
				ContestCategoryID: categoryID,
			})
		}
	}
	return athletes
}

// Waitlist flattens the per-category waitlists into typed rows. The three
// rank-like columns are coerced independently; autorank and autorank2 are
// kept as separate values with no derived relationship.
func (n *Normalizer) Waitlist(lists raceresult.RowList) []model.WaitlistAthlete {
	caser := cases.Title(language.English)

	waitlist := make([]model.WaitlistAthlete, 0)
	for _, key := range sortedKeys(lists) {
		categoryID, categoryName := parseCategoryKey(key)

		for _, row := range lists[key] {
			waitlist = append(waitlist, model.WaitlistAthlete{
				AutoRank:          toPgInt4(cell(row, waitlistColAutoRank)),
				ID:                toPgInt4(cell(row, waitlistColID)),
				AutoRank2:         toPgInt4(cell(row, waitlistColAutoRank2)),
				Name:              titleName(caser, cell(row, waitlistColName)),
				Gender:            n.gender(cell(row, waitlistColGender)),
				AgeGroup:          toPgText(cell(row, waitlistColAgeGroup)),
				Country:           n.country(cell(row, waitlistColCountry)),
				ContestCategory:   categoryName,
				ContestCategoryID: categoryID,
			})
		}
	}
	return waitlist
}

// gender normalizes the upstream gender marker, passing unmapped values
// through unchanged.
func (n *Normalizer) gender(raw string) pgtype.Text {
	g := toPgText(raw)
	if !g.Valid {
		return g
	}
	if mapped, ok := genderLabels[g.String]; ok {
		g.String = mapped
	}
	return g
}

// club drops the registration form's "no club" placeholders.
func (n *Normalizer) club(raw string) pgtype.Text {
	c := toPgText(raw)
	if !c.Valid {
		return c
	}
	if _, bad := invalidClubs[strings.ToUpper(c.String)]; bad {
		return pgtype.Text{Valid: false}
	}
	return c
}

// country resolves a raw country code to its English short name. A code
// neither pass recognizes keeps its raw form rather than becoming NULL.
func (n *Normalizer) country(raw string) pgtype.Text {
	c := toPgText(raw)
	if !c.Valid {
		return c
	}
	if name, ok := n.countries.Resolve(c.String); ok {
		c.String = name
	}
	return c
}

// titleName title-cases every word of a name, including after
// punctuation, and converts blank input to NULL.
func titleName(caser cases.Caser, raw string) pgtype.Text {
	name := toPgText(raw)
	if !name.Valid {
		return name
	}
	name.String = caser.String(name.String)
	return name
}

// sortedKeys returns the category keys in a stable order; map iteration
// order would otherwise shuffle the flattened output between runs.
func sortedKeys(lists raceresult.RowList) []string {
	keys := make([]string, 0, len(lists))
	for key := range lists {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
