package store

// copy.go projects typed entities into COPY rows. Column order here must
// match the table definitions in schema.go exactly; CopyFrom pairs values
// with columns positionally.

import "github.com/fredgido/triathlon-dashboard/internal/model"

var categoryColumns = []string{"id", "name"}

func categoryRows(categories []model.ContestCategory) [][]any {
	rows := make([][]any, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []any{c.ID, c.Name})
	}
	return rows
}

var splitColumns = []string{
	"id", "name", "label", "split_type", "contest_category_id", "type_of_sport_id",
}

func splitRows(splits []model.SplitDefinition) [][]any {
	rows := make([][]any, 0, len(splits))
	for _, s := range splits {
		rows = append(rows, []any{
			s.ID, s.Name, s.Label, s.SplitType, s.ContestCategoryID, s.TypeOfSportID,
		})
	}
	return rows
}

var athleteColumns = []string{
	"bib", "contest", "name", "gender", "start", "age_group", "club",
	"company", "country", "year_born", "age", "contest_category",
	"contest_category_id",
}

func athleteRows(athletes []model.Athlete) [][]any {
	rows := make([][]any, 0, len(athletes))
	for _, a := range athletes {
		rows = append(rows, []any{
			a.Bib, a.Contest, a.Name, a.Gender, a.Start, a.AgeGroup, a.Club,
			a.Company, a.Country, a.YearBorn, a.Age, a.ContestCategory,
			a.ContestCategoryID,
		})
	}
	return rows
}

var waitlistColumns = []string{
	"autorank", "id", "autorank2", "name", "gender", "age_group",
	"country", "contest_category", "contest_category_id",
}

func waitlistRows(waitlist []model.WaitlistAthlete) [][]any {
	rows := make([][]any, 0, len(waitlist))
	for _, w := range waitlist {
		rows = append(rows, []any{
			w.AutoRank, w.ID, w.AutoRank2, w.Name, w.Gender, w.AgeGroup,
			w.Country, w.ContestCategory, w.ContestCategoryID,
		})
	}
	return rows
}
