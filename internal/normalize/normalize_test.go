package normalize

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/fredgido/triathlon-dashboard/internal/model"
	"github.com/fredgido/triathlon-dashboard/internal/raceresult"
)

func int4(v int32) pgtype.Int4 {
	return pgtype.Int4{Int32: v, Valid: true}
}

func text(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

func testNormalizer() *Normalizer {
	return New(NewCountryResolver())
}

func TestContestCategories(t *testing.T) {
	doc := &raceresult.ConfigDocument{
		Contests: map[string]string{
			"5": "Jugendtriathlon U14",
			"1": "{DE:Olympische Distanz|EN:Olympic Distance}",
			"2": "{DE:Sprint}",
		},
	}

	got := testNormalizer().ContestCategories(doc)

	want := []model.ContestCategory{
		{ID: int4(1), Name: "Olympic Distance"},
		{ID: int4(2), Name: "{DE:Sprint}"},
		{ID: int4(5), Name: "Jugendtriathlon U14"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ContestCategories() = %+v, want %+v", got, want)
	}
}

func TestSplits(t *testing.T) {
	raw := `{
		"key": "dummy_key",
		"splits": [
			{"ID": 516, "Name": "Start", "Label": "{DE:Eingechecked|EN:Checked-In}", "SplitType": 0, "Contest": 5, "TypeOfSport": 254},
			{"ID": 20, "Name": "Swim", "Label": "{EN:Swim|DE:Schwimmen}", "SplitType": 9, "Contest": 1, "TypeOfSport": 0},
			{"ID": 367, "Name": "Transition1", "Label": "{EN:Transition 1|DE:Wechsel 1}", "SplitType": 9, "Contest": 2, "TypeOfSport": 0},
			{"ID": 4, "Name": "BikeSplit1", "Label": "{DE:Radfahren - Küsnacht, 9,3 km|EN:Bike - Küsnacht, 9.3 km}", "SplitType": 0, "Contest": 1, "TypeOfSport": 11},
			{"ID": 589, "Name": "Spotter", "Label": "{EN:On the finish chute|DE:Auf der Zielgerade}", "SplitType": 0, "Contest": 10, "TypeOfSport": 100},
			{"ID": 452, "Name": "Finish", "Label": "{EN:Finish|DE:Ziel}", "SplitType": 0, "Contest": 3, "TypeOfSport": 100}
		]
	}`

	var doc raceresult.ConfigDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	got := testNormalizer().Splits(&doc)

	want := []model.SplitDefinition{
		{ID: int4(516), Name: "Start", Label: "Checked-In", SplitType: int4(0), ContestCategoryID: int4(5), TypeOfSportID: int4(254)},
		{ID: int4(20), Name: "Swim", Label: "Swim", SplitType: int4(9), ContestCategoryID: int4(1), TypeOfSportID: int4(0)},
		{ID: int4(367), Name: "Transition1", Label: "Transition 1", SplitType: int4(9), ContestCategoryID: int4(2), TypeOfSportID: int4(0)},
		{ID: int4(4), Name: "BikeSplit1", Label: "Bike - Küsnacht, 9.3 km", SplitType: int4(0), ContestCategoryID: int4(1), TypeOfSportID: int4(11)},
		{ID: int4(589), Name: "Spotter", Label: "On the finish chute", SplitType: int4(0), ContestCategoryID: int4(10), TypeOfSportID: int4(100)},
		{ID: int4(452), Name: "Finish", Label: "Finish", SplitType: int4(0), ContestCategoryID: int4(3), TypeOfSportID: int4(100)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Splits() = %+v, want %+v", got, want)
	}
}

func TestAthletes(t *testing.T) {
	lists := raceresult.RowList{
		"#1_Olympisch": {
			{"1660", "", "Felipe ABELLA", "M", "", "M20-34", "", "", "[img:https://timit.ch/graphics/flags/ch_black.png|height:16px;width:20px;]", "SUI", "1993"},
			{"1697", "", "Markus ACKERMANN", "M", "", "M55-64", "Blaue Funken Köln", "", "[img:https://timit.ch/graphics/flags/de_black.png|height:16px;width:20px;]", "GER", "1968"},
			{"1954", "", "Seline ACKERMANN", "W", "", "W20-34", "Schweiz", "", "[img:https://timit.ch/graphics/flags/ch_black.png|height:16px;width:20px;]", "SUI", "1993"},
		},
		"#5_Jugendtriathlon U14": {
			{"278", "", "Théophile ANIOL", "M", "", "M12-13", "", "Company", "[img:https://timit.ch/graphics/flags/fr_black.png|height:16px;width:20px;]", "FRA", "2013"},
			{"249", "", "Eleonora BECK", "W", "", "W10-11", "", "", "[img:https://timit.ch/graphics/flags/ch_black.png|height:16px;width:20px;]", "SUI", "2014"},
		},
	}

	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)
	year := int32(now.Year())

	got := testNormalizer().Athletes(lists, now)

	want := []model.Athlete{
		{
			Bib: int4(1660), Name: text("Felipe Abella"), Gender: text("Male"),
			AgeGroup: text("M20-34"), Country: text("Switzerland"),
			YearBorn: int4(1993), Age: int4(year - 1993),
			ContestCategory: text("Olympisch"), ContestCategoryID: int4(1),
		},
		{
			Bib: int4(1697), Name: text("Markus Ackermann"), Gender: text("Male"),
			AgeGroup: text("M55-64"), Club: text("Blaue Funken Köln"),
			Country: text("Germany"), YearBorn: int4(1968), Age: int4(year - 1968),
			ContestCategory: text("Olympisch"), ContestCategoryID: int4(1),
		},
		{
			Bib: int4(1954), Name: text("Seline Ackermann"), Gender: text("Female"),
			AgeGroup: text("W20-34"), Club: text("Schweiz"),
			Country: text("Switzerland"), YearBorn: int4(1993), Age: int4(year - 1993),
			ContestCategory: text("Olympisch"), ContestCategoryID: int4(1),
		},
		{
			Bib: int4(278), Name: text("Théophile Aniol"), Gender: text("Male"),
			AgeGroup: text("M12-13"), Company: text("Company"),
			Country: text("France"), YearBorn: int4(2013), Age: int4(year - 2013),
			ContestCategory: text("Jugendtriathlon U14"), ContestCategoryID: int4(5),
		},
		{
			Bib: int4(249), Name: text("Eleonora Beck"), Gender: text("Female"),
			AgeGroup: text("W10-11"), Country: text("Switzerland"),
			YearBorn: int4(2014), Age: int4(year - 2014),
			ContestCategory: text("Jugendtriathlon U14"), ContestCategoryID: int4(5),
		},
	}

	if len(got) != len(want) {
		t.Fatalf("Athletes() returned %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("athlete %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAthletes_SoftFields(t *testing.T) {
	lists := raceresult.RowList{
		"#3_Sprint": {
			// no bib, blank name, unmapped gender, denylisted club,
			// unresolvable country, no birth year
			{"", "", "  ", "X", "", "", "kein verein", "", "", "ZZZZ", ""},
		},
	}

	got := testNormalizer().Athletes(lists, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if len(got) != 1 {
		t.Fatalf("Athletes() returned %d rows, want 1", len(got))
	}
	a := got[0]

	if a.Bib.Valid {
		t.Errorf("Bib = %+v, want null", a.Bib)
	}
	if a.Name.Valid {
		t.Errorf("Name = %+v, want null", a.Name)
	}
	if a.Gender != text("X") {
		t.Errorf("Gender = %+v, want raw pass-through %q", a.Gender, "X")
	}
	if a.Club.Valid {
		t.Errorf("Club = %+v, want null for denylisted value", a.Club)
	}
	if a.Country != text("ZZZZ") {
		t.Errorf("Country = %+v, want raw %q kept for unresolvable code", a.Country, "ZZZZ")
	}
	if a.YearBorn.Valid || a.Age.Valid {
		t.Errorf("YearBorn = %+v, Age = %+v; want both null without a birth year", a.YearBorn, a.Age)
	}
}

func TestAthletes_ClubDenylist(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		club string
		want pgtype.Text
	}{
		{name: "dash", club: "-", want: pgtype.Text{}},
		{name: "kein verein lowercase", club: "kein verein", want: pgtype.Text{}},
		{name: "none mixed case", club: "None", want: pgtype.Text{}},
		{name: "n/a", club: "n/a", want: pgtype.Text{}},
		{name: "comma artifact", club: ",  ,", want: pgtype.Text{}},
		{name: "legitimate club trimmed", club: " Tri Club Zürich ", want: text("Tri Club Zürich")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lists := raceresult.RowList{
				"#1_Olympisch": {
					{"1", "", "A B", "M", "", "", tt.club, "", "", "SUI", "1990"},
				},
			}
			got := testNormalizer().Athletes(lists, now)
			if got[0].Club != tt.want {
				t.Errorf("Club = %+v, want %+v", got[0].Club, tt.want)
			}
		})
	}
}

func TestWaitlist(t *testing.T) {
	lists := raceresult.RowList{
		"#1_Olympisch - Warteliste": {
			{"20180", "1", "20180", "Maximilian HOHL", "M", "", "[img:https://timit.ch/graphics/flags/at_black.png|height:16px;width:20px;]", "XKX"},
			{"20200", "21", "20200", "Katha SCHULER", "W", "", "[img:https://timit.ch/graphics/flags/de_black.png|height:16px;width:20px;]", "GER"},
			{"20211", "32", "20211", "Cédric SCHÜTZ", "M", "", "[img:https://timit.ch/graphics/flags/ch_black.png|height:16px;width:20px;]", "UMI"},
		},
	}

	got := testNormalizer().Waitlist(lists)

	want := []model.WaitlistAthlete{
		{
			AutoRank: int4(20180), ID: int4(1), AutoRank2: int4(20180),
			Name: text("Maximilian Hohl"), Gender: text("Male"),
			Country:         text("Kosovo"),
			ContestCategory: text("Olympisch - Warteliste"), ContestCategoryID: int4(1),
		},
		{
			AutoRank: int4(20200), ID: int4(21), AutoRank2: int4(20200),
			Name: text("Katha Schuler"), Gender: text("Female"),
			Country:         text("Germany"),
			ContestCategory: text("Olympisch - Warteliste"), ContestCategoryID: int4(1),
		},
		{
			AutoRank: int4(20211), ID: int4(32), AutoRank2: int4(20211),
			Name: text("Cédric Schütz"), Gender: text("Male"),
			Country:         text("United States Minor Outlying Islands"),
			ContestCategory: text("Olympisch - Warteliste"), ContestCategoryID: int4(1),
		},
	}

	if len(got) != len(want) {
		t.Fatalf("Waitlist() returned %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("waitlist %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAthletes_DeterministicOrder(t *testing.T) {
	lists := raceresult.RowList{
		"#2_Sprint":    {{"2", "", "B B", "M", "", "", "", "", "", "SUI", "1990"}},
		"#1_Olympisch": {{"1", "", "A A", "M", "", "", "", "", "", "SUI", "1990"}},
	}

	n := testNormalizer()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	first := n.Athletes(lists, now)
	for i := 0; i < 10; i++ {
		if again := n.Athletes(lists, now); !reflect.DeepEqual(again, first) {
			t.Fatal("Athletes() output order is not deterministic across calls")
		}
	}
	if first[0].Bib != int4(1) || first[1].Bib != int4(2) {
		t.Errorf("rows not ordered by category key: got bibs %+v, %+v", first[0].Bib, first[1].Bib)
	}
}
