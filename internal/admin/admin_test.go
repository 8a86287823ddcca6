package admin

import (
	"strings"
	"testing"

	"github.com/VigyanSetu/WS-Frontend/internal/models"
)

func sampleRegistrations() []models.Registration {
	return []models.Registration{
		{
			ID:                 "r-1",
			StudentName:        "Asha Kulkarni",
			SchoolName:         "Modern High School",
			Email:              "asha@example.com",
			WorkshopInterest:   "Robotics",
			RegistrationStatus: "pending",
		},
		{
			ID:                 "r-2",
			StudentName:        "Rohan Patil",
			SchoolName:         "City School",
			Email:              "rohan@example.com",
			WorkshopInterest:   "Astronomy",
			RegistrationStatus: "confirmed",
		},
		{
			ID:                 "r-3",
			StudentName:        "Meera Joshi",
			SchoolName:         "Modern High School",
			Email:              "meera@example.com",
			WorkshopInterest:   "Robotics",
			RegistrationStatus: "cancelled",
		},
	}
}

func TestFilterRegistrations(t *testing.T) {
	rows := sampleRegistrations()

	tests := []struct {
		name   string
		query  string
		status string
		want   []string
	}{
		{"empty filter keeps all", "", "", []string{"r-1", "r-2", "r-3"}},
		{"query matches name case-insensitively", "asha", "", []string{"r-1"}},
		{"query matches school", "modern", "", []string{"r-1", "r-3"}},
		{"query matches workshop interest", "astronomy", "", []string{"r-2"}},
		{"status alone", "", "confirmed", []string{"r-2"}},
		{"query and status combine", "modern", "cancelled", []string{"r-3"}},
		{"no match", "nonexistent", "", nil},
		{"surrounding whitespace trimmed", "  asha  ", "", []string{"r-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRegistrations(rows, tt.query, tt.status)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d rows, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("row %d = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFilterUsers(t *testing.T) {
	rows := []models.User{
		{ID: "u-1", Name: "Asha", Email: "asha@example.com", Role: models.RoleAdmin},
		{ID: "u-2", Name: "Rohan", Email: "rohan@example.com", Role: models.RoleUser},
	}

	if got := FilterUsers(rows, "", models.RoleAdmin); len(got) != 1 || got[0].ID != "u-1" {
		t.Errorf("role filter: got %+v", got)
	}
	if got := FilterUsers(rows, "rohan", ""); len(got) != 1 || got[0].ID != "u-2" {
		t.Errorf("query filter: got %+v", got)
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name           string
		total, number  int
		perPage        int
		wantNumber     int
		wantPages      int
		wantStart, end int
	}{
		{"first page", 45, 1, 20, 1, 3, 0, 20},
		{"middle page", 45, 2, 20, 2, 3, 20, 40},
		{"short last page", 45, 3, 20, 3, 3, 40, 45},
		{"page past the end clamps", 45, 9, 20, 3, 3, 40, 45},
		{"page below one clamps", 45, 0, 20, 1, 3, 0, 20},
		{"empty collection", 0, 1, 20, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.total, tt.number, tt.perPage)
			if p.Number != tt.wantNumber || p.Pages != tt.wantPages {
				t.Errorf("number/pages = %d/%d, want %d/%d", p.Number, p.Pages, tt.wantNumber, tt.wantPages)
			}
			if p.Start != tt.wantStart || p.End != tt.end {
				t.Errorf("bounds = [%d,%d), want [%d,%d)", p.Start, p.End, tt.wantStart, tt.end)
			}
		})
	}
}

// TestCSVQuotesEmbeddedCommas ensures a message containing commas stays a
// single column in the export.
func TestCSVQuotesEmbeddedCommas(t *testing.T) {
	rows := []models.Registration{
		{
			ID:          "r-1",
			StudentName: "Asha Kulkarni",
			Message:     "Interested in robotics, astronomy, and chemistry",
		},
		{
			ID:          "r-2",
			StudentName: "Rohan Patil",
			Message:     "plain message",
		},
	}

	var buf strings.Builder
	if err := WriteRegistrationsCSV(&buf, rows); err != nil {
		t.Fatalf("WriteRegistrationsCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if lines[0] != strings.Join(registrationHeader, ",") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Interested in robotics, astronomy, and chemistry"`) {
		t.Errorf("comma-bearing message was not quoted: %q", lines[1])
	}

	// Column count must match the header on every row.
	wantCols := len(registrationHeader)
	for i, line := range lines[1:] {
		cols := countCSVColumns(t, line)
		if cols != wantCols {
			t.Errorf("row %d has %d columns, want %d", i+1, cols, wantCols)
		}
	}
}

func countCSVColumns(t *testing.T, line string) int {
	t.Helper()
	in := false
	cols := 1
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			in = !in
		case ',':
			if !in {
				cols++
			}
		}
	}
	return cols
}
