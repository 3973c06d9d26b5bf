package dedup

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"cityguardian/geo"
	"cityguardian/sheets"
)

type fakeSource struct {
	table *sheets.Table
	err   error
}

func (f *fakeSource) FetchSnapshot() (*sheets.Table, error) {
	return f.table, f.err
}

func trackingTable(rows ...map[string]string) *sheets.Table {
	return &sheets.Table{
		Headers: []string{"Status", "Location", "issue"},
		Rows:    rows,
	}
}

// latOffset returns the latitude delta corresponding to a north-south offset
// of the given number of meters.
func latOffset(meters float64) float64 {
	return meters / (geo.EarthRadiusMeters * math.Pi / 180)
}

func TestCheckDuplicate(t *testing.T) {
	const lat, lon = 12.97, 77.59

	tests := []struct {
		name      string
		complaint string
		table     *sheets.Table
		want      bool
	}{
		{
			name:      "same coordinates and shared keyword",
			complaint: "There is a giant pothole here",
			table: trackingTable(map[string]string{
				"Status": "Pending", "Location": "12.97,77.59", "issue": "pothole near the market",
			}),
			want: true,
		},
		{
			name:      "51 meters away is outside the window",
			complaint: "There is a giant pothole here",
			table: trackingTable(map[string]string{
				"Status": "Pending", "Location": fmt.Sprintf("%f,%f", lat+latOffset(51), lon), "issue": "pothole near the market",
			}),
			want: false,
		},
		{
			name:      "49 meters away with no shared keywords",
			complaint: "The fence is broken and dangerous",
			table: trackingTable(map[string]string{
				"Status": "Pending", "Location": fmt.Sprintf("%f,%f", lat+latOffset(49), lon), "issue": "pothole near the market",
			}),
			want: false,
		},
		{
			name:      "nearby but existing issue lacks the keyword",
			complaint: "There is a giant pothole here",
			table: trackingTable(map[string]string{
				"Status": "Pending", "Location": "12.97,77.59", "issue": "overflowing sewage drain",
			}),
			want: false,
		},
		{
			name:      "resolved reports are ignored",
			complaint: "There is a giant pothole here",
			table: trackingTable(map[string]string{
				"Status": "Resolved", "Location": "12.97,77.59", "issue": "pothole near the market",
			}),
			want: false,
		},
		{
			name:      "pending status match is case-insensitive and trimmed",
			complaint: "There is a giant pothole here",
			table: trackingTable(map[string]string{
				"Status": "  PENDING ", "Location": "12.97,77.59", "issue": "pothole near the market",
			}),
			want: true,
		},
		{
			name:      "location with embedded spaces still parses",
			complaint: "There is a giant pothole here",
			table: trackingTable(map[string]string{
				"Status": "Pending", "Location": " 12.97 , 77.59 ", "issue": "pothole near the market",
			}),
			want: true,
		},
		{
			name:      "unparseable row is skipped, later row still matches",
			complaint: "There is a giant pothole here",
			table: trackingTable(
				map[string]string{"Status": "Pending", "Location": "not-a-location", "issue": "pothole near the market"},
				map[string]string{"Status": "Pending", "Location": "12.97,77.59", "issue": "pothole near the market"},
			),
			want: true,
		},
		{
			name:      "substring keyword looseness is preserved",
			complaint: "The pavement is slightly damaged", // "slightly" contains "light"
			table: trackingTable(map[string]string{
				"Status": "Pending", "Location": "12.97,77.59", "issue": "broken light on the corner",
			}),
			want: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			detector := NewDetector(&fakeSource{table: tc.table})
			got, err := detector.Check(tc.complaint, lat, lon)
			if err != nil {
				t.Fatalf("Check: %v", err)
			}
			if got != tc.want {
				t.Errorf("Check(%q) = %v, want %v", tc.complaint, got, tc.want)
			}
		})
	}
}

func TestCheckSchemaMismatchSkips(t *testing.T) {
	detector := NewDetector(&fakeSource{table: &sheets.Table{
		Headers: []string{"Something", "Else"},
		Rows:    []map[string]string{{"Something": "Pending"}},
	}})

	dup, err := detector.Check("pothole everywhere", 12.97, 77.59)
	if err != nil {
		t.Fatalf("schema mismatch must not error: %v", err)
	}
	if dup {
		t.Error("schema mismatch must not flag a duplicate")
	}
}

func TestCheckFetchFailureSurfacesError(t *testing.T) {
	detector := NewDetector(&fakeSource{err: errors.New("network down")})

	dup, err := detector.Check("pothole everywhere", 12.97, 77.59)
	if err == nil {
		t.Fatal("expected fetch error to be returned")
	}
	if dup {
		t.Error("fetch failure must not flag a duplicate")
	}
}
