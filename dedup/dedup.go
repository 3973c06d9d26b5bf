// Package dedup suppresses reports that duplicate an active report nearby: a
// pending row within 50 meters sharing at least one hazard keyword with the
// new complaint.
package dedup

import (
	"strconv"
	"strings"

	"cityguardian/geo"
	"cityguardian/metrics"
	"cityguardian/sheets"

	"github.com/apex/log"
)

// RadiusMeters is the proximity window for duplicate suppression.
const RadiusMeters = 50

// hazardKeywords is the fixed vocabulary matched between new and existing
// complaints.
var hazardKeywords = []string{"pothole", "drainage", "leak", "garbage", "light", "sewage", "wire"}

// Snapshotter provides one fresh snapshot of the tracking table per call.
type Snapshotter interface {
	FetchSnapshot() (*sheets.Table, error)
}

// Detector checks new submissions against pending rows of the tracking table.
type Detector struct {
	source Snapshotter
}

func NewDetector(source Snapshotter) *Detector {
	return &Detector{source: source}
}

// Check reports whether an existing pending report within RadiusMeters of
// (lat, lon) shares a hazard keyword with the complaint. The returned error
// means the check could not run at all; callers treat that as "no duplicate"
// since deduplication is best-effort, never a hard dependency.
func (d *Detector) Check(complaint string, lat, lon float64) (bool, error) {
	table, err := d.source.FetchSnapshot()
	if err != nil {
		metrics.DedupSkippedTotal.Inc()
		return false, err
	}

	if !table.HasColumns("Status", "Location", "issue") {
		// Schema mismatch on the external table must never block intake.
		log.Warnf("Tracking table missing Status/Location/issue columns, skipping duplicate check (headers: %v)", table.Headers)
		metrics.DedupSkippedTotal.Inc()
		return false, nil
	}

	// Keyword membership is a substring test on the raw lowercase complaint,
	// not tokenized. Known looseness: "wire" matches "entire". Kept as-is.
	complaintLower := strings.ToLower(complaint)
	var shared []string
	for _, k := range hazardKeywords {
		if strings.Contains(complaintLower, k) {
			shared = append(shared, k)
		}
	}
	if len(shared) == 0 {
		// A complaint with no hazard keywords can never match any row.
		return false, nil
	}

	for _, row := range table.Rows {
		if strings.ToLower(strings.TrimSpace(row["Status"])) != "pending" {
			continue
		}

		rowLat, rowLon, ok := parseLocation(row["Location"])
		if !ok {
			// One bad row must never fail the request.
			continue
		}
		if geo.Distance(lat, lon, rowLat, rowLon) >= RadiusMeters {
			continue
		}

		existingIssue := strings.ToLower(row["issue"])
		for _, k := range shared {
			if strings.Contains(existingIssue, k) {
				return true, nil
			}
		}
	}

	return false, nil
}

// parseLocation parses a "lat,lon" cell, tolerating embedded spaces.
func parseLocation(loc string) (float64, float64, bool) {
	loc = strings.ReplaceAll(loc, " ", "")
	parts := strings.Split(loc, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
