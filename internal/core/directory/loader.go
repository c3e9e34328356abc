package directory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peerlink/matchmaker/internal/model"
)

// column aliases, keyed by the header folded to lowercase letters only
var columnAliases = map[string]string{
	"name":              "name",
	"fullname":          "name",
	"linkedin":          "linkedin",
	"linkedinurl":       "linkedin",
	"linkedinprofile":   "linkedin",
	"company":           "company",
	"organization":      "company",
	"jobtitle":          "jobTitle",
	"title":             "jobTitle",
	"role":              "jobTitle",
	"email":             "email",
	"emailaddress":      "email",
	"yearsofexperience": "yearsExperience",
	"yearsexperience":   "yearsExperience",
	"experience":        "yearsExperience",
	"state":             "state",
}

// LoadCSVFile reads the mentor directory from a CSV file on disk.
func LoadCSVFile(path string) ([]model.MentorRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return LoadCSV(f)
}

// LoadCSV reads mentor records from CSV with a header row. Columns are matched
// by name, ignoring case, spaces and punctuation. Every value is trimmed and a
// numeric years-of-experience value is mapped onto its bucket. Blank rows are
// skipped.
func LoadCSV(r io.Reader) ([]model.MentorRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []model.MentorRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		if field, ok := columnAliases[foldHeader(h)]; ok {
			if _, dup := index[field]; !dup {
				index[field] = i
			}
		}
	}
	if _, ok := index["name"]; !ok {
		return nil, fmt.Errorf("mentor csv has no name column")
	}

	var out []model.MentorRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		get := func(field string) string {
			i, ok := index[field]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		rec := model.MentorRecord{
			Name:            get("name"),
			LinkedIn:        get("linkedin"),
			Company:         get("company"),
			JobTitle:        get("jobTitle"),
			Email:           get("email"),
			YearsExperience: NormalizeYears(get("yearsExperience")),
			State:           get("state"),
		}
		if rec == (model.MentorRecord{}) {
			continue
		}
		out = append(out, rec)
	}
	if out == nil {
		out = []model.MentorRecord{}
	}
	return out, nil
}

// NormalizeYears maps a raw years value onto a bucket token. Bucket tokens
// pass through; numbers are bucketed; anything else is returned trimmed.
func NormalizeYears(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" || ValidYearsBucket(v) {
		return v
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(v, "+"), 64)
	if err != nil || n < 0 {
		return v
	}
	return BucketForYears(n)
}

// BucketForYears returns the bucket containing n years.
func BucketForYears(n float64) string {
	switch {
	case n <= 2:
		return Years0to2
	case n <= 5:
		return Years3to5
	case n <= 10:
		return Years6to10
	default:
		return YearsOver10
	}
}

func foldHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
