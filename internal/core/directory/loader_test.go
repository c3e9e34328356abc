package directory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerlink/matchmaker/internal/model"
)

const mentorsCSV = `Name,LinkedIn URL,Company,Job Title,Email,Years of Experience,State
  Ada Park ,https://linkedin.com/in/ada,Stripe,Staff Engineer,ada@example.com,12,CA
Ben Ortiz,,"Acme, Inc.",Product Manager,,3-5,NY
,,,,,,
Cleo Hart,,Globex,Designer,cleo@example.com,1,
`

func TestLoadCSV(t *testing.T) {
	recs, err := LoadCSV(strings.NewReader(mentorsCSV))
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, model.MentorRecord{
		Name: "Ada Park", LinkedIn: "https://linkedin.com/in/ada", Company: "Stripe",
		JobTitle: "Staff Engineer", Email: "ada@example.com", YearsExperience: "10+", State: "CA",
	}, recs[0])
	assert.Equal(t, "Acme, Inc.", recs[1].Company)
	assert.Equal(t, "3-5", recs[1].YearsExperience)
	assert.Equal(t, "0-2", recs[2].YearsExperience)
	assert.Equal(t, "", recs[2].State)
}

func TestLoadCSV_HeaderAliasesAndShortRows(t *testing.T) {
	in := "full_name,title,yearsExperience\nZed,Engineer\n"
	recs, err := LoadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, model.MentorRecord{Name: "Zed", JobTitle: "Engineer"}, recs[0])
}

func TestLoadCSV_EmptyAndMissingName(t *testing.T) {
	recs, err := LoadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, recs)

	_, err = LoadCSV(strings.NewReader("company,state\nAcme,CA\n"))
	assert.Error(t, err)
}

func TestLoadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mentors.csv")
	require.NoError(t, os.WriteFile(path, []byte(mentorsCSV), 0o600))

	recs, err := LoadCSVFile(path)
	require.NoError(t, err)
	assert.Len(t, recs, 3)

	_, err = LoadCSVFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestNormalizeYears(t *testing.T) {
	cases := map[string]string{
		"":      "",
		"0":     "0-2",
		"2":     "0-2",
		"2.5":   "3-5",
		"5":     "3-5",
		"6":     "6-10",
		"10":    "6-10",
		"11":    "10+",
		"15+":   "10+",
		"6-10":  "6-10",
		" 10+ ": "10+",
		"lots":  "lots",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeYears(in), "input %q", in)
	}
}
