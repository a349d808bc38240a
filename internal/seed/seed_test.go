package seed

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/seed.json")
	require.NoError(t, err)
	return data
}

func TestParseFixture(t *testing.T) {
	doc, err := Parse(readFixture(t))
	require.NoError(t, err)

	assert.Len(t, doc.Users, 3)
	assert.Len(t, doc.Companies, 2)
	assert.Len(t, doc.Jobs, 2)
	assert.Len(t, doc.Reviews, 1)
	assert.Len(t, doc.Salaries, 2)
	assert.Len(t, doc.Interviews, 1)

	assert.Equal(t, "Innovate Inc.", doc.Companies[0].Name)
	assert.Equal(t, "recruiting@innovate.example", doc.Companies[0].OwnerEmail)
	assert.Equal(t, "Hybrid", *doc.Jobs[0].WorkMode)
	require.NotNil(t, doc.Jobs[0].SalaryMin)
	assert.Equal(t, int64(150000), *doc.Jobs[0].SalaryMin)
	assert.Nil(t, doc.Jobs[1].SalaryMin)
}

func TestValidateRejectsUnknownRole(t *testing.T) {
	data := []byte(`{
		"users": [{"email": "a@b.com", "displayName": "A", "password": "longenough", "role": "admin"}],
		"companies": []
	}`)

	err := Validate(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "users.0.role")
}

func TestValidateRejectsMissingRequired(t *testing.T) {
	data := []byte(`{"users": []}`)

	err := Validate(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "companies")
}

func TestValidateRejectsUnknownField(t *testing.T) {
	data := []byte(`{
		"users": [],
		"companies": [],
		"applications": []
	}`)

	err := Validate(data)
	require.Error(t, err)
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	err := Validate([]byte(`{"users": [`))
	require.Error(t, err)
}

func TestValidateRejectsRatingOutOfRange(t *testing.T) {
	data := []byte(`{
		"users": [],
		"companies": [],
		"reviews": [{"company": "X", "author": "A", "rating": 6, "title": "T", "pros": "p", "cons": "c"}]
	}`)

	err := Validate(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rating")
}
