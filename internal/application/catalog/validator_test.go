package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/aescanero/videohub/pkg/domain"
)

func fieldsOf(v domain.Violations) []string {
	out := make([]string, 0, len(v))
	for _, fe := range v {
		out = append(out, fe.Field)
	}
	return out
}

func TestValidator_ValidateCreate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{
			name:   "valid",
			body:   `{"title":"A","author":"B","availableResolutions":["P144"]}`,
			fields: []string{},
		},
		{
			name:   "title at limit after trim",
			body:   `{"title":"  ` + strings.Repeat("t", 40) + `  ","author":"B"}`,
			fields: []string{},
		},
		{
			name:   "title too long",
			body:   `{"title":"` + strings.Repeat("t", 41) + `","author":"B"}`,
			fields: []string{"title"},
		},
		{
			name:   "author too long",
			body:   `{"title":"A","author":"` + strings.Repeat("a", 21) + `"}`,
			fields: []string{"author"},
		},
		{
			name:   "missing title and author",
			body:   `{}`,
			fields: []string{"title", "author"},
		},
		{
			name:   "blank title",
			body:   `{"title":"   ","author":"B"}`,
			fields: []string{"title"},
		},
		{
			name:   "title not a string",
			body:   `{"title":42,"author":"B"}`,
			fields: []string{"title"},
		},
		{
			name:   "one entry per bad resolution",
			body:   `{"title":"A","author":"B","availableResolutions":["P144","P999",7]}`,
			fields: []string{"availableResolutions", "availableResolutions"},
		},
		{
			name:   "bad resolution with otherwise invalid fields",
			body:   `{"title":"","author":"","availableResolutions":["nope"]}`,
			fields: []string{"title", "author", "availableResolutions"},
		},
		{
			name:   "non-array resolutions ignored",
			body:   `{"title":"A","author":"B","availableResolutions":"P144"}`,
			fields: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, violations := v.ValidateCreate(gjson.Parse(tt.body))
			assert.Equal(t, tt.fields, fieldsOf(violations))
		})
	}
}

func TestValidator_CreateKeepsUntrimmedValues(t *testing.T) {
	draft, violations := NewValidator().ValidateCreate(gjson.Parse(
		`{"title":"  padded  ","author":" me ","availableResolutions":["P720","P144","P720"]}`))

	require.Empty(t, violations)
	assert.Equal(t, "  padded  ", draft.Title)
	assert.Equal(t, " me ", draft.Author)
	assert.Equal(t, []domain.Resolution{domain.ResolutionP720, domain.ResolutionP144}, draft.AvailableResolutions)
}

func TestValidator_CreateCountsCharacters(t *testing.T) {
	title := strings.Repeat("é", 40)
	_, violations := NewValidator().ValidateCreate(gjson.Parse(`{"title":"` + title + `","author":"B"}`))
	assert.Empty(t, violations)
}

func TestValidator_CreateNonArrayYieldsEmptyList(t *testing.T) {
	draft, violations := NewValidator().ValidateCreate(gjson.Parse(`{"title":"A","author":"B","availableResolutions":{"x":1}}`))
	require.Empty(t, violations)
	assert.NotNil(t, draft.AvailableResolutions)
	assert.Empty(t, draft.AvailableResolutions)
}

func TestValidator_ValidateUpdate(t *testing.T) {
	v := NewValidator()
	base := `"title":"A","author":"B","availableResolutions":["P144"]`

	tests := []struct {
		name   string
		extra  string
		fields []string
	}{
		{name: "defaults", extra: ``, fields: []string{}},
		{name: "all optional fields", extra: `,"canBeDownloaded":true,"minAgeRestriction":18,"publicationDate":"2024-01-01T00:00:00.000Z"`, fields: []string{}},
		{name: "false download flag", extra: `,"canBeDownloaded":false`, fields: []string{}},
		{name: "null age", extra: `,"minAgeRestriction":null`, fields: []string{}},
		{name: "download flag as string", extra: `,"canBeDownloaded":"yes"`, fields: []string{"canBeDownloaded"}},
		{name: "download flag as zero", extra: `,"canBeDownloaded":0`, fields: []string{"canBeDownloaded"}},
		{name: "age zero", extra: `,"minAgeRestriction":0`, fields: []string{"minAgeRestriction"}},
		{name: "age too high", extra: `,"minAgeRestriction":19`, fields: []string{"minAgeRestriction"}},
		{name: "age fractional", extra: `,"minAgeRestriction":12.5`, fields: []string{"minAgeRestriction"}},
		{name: "age as string", extra: `,"minAgeRestriction":"12"`, fields: []string{"minAgeRestriction"}},
		{name: "bad publication date", extra: `,"publicationDate":"tomorrow"`, fields: []string{"publicationDate"}},
		{name: "publication date as number", extra: `,"publicationDate":1700000000`, fields: []string{"publicationDate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, violations := v.ValidateUpdate(gjson.Parse(`{` + base + tt.extra + `}`))
			assert.Equal(t, tt.fields, fieldsOf(violations))
		})
	}
}

func TestValidator_UpdateValues(t *testing.T) {
	update, violations := NewValidator().ValidateUpdate(gjson.Parse(`{
		"title": "New title",
		"author": "New author",
		"availableResolutions": ["P1080"],
		"canBeDownloaded": true,
		"minAgeRestriction": 16,
		"publicationDate": "2024-03-01T10:00:00.000Z"
	}`))

	require.Empty(t, violations)
	assert.Equal(t, "New title", update.Title)
	assert.True(t, update.CanBeDownloaded)
	require.NotNil(t, update.MinAgeRestriction)
	assert.Equal(t, 16, *update.MinAgeRestriction)
	require.NotNil(t, update.PublicationDate)
	assert.Equal(t, "2024-03-01T10:00:00.000Z", update.PublicationDate.String())
}

func TestValidator_ViolationOrder(t *testing.T) {
	_, violations := NewValidator().ValidateUpdate(gjson.Parse(`{
		"availableResolutions": ["bad"],
		"minAgeRestriction": 100,
		"canBeDownloaded": "x"
	}`))

	assert.Equal(t, []string{
		"title",
		"author",
		"availableResolutions",
		"canBeDownloaded",
		"minAgeRestriction",
	}, fieldsOf(violations))
	assert.Equal(t, "Invalid minAgeRestriction field", violations[4].Message)
}
