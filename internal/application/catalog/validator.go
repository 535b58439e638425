package catalog

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/aescanero/videohub/pkg/domain"
)

const (
	maxTitleLength  = 40
	maxAuthorLength = 20
	minAgeLowest    = 1
	minAgeHighest   = 18
)

const (
	fieldTitle                = "title"
	fieldAuthor               = "author"
	fieldAvailableResolutions = "availableResolutions"
	fieldCanBeDownloaded      = "canBeDownloaded"
	fieldMinAgeRestriction    = "minAgeRestriction"
	fieldPublicationDate      = "publicationDate"
)

// Validator checks request bodies field by field. Every check runs
// independently and all violations are reported together.
type Validator struct{}

// NewValidator creates a new request validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCreate validates a create request body
func (v *Validator) ValidateCreate(body gjson.Result) (domain.VideoDraft, domain.Violations) {
	var errs domain.Violations
	draft := domain.VideoDraft{
		Title:                v.text(body.Get(fieldTitle), fieldTitle, maxTitleLength, &errs),
		Author:               v.text(body.Get(fieldAuthor), fieldAuthor, maxAuthorLength, &errs),
		AvailableResolutions: v.resolutions(body.Get(fieldAvailableResolutions), &errs),
	}
	return draft, errs
}

// ValidateUpdate validates an update request body.
// Optional fields are checked whenever they are present, including false and 0.
func (v *Validator) ValidateUpdate(body gjson.Result) (domain.VideoUpdate, domain.Violations) {
	var errs domain.Violations
	update := domain.VideoUpdate{
		Title:                v.text(body.Get(fieldTitle), fieldTitle, maxTitleLength, &errs),
		Author:               v.text(body.Get(fieldAuthor), fieldAuthor, maxAuthorLength, &errs),
		AvailableResolutions: v.resolutions(body.Get(fieldAvailableResolutions), &errs),
		CanBeDownloaded:      v.canBeDownloaded(body.Get(fieldCanBeDownloaded), &errs),
		MinAgeRestriction:    v.minAgeRestriction(body.Get(fieldMinAgeRestriction), &errs),
		PublicationDate:      v.publicationDate(body.Get(fieldPublicationDate), &errs),
	}
	return update, errs
}

// text requires a non-blank string whose trimmed length is at most max.
// Whitespace-only input counts as missing. The value is returned untrimmed.
func (v *Validator) text(r gjson.Result, field string, max int, errs *domain.Violations) string {
	if r.Type != gjson.String {
		errs.Add(field)
		return ""
	}
	trimmed := strings.TrimSpace(r.Str)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > max {
		errs.Add(field)
		return ""
	}
	return r.Str
}

// resolutions reports one violation per unrecognized entry. Anything that is
// not an array is treated as an empty list.
func (v *Validator) resolutions(r gjson.Result, errs *domain.Violations) []domain.Resolution {
	out := make([]domain.Resolution, 0)
	if !r.IsArray() {
		return out
	}

	seen := make(map[domain.Resolution]bool)
	for _, item := range r.Array() {
		if item.Type != gjson.String {
			errs.Add(fieldAvailableResolutions)
			continue
		}
		res, ok := domain.ParseResolution(item.Str)
		if !ok {
			errs.Add(fieldAvailableResolutions)
			continue
		}
		if !seen[res] {
			seen[res] = true
			out = append(out, res)
		}
	}
	return out
}

func (v *Validator) canBeDownloaded(r gjson.Result, errs *domain.Violations) bool {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.False, gjson.Null:
		return false
	default:
		errs.Add(fieldCanBeDownloaded)
		return false
	}
}

func (v *Validator) minAgeRestriction(r gjson.Result, errs *domain.Violations) *int {
	if r.Type == gjson.Null {
		return nil
	}
	if r.Type != gjson.Number || r.Num != math.Trunc(r.Num) || r.Num < minAgeLowest || r.Num > minAgeHighest {
		errs.Add(fieldMinAgeRestriction)
		return nil
	}
	age := int(r.Num)
	return &age
}

func (v *Validator) publicationDate(r gjson.Result, errs *domain.Violations) *domain.Timestamp {
	if r.Type == gjson.Null {
		return nil
	}
	if r.Type != gjson.String {
		errs.Add(fieldPublicationDate)
		return nil
	}
	ts, err := domain.ParseTimestamp(r.Str)
	if err != nil {
		errs.Add(fieldPublicationDate)
		return nil
	}
	return &ts
}
