package domain

import "time"

// Video is a catalog record
type Video struct {
	ID                   int64        `json:"id"`
	Title                string       `json:"title"`
	Author               string       `json:"author"`
	CanBeDownloaded      bool         `json:"canBeDownloaded"`
	MinAgeRestriction    *int         `json:"minAgeRestriction"`
	CreatedAt            Timestamp    `json:"createdAt"`
	PublicationDate      Timestamp    `json:"publicationDate"`
	AvailableResolutions []Resolution `json:"availableResolutions"`
}

// VideoDraft holds the validated fields of a create request
type VideoDraft struct {
	Title                string
	Author               string
	AvailableResolutions []Resolution
}

// VideoUpdate holds the validated fields of an update request.
// A nil PublicationDate keeps the stored value.
type VideoUpdate struct {
	Title                string
	Author               string
	AvailableResolutions []Resolution
	CanBeDownloaded      bool
	MinAgeRestriction    *int
	PublicationDate      *Timestamp
}

// NewVideo builds a record from a draft. Publication is scheduled one day after creation.
func NewVideo(id int64, d VideoDraft, now time.Time) Video {
	createdAt := NewTimestamp(now)
	return Video{
		ID:                   id,
		Title:                d.Title,
		Author:               d.Author,
		CanBeDownloaded:      false,
		MinAgeRestriction:    nil,
		CreatedAt:            createdAt,
		PublicationDate:      createdAt.AddDays(1),
		AvailableResolutions: cloneResolutions(d.AvailableResolutions),
	}
}

// Apply replaces every mutable field. ID and CreatedAt are kept.
func (v *Video) Apply(u VideoUpdate) {
	v.Title = u.Title
	v.Author = u.Author
	v.AvailableResolutions = cloneResolutions(u.AvailableResolutions)
	v.CanBeDownloaded = u.CanBeDownloaded
	v.MinAgeRestriction = cloneInt(u.MinAgeRestriction)
	if u.PublicationDate != nil {
		v.PublicationDate = *u.PublicationDate
	}
}

// Clone returns a deep copy
func (v Video) Clone() Video {
	c := v
	c.AvailableResolutions = cloneResolutions(v.AvailableResolutions)
	c.MinAgeRestriction = cloneInt(v.MinAgeRestriction)
	return c
}

// SeedVideo is the record installed on a fresh start
func SeedVideo() Video {
	ts := NewTimestamp(time.Date(2023, time.August, 22, 19, 27, 26, 270*int(time.Millisecond), time.UTC))
	return Video{
		ID:                   0,
		Title:                "string",
		Author:               "string",
		CanBeDownloaded:      true,
		MinAgeRestriction:    nil,
		CreatedAt:            ts,
		PublicationDate:      ts,
		AvailableResolutions: []Resolution{ResolutionP144},
	}
}

// cloneResolutions never returns nil so records always serialize as an array
func cloneResolutions(in []Resolution) []Resolution {
	out := make([]Resolution, len(in))
	copy(out, in)
	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
