package models

import "encoding/json"

// Submission holds the fields collected by the banner application form.
// Free-text values are kept verbatim; escaping happens at the rendering layer.
type Submission struct {
	SponsorName           string
	SponsorEmail          string
	RelationshipToVeteran string

	VeteranName        string
	VeteranAddress     string
	VeteranYearsInTown string
	VeteranConnection  string

	ServiceBranch           string
	IsReserve               bool
	ServicePeriodOrConflict string
	UnknownBranchInfo       string

	ConsentGiven bool

	Photos []PhotoMeta
}

// PhotoMeta describes a photo the applicant already uploaded to object
// storage via the pre-signed upload endpoint.
type PhotoMeta struct {
	Filename    string `json:"filename"`
	PublicURL   string `json:"publicUrl"`
	ContentType string `json:"contentType"`
}

// CopiedPhoto records a photo that was copied into the contract folder at
// submission time.
type CopiedPhoto struct {
	OriginalURL string `json:"originalUrl"`
	CopiedURL   string `json:"copiedUrl"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

// ParsePhotosMetadata decodes the photosMetadata form field. A missing or
// malformed value yields an empty list rather than an error; the contract is
// still generated with a placeholder in that case.
func ParsePhotosMetadata(raw string) []PhotoMeta {
	if raw == "" {
		return nil
	}
	var photos []PhotoMeta
	if err := json.Unmarshal([]byte(raw), &photos); err != nil {
		return nil
	}
	return photos
}
