package models

// Application is a job application owned by a single user. Timestamps are
// stored as RFC 3339 strings, matching the wire format.
//
// SupportingDocuments and Notes are persisted as independently keyed records
// under the same owner partition (see DocumentSortKey/NoteSortKey); the
// slices here are assembled on read and never written as part of the
// application record itself.
type Application struct {
	ApplicationID string `json:"applicationId"`
	UserEmail     string `json:"userEmail"`
	JobTitle      string `json:"jobTitle"`
	CompanyName   string `json:"companyName"`
	ResumeS3Key   string `json:"resumeS3Key"`
	ResumeURL     string `json:"resumeUrl"`
	Status        string `json:"status"`
	AppliedDate   string `json:"appliedDate"`

	SupportingDocuments []SupportingDocument `json:"supportingDocuments,omitempty"`
	Notes               []Note               `json:"notes,omitempty"`
}

// SupportingDocument is an uploaded file attached to exactly one application.
type SupportingDocument struct {
	ID         string `json:"id"`
	S3Key      string `json:"s3Key"`
	URL        string `json:"url"`
	FileName   string `json:"fileName"`
	UploadedAt string `json:"uploadedAt"`
}

// Note is a free-form annotation attached to exactly one application.
type Note struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	CreatedAt   string `json:"createdAt"`
}
