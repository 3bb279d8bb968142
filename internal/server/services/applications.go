package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Tejani8980/job-app-tracker-backend/internal/server/authz"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/blobstore"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/models"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/repositories/entities"
)

// Defaults applied when a create request leaves the fields empty.
const (
	DefaultJobTitle    = "Common Job"
	DefaultCompanyName = "Common Company"
	DefaultStatus      = "Applied"
	DefaultNoteType    = "other"
)

// Upload is one file received from a client, consumed as a stream.
type Upload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// ApplicationUpdate carries the mutable application fields. Nil pointers
// mean "leave unchanged".
type ApplicationUpdate struct {
	JobTitle    *string
	CompanyName *string
	Status      *string
	AppliedDate *string
}

// NoteUpdate carries the mutable note fields. Nil pointers mean "leave
// unchanged".
type NoteUpdate struct {
	Title       *string
	Description *string
	Type        *string
}

// ApplicationService implements the application/document/note lifecycle over
// the entity store and the blob store. Every operation takes the
// authenticated caller's email as the owner key; the ownership guard runs
// before any read or mutation that could expose another user's data.
type ApplicationService struct {
	entities entities.Repository
	blobs    blobstore.BlobStore
}

func NewApplicationService(entities entities.Repository, blobs blobstore.BlobStore) *ApplicationService {
	return &ApplicationService{
		entities: entities,
		blobs:    blobs,
	}
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Create stores the resume blob under the owner's prefix and persists a new
// application with a generated ID.
func (s *ApplicationService) Create(ctx context.Context, owner string, resume Upload, jobTitle, companyName, status string) (*models.Application, error) {

	key := blobstore.ResumeKey(owner, resume.FileName)
	url, err := s.blobs.Store(ctx, key, resume.Body, resume.ContentType)
	if err != nil {
		return nil, err
	}

	if jobTitle == "" {
		jobTitle = DefaultJobTitle
	}
	if companyName == "" {
		companyName = DefaultCompanyName
	}
	if status == "" {
		status = DefaultStatus
	}

	app := &models.Application{
		ApplicationID: uuid.NewString(),
		UserEmail:     owner,
		JobTitle:      jobTitle,
		CompanyName:   companyName,
		ResumeS3Key:   key,
		ResumeURL:     url,
		Status:        status,
		AppliedDate:   nowRFC3339(),
	}

	if err := s.putEntity(ctx, owner, models.ApplicationSortKey(app.ApplicationID), app); err != nil {
		return nil, err
	}

	return app, nil
}

// List returns all applications of the owner.
func (s *ApplicationService) List(ctx context.Context, owner string) ([]*models.Application, error) {

	items, err := s.entities.QueryPrefix(ctx, owner, models.ApplicationPrefix())
	if err != nil {
		return nil, err
	}

	apps := make([]*models.Application, 0, len(items))
	for _, item := range items {
		app := &models.Application{}
		if err := json.Unmarshal(item.Attrs, app); err != nil {
			return nil, fmt.Errorf("unmarshal application %s: %w", item.SortKey, err)
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// Get returns one application with its supporting documents and notes
// assembled, or common.ErrorNotFound if it is absent or not owned by owner.
func (s *ApplicationService) Get(ctx context.Context, owner, applicationID string) (*models.Application, error) {

	app, err := s.getOwnedApplication(ctx, owner, applicationID)
	if err != nil {
		return nil, err
	}

	docs, err := s.ListDocuments(ctx, owner, applicationID)
	if err != nil {
		return nil, err
	}
	notes, err := s.ListNotes(ctx, owner, applicationID)
	if err != nil {
		return nil, err
	}

	app.SupportingDocuments = docs
	app.Notes = notes
	return app, nil
}

// Update applies a partial update to the mutable application fields.
func (s *ApplicationService) Update(ctx context.Context, owner, applicationID string, upd ApplicationUpdate) error {

	if _, err := s.getOwnedApplication(ctx, owner, applicationID); err != nil {
		return err
	}

	fields := map[string]any{}
	if upd.JobTitle != nil {
		fields["jobTitle"] = *upd.JobTitle
	}
	if upd.CompanyName != nil {
		fields["companyName"] = *upd.CompanyName
	}
	if upd.Status != nil {
		fields["status"] = *upd.Status
	}
	if upd.AppliedDate != nil {
		fields["appliedDate"] = *upd.AppliedDate
	}

	return s.entities.Update(ctx, owner, models.ApplicationSortKey(applicationID), fields)
}

// Delete removes an application, its blobs, and its records. Blob deletion
// runs first: if any blob delete fails, every record is retained so the
// table never references a blob that may already be gone. The records
// themselves are removed in one atomic batch.
func (s *ApplicationService) Delete(ctx context.Context, owner, applicationID string) error {

	app, err := s.getOwnedApplication(ctx, owner, applicationID)
	if err != nil {
		return err
	}

	docs, err := s.ListDocuments(ctx, owner, applicationID)
	if err != nil {
		return err
	}
	notes, err := s.ListNotes(ctx, owner, applicationID)
	if err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, app.ResumeS3Key); err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.blobs.Delete(ctx, doc.S3Key); err != nil {
			return err
		}
	}

	sortKeys := make([]string, 0, len(docs)+len(notes)+1)
	for _, doc := range docs {
		sortKeys = append(sortKeys, models.DocumentSortKey(applicationID, doc.ID))
	}
	for _, note := range notes {
		sortKeys = append(sortKeys, models.NoteSortKey(applicationID, note.ID))
	}
	sortKeys = append(sortKeys, models.ApplicationSortKey(applicationID))

	return s.entities.DeleteAll(ctx, owner, sortKeys)
}

// DownloadResume streams a blob addressed by a raw, caller-supplied key.
// The key must lie under the caller's own prefix.
func (s *ApplicationService) DownloadResume(ctx context.Context, caller, fileKey string) (*blobstore.Download, error) {

	if err := authz.CheckBlobKey(caller, fileKey); err != nil {
		return nil, err
	}

	return s.blobs.Fetch(ctx, fileKey)
}

// AddDocuments stores each uploaded file under the application's prefix and
// records a supporting document per file. Files are independent: a failure
// stops the loop but does not roll back files already stored.
func (s *ApplicationService) AddDocuments(ctx context.Context, owner, applicationID string, uploads []Upload) ([]models.SupportingDocument, error) {

	if _, err := s.getOwnedApplication(ctx, owner, applicationID); err != nil {
		return nil, err
	}

	created := make([]models.SupportingDocument, 0, len(uploads))
	for _, up := range uploads {
		key := blobstore.SupportingDocKey(owner, applicationID, up.FileName)
		url, err := s.blobs.Store(ctx, key, up.Body, up.ContentType)
		if err != nil {
			return created, err
		}

		doc := models.SupportingDocument{
			ID:         uuid.NewString(),
			S3Key:      key,
			URL:        url,
			FileName:   up.FileName,
			UploadedAt: nowRFC3339(),
		}

		if err := s.putEntity(ctx, owner, models.DocumentSortKey(applicationID, doc.ID), doc); err != nil {
			return created, err
		}
		created = append(created, doc)
	}

	return created, nil
}

// ListDocuments returns the supporting documents of one application.
func (s *ApplicationService) ListDocuments(ctx context.Context, owner, applicationID string) ([]models.SupportingDocument, error) {

	items, err := s.entities.QueryPrefix(ctx, owner, models.DocumentPrefix(applicationID))
	if err != nil {
		return nil, err
	}

	docs := make([]models.SupportingDocument, 0, len(items))
	for _, item := range items {
		var doc models.SupportingDocument
		if err := json.Unmarshal(item.Attrs, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal document %s: %w", item.SortKey, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// DeleteDocument deletes the blob first and removes the record only after
// the blob is gone.
func (s *ApplicationService) DeleteDocument(ctx context.Context, owner, applicationID, docID string) error {

	if _, err := s.getOwnedApplication(ctx, owner, applicationID); err != nil {
		return err
	}

	sortKey := models.DocumentSortKey(applicationID, docID)
	item, err := s.entities.Get(ctx, owner, sortKey)
	if err != nil {
		return err
	}

	var doc models.SupportingDocument
	if err := json.Unmarshal(item.Attrs, &doc); err != nil {
		return fmt.Errorf("unmarshal document %s: %w", sortKey, err)
	}

	if err := s.blobs.Delete(ctx, doc.S3Key); err != nil {
		return err
	}

	return s.entities.Delete(ctx, owner, sortKey)
}

// AddNote records a note on an application.
func (s *ApplicationService) AddNote(ctx context.Context, owner, applicationID, title, description, noteType string) (*models.Note, error) {

	if _, err := s.getOwnedApplication(ctx, owner, applicationID); err != nil {
		return nil, err
	}

	if noteType == "" {
		noteType = DefaultNoteType
	}

	note := &models.Note{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Type:        noteType,
		CreatedAt:   nowRFC3339(),
	}

	if err := s.putEntity(ctx, owner, models.NoteSortKey(applicationID, note.ID), note); err != nil {
		return nil, err
	}

	return note, nil
}

// ListNotes returns the notes of one application.
func (s *ApplicationService) ListNotes(ctx context.Context, owner, applicationID string) ([]models.Note, error) {

	items, err := s.entities.QueryPrefix(ctx, owner, models.NotePrefix(applicationID))
	if err != nil {
		return nil, err
	}

	notes := make([]models.Note, 0, len(items))
	for _, item := range items {
		var note models.Note
		if err := json.Unmarshal(item.Attrs, &note); err != nil {
			return nil, fmt.Errorf("unmarshal note %s: %w", item.SortKey, err)
		}
		notes = append(notes, note)
	}
	return notes, nil
}

// UpdateNote applies a partial update to one note and returns the result.
func (s *ApplicationService) UpdateNote(ctx context.Context, owner, applicationID, noteID string, upd NoteUpdate) (*models.Note, error) {

	if _, err := s.getOwnedApplication(ctx, owner, applicationID); err != nil {
		return nil, err
	}

	sortKey := models.NoteSortKey(applicationID, noteID)
	item, err := s.entities.Get(ctx, owner, sortKey)
	if err != nil {
		return nil, err
	}

	note := &models.Note{}
	if err := json.Unmarshal(item.Attrs, note); err != nil {
		return nil, fmt.Errorf("unmarshal note %s: %w", sortKey, err)
	}

	fields := map[string]any{}
	if upd.Title != nil {
		fields["title"] = *upd.Title
		note.Title = *upd.Title
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
		note.Description = *upd.Description
	}
	if upd.Type != nil {
		fields["type"] = *upd.Type
		note.Type = *upd.Type
	}

	if err := s.entities.Update(ctx, owner, sortKey, fields); err != nil {
		return nil, err
	}

	return note, nil
}

// DeleteNote removes one note.
func (s *ApplicationService) DeleteNote(ctx context.Context, owner, applicationID, noteID string) error {

	if _, err := s.getOwnedApplication(ctx, owner, applicationID); err != nil {
		return err
	}

	sortKey := models.NoteSortKey(applicationID, noteID)
	if _, err := s.entities.Get(ctx, owner, sortKey); err != nil {
		return err
	}

	return s.entities.Delete(ctx, owner, sortKey)
}

// getOwnedApplication fetches an application from the caller's partition and
// re-checks ownership on the stored record. A miss and a foreign record look
// identical to the caller.
func (s *ApplicationService) getOwnedApplication(ctx context.Context, owner, applicationID string) (*models.Application, error) {

	item, err := s.entities.Get(ctx, owner, models.ApplicationSortKey(applicationID))
	if err != nil {
		return nil, err
	}

	app := &models.Application{}
	if err := json.Unmarshal(item.Attrs, app); err != nil {
		return nil, fmt.Errorf("unmarshal application %s: %w", applicationID, err)
	}

	if err := authz.CheckOwner(owner, app.UserEmail); err != nil {
		return nil, err
	}

	return app, nil
}

func (s *ApplicationService) putEntity(ctx context.Context, owner, sortKey string, payload any) error {
	attrs, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", sortKey, err)
	}
	return s.entities.Put(ctx, &models.Entity{
		OwnerEmail: owner,
		SortKey:    sortKey,
		Attrs:      attrs,
	})
}
