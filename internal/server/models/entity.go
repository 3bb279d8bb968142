package models

import (
	"encoding/json"
	"time"
)

// Entity is the raw single-table record: one partition per owner, a
// type-tagged sort key, and the entity payload as a JSON document.
//
// Sort key shapes:
//
//	APP#{applicationId}
//	DOC#{applicationId}#{docId}
//	NOTE#{applicationId}#{noteId}
//
// One partition holds every entity kind for a user, so "all applications of
// X" and "all documents of application Y" are sort-key prefix scans.
type Entity struct {
	OwnerEmail string
	SortKey    string
	Attrs      json.RawMessage
	CreatedAt  time.Time
}

const (
	typeApplication = "APP"
	typeDocument    = "DOC"
	typeNote        = "NOTE"
)

func ApplicationSortKey(applicationID string) string {
	return typeApplication + "#" + applicationID
}

func DocumentSortKey(applicationID, docID string) string {
	return typeDocument + "#" + applicationID + "#" + docID
}

func NoteSortKey(applicationID, noteID string) string {
	return typeNote + "#" + applicationID + "#" + noteID
}

// ApplicationPrefix matches every application in an owner's partition.
func ApplicationPrefix() string {
	return typeApplication + "#"
}

// DocumentPrefix matches every supporting document of one application.
func DocumentPrefix(applicationID string) string {
	return typeDocument + "#" + applicationID + "#"
}

// NotePrefix matches every note of one application.
func NotePrefix(applicationID string) string {
	return typeNote + "#" + applicationID + "#"
}
