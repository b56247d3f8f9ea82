package models

import "time"

// Document describes an uploaded file, owned by the backend and referenced
// by id from the client.
type Document struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type,omitempty"`
	FileSize   int64     `json:"file_size,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
	HasResult  bool      `json:"has_result,omitempty"`
}

// InstitutionRecord is a ground-truth record (student, employee, ...)
// that documents are verified against.
type InstitutionRecord struct {
	ID       int64             `json:"id"`
	Name     string            `json:"name"`
	IDNumber string            `json:"id_number"`
	Metadata map[string]string `json:"metadata_fields,omitempty"`
}

// Pagination is the paging block returned by all listing endpoints.
type Pagination struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Pages   int `json:"pages"`
}
