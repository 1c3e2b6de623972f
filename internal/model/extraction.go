package model

import "time"

// Extraction is one audit row written after a session is stored.
type Extraction struct {
	SessionID string    `json:"sessionId"`
	Guid      string    `json:"guid"`
	HubID     string    `json:"hubId"`
	ProjectID string    `json:"projectId"`
	FolderID  *string   `json:"folderId"`
	DataType  DataType  `json:"dataType"`
	ItemCount int       `json:"itemCount"`
	CreatedAt time.Time `json:"createdAt"`
}
