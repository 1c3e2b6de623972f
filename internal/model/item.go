package model

type ItemType string

const (
	ItemTypeFolder ItemType = "folder"
	ItemTypeFile   ItemType = "file"
)

// Item is the flattened representation of one node of the project hierarchy.
// Folder items carry the counters, file items carry version/size; the two
// groups of fields never coexist on one item.
type Item struct {
	ID                   string   `json:"id"`
	Type                 ItemType `json:"type"`
	Name                 string   `json:"name"`
	CreateTime           string   `json:"createTime"`
	CreateUserID         string   `json:"createUserId"`
	CreateUserName       string   `json:"createUserName"`
	LastModifiedTime     string   `json:"lastModifiedTime"`
	LastModifiedUserID   string   `json:"lastModifiedUserId"`
	LastModifiedUserName string   `json:"lastModifiedUserName"`
	Hidden               bool     `json:"hidden"`
	Timestamp            string   `json:"timestamp"`

	// folder only; counters start at 0 and are aggregated by the client
	FilesInside   *int `json:"filesInside,omitempty"`
	FoldersInside *int `json:"foldersInside,omitempty"`

	// file only; empty strings when version resolution fails
	Version *string `json:"version,omitempty"`
	Size    *string `json:"size,omitempty"`
}
