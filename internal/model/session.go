package model

type DataType string

const (
	DataTypeTopFolders DataType = "topFolders"
	DataTypeFolder     DataType = "folder"
)

// Session holds the items gathered by one extract job. It is stored under a
// fresh id and consumed exactly once by the client's follow-up fetch.
type Session struct {
	ID             string   `json:"id"`
	DataType       DataType `json:"dataType"`
	ParentFolderID *string  `json:"parentFolderId,omitempty"`
	Items          []*Item  `json:"items"`
}
