package service

import (
	"time"

	"github.com/aps-extract/extract-service/internal/aps"
	"github.com/aps-extract/extract-service/internal/model"
)

const (
	folderExtension   = "folders:autodesk.bim360:Folder"
	fileExtension     = "items:autodesk.bim360:File"
	documentExtension = "items:autodesk.bim360:Document"
)

// extraction date shown to the user, day precision
const timestampLayout = "Monday, January 2, 2006"

// Normalize converts one raw listing record into its canonical item. Unknown
// extension types fall through to the file branch so no record is dropped.
func Normalize(e aps.Entry) *model.Item {
	item := &model.Item{
		ID:                   e.ID,
		CreateTime:           e.Attributes.CreateTime,
		CreateUserID:         e.Attributes.CreateUserID,
		CreateUserName:       e.Attributes.CreateUserName,
		LastModifiedTime:     e.Attributes.LastModifiedTime,
		LastModifiedUserID:   e.Attributes.LastModifiedUserID,
		LastModifiedUserName: e.Attributes.LastModifiedUserName,
		Hidden:               e.Attributes.Hidden,
		Timestamp:            time.Now().UTC().Format(timestampLayout),
	}

	switch e.Attributes.Extension.Type {
	case folderExtension:
		item.Type = model.ItemTypeFolder
		item.Name = e.Attributes.Name
		item.FilesInside = new(int)
		item.FoldersInside = new(int)
	case fileExtension, documentExtension:
		normalizeFile(item, e)
	default:
		normalizeFile(item, e)
	}

	return item
}

func normalizeFile(item *model.Item, e aps.Entry) {
	item.Type = model.ItemTypeFile
	item.Name = e.Attributes.DisplayName
	// empty until the aggregator resolves the latest version
	item.Version = new(string)
	item.Size = new(string)
}
