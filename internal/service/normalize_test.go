package service_test

import (
	"testing"

	"github.com/aps-extract/extract-service/internal/aps"
	"github.com/aps-extract/extract-service/internal/model"
	"github.com/aps-extract/extract-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func folderEntry(id, name string) aps.Entry {
	return aps.Entry{
		ID: id,
		Attributes: aps.Attributes{
			Name:        name,
			DisplayName: name + " (display)",
			Extension:   aps.Extension{Type: "folders:autodesk.bim360:Folder"},
		},
	}
}

func fileEntry(id, displayName, extensionType string) aps.Entry {
	return aps.Entry{
		ID: id,
		Attributes: aps.Attributes{
			DisplayName: displayName,
			Extension:   aps.Extension{Type: extensionType},
		},
	}
}

func TestNormalize_Folder(t *testing.T) {
	e := folderEntry("urn:f1", "Project Files")
	e.Attributes.CreateTime = "2024-01-02T10:00:00Z"
	e.Attributes.CreateUserID = "U1"
	e.Attributes.CreateUserName = "Ada"
	e.Attributes.Hidden = true

	item := service.Normalize(e)

	assert.Equal(t, "urn:f1", item.ID)
	assert.Equal(t, model.ItemTypeFolder, item.Type)
	assert.Equal(t, "Project Files", item.Name)
	assert.Equal(t, "2024-01-02T10:00:00Z", item.CreateTime)
	assert.Equal(t, "U1", item.CreateUserID)
	assert.Equal(t, "Ada", item.CreateUserName)
	assert.True(t, item.Hidden)
	assert.NotEmpty(t, item.Timestamp)

	require.NotNil(t, item.FilesInside)
	require.NotNil(t, item.FoldersInside)
	assert.Equal(t, 0, *item.FilesInside)
	assert.Equal(t, 0, *item.FoldersInside)

	assert.Nil(t, item.Version)
	assert.Nil(t, item.Size)
}

func TestNormalize_FileAndDocumentTags(t *testing.T) {
	for _, extensionType := range []string{
		"items:autodesk.bim360:File",
		"items:autodesk.bim360:Document",
	} {
		item := service.Normalize(fileEntry("urn:i1", "plan.rvt", extensionType))

		assert.Equal(t, model.ItemTypeFile, item.Type, extensionType)
		assert.Equal(t, "plan.rvt", item.Name, extensionType)
		assert.Nil(t, item.FilesInside, extensionType)
		assert.Nil(t, item.FoldersInside, extensionType)
		require.NotNil(t, item.Version, extensionType)
		require.NotNil(t, item.Size, extensionType)
		assert.Equal(t, "", *item.Version, extensionType)
		assert.Equal(t, "", *item.Size, extensionType)
	}
}

func TestNormalize_UnknownTagFallsBackToFile(t *testing.T) {
	item := service.Normalize(fileEntry("urn:i2", "weird.thing", "items:autodesk.bim360:ReviewDocument"))

	assert.Equal(t, model.ItemTypeFile, item.Type)
	assert.Equal(t, "weird.thing", item.Name)
	assert.Nil(t, item.FilesInside)
}

func TestNormalize_MissingAttributesYieldDefaults(t *testing.T) {
	item := service.Normalize(aps.Entry{ID: "urn:i3"})

	assert.Equal(t, model.ItemTypeFile, item.Type)
	assert.Equal(t, "", item.Name)
	assert.Equal(t, "", item.CreateTime)
	assert.False(t, item.Hidden)
}

func TestNormalize_Idempotent(t *testing.T) {
	e := folderEntry("urn:f1", "Project Files")

	first := service.Normalize(e)
	second := service.Normalize(e)

	assert.Equal(t, first, second)
}
