package aps_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aps-extract/extract-service/internal/aps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetTopFolders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/project/v1/hubs/h1/projects/p1/topFolders", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		fmt.Fprint(w, `{"data":[
			{"type":"folders","id":"urn:f1","attributes":{"name":"Project Files","extension":{"type":"folders:autodesk.bim360:Folder"}}},
			{"type":"folders","id":"urn:f2","attributes":{"name":"Plans","extension":{"type":"folders:autodesk.bim360:Folder"}}}
		]}`)
	}))
	defer srv.Close()

	client := aps.NewClient(srv.URL)

	entries, err := client.GetTopFolders(context.Background(), "token", "h1", "p1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "urn:f1", entries[0].ID)
	assert.Equal(t, "Project Files", entries[0].Attributes.Name)
	assert.Equal(t, "folders:autodesk.bim360:Folder", entries[0].Attributes.Extension.Type)
}

func TestClient_GetFolderContentsPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/v1/projects/p1/folders/urn:f1/contents", r.URL.Path)

		switch r.URL.Query().Get("page[number]") {
		case "":
			fmt.Fprint(w, `{
				"data":[{"type":"items","id":"urn:i1","attributes":{"displayName":"plan.rvt","extension":{"type":"items:autodesk.bim360:File"}}}],
				"included":[{"type":"versions","id":"urn:i1?version=2","attributes":{"versionNumber":2,"storageSize":1024},"relationships":{"item":{"data":{"id":"urn:i1"}}}}],
				"links":{"next":{"href":"whatever"}}
			}`)
		case "1":
			fmt.Fprint(w, `{"data":[{"type":"items","id":"urn:i2","attributes":{"displayName":"detail.dwg","extension":{"type":"items:autodesk.bim360:File"}}}]}`)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	client := aps.NewClient(srv.URL)

	first, err := client.GetFolderContents(context.Background(), "token", "p1", "urn:f1", 0)
	require.NoError(t, err)
	require.Len(t, first.Data, 1)
	require.NotNil(t, first.Links.Next)
	require.Len(t, first.Included, 1)
	assert.Equal(t, 2, first.Included[0].Attributes.VersionNumber)
	assert.Equal(t, int64(1024), first.Included[0].Attributes.StorageSize)
	assert.Equal(t, "urn:i1", first.Included[0].Relationships.Item.Data.ID)

	second, err := client.GetFolderContents(context.Background(), "token", "p1", "urn:f1", 1)
	require.NoError(t, err)
	require.Len(t, second.Data, 1)
	assert.Nil(t, second.Links.Next)
	assert.Equal(t, "urn:i2", second.Data[0].ID)
}

func TestClient_NonOKStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"developerMessage":"insufficient scope"}`)
	}))
	defer srv.Close()

	client := aps.NewClient(srv.URL)

	_, err := client.GetHubs(context.Background(), "token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
