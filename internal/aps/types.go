package aps

// JSON:API shapes returned by the Data Management endpoints. Only the
// attributes the extractor reads are mapped; everything else is ignored on
// decode.

type Extension struct {
	Type string `json:"type"`
	Data struct {
		ProjectType string `json:"projectType"`
	} `json:"data"`
}

type Attributes struct {
	Name                 string    `json:"name"`
	DisplayName          string    `json:"displayName"`
	CreateTime           string    `json:"createTime"`
	CreateUserID         string    `json:"createUserId"`
	CreateUserName       string    `json:"createUserName"`
	LastModifiedTime     string    `json:"lastModifiedTime"`
	LastModifiedUserID   string    `json:"lastModifiedUserId"`
	LastModifiedUserName string    `json:"lastModifiedUserName"`
	Hidden               bool      `json:"hidden"`
	Extension            Extension `json:"extension"`
}

// Entry is one raw record of a hubs/projects/folders/contents listing.
type Entry struct {
	Type       string     `json:"type"`
	ID         string     `json:"id"`
	Attributes Attributes `json:"attributes"`
	Links      struct {
		Self struct {
			Href string `json:"href"`
		} `json:"self"`
	} `json:"links"`
}

// Included is one version record from the side-list of a folder listing.
type Included struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Attributes struct {
		VersionNumber int   `json:"versionNumber"`
		StorageSize   int64 `json:"storageSize"`
	} `json:"attributes"`
	Relationships struct {
		Item struct {
			Data struct {
				ID string `json:"id"`
			} `json:"data"`
		} `json:"item"`
	} `json:"relationships"`
}

type Link struct {
	Href string `json:"href"`
}

// FolderContents is one page of a folder listing plus its version side-list.
type FolderContents struct {
	Data     []Entry    `json:"data"`
	Included []Included `json:"included"`
	Links    struct {
		Next *Link `json:"next"`
	} `json:"links"`
}

type listing struct {
	Data []Entry `json:"data"`
}
