package service

import "errors"

var (
	errInternal        = errors.New("internal server error")
	errUnknownDataType = errors.New("dataType must be topFolders or folder")
	errMissingFolderID = errors.New("folderId is required for folder requests")
)
