// Package models defines the launcher's server-side data types.
package models

import "time"

// DirectoryPayload is the decrypted body of POST /nfs/directory.
type DirectoryPayload struct {
	DirPath      string `json:"dirPath"`
	IsPrivate    bool   `json:"isPrivate"`
	UserMetadata string `json:"userMetadata"`
	IsVersioned  bool   `json:"isVersioned"`
	IsPathShared bool   `json:"isPathShared"`
}

// Directory is what the storage backend reports for a path.
type Directory struct {
	Path           string    `json:"dirPath"`
	IsPrivate      bool      `json:"isPrivate"`
	IsVersioned    bool      `json:"isVersioned"`
	IsPathShared   bool      `json:"isPathShared"`
	UserMetadata   string    `json:"userMetadata"`
	CreatedAt      time.Time `json:"createdOn"`
	SubDirectories []string  `json:"subDirectories"`
}
