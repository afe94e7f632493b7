package model

// File is a file record from the remote store, used opaquely by the core.
type File struct {
	ID       string
	Name     string
	MimeType string
}

// Folder is a remote folder with its storage identifier.
type Folder struct {
	ID   string
	Name string
}
