package models

// Payload is a fetched image body together with its declared content type.
// It is ephemeral: it lives in the blob store between fetch and display.
type Payload struct {
	Data        []byte
	ContentType string
}

// ArchiveItem travels through the archive pipeline. Path is filled in by the
// writer stage once the payload has been persisted.
type ArchiveItem struct {
	ID      string
	Source  string
	Payload Payload
	Path    string
}
