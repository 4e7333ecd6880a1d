package models

import "time"

// ReportRun is a written report as it is stored in the archive.
type ReportRun struct {
	Kind      string    // Report kind, e.g. BusierThanUsual.
	PlusCode  string    // Location code the report was built for.
	FileName  string    // Name of the report file.
	CreatedAt time.Time // Time the report was written.
	Entries   []ArchivedEntry
}

// ArchivedEntry is one report entry with its JSON payload.
type ArchivedEntry struct {
	Name    string
	Payload []byte
}
