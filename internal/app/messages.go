package app

// ExportedMsg reports the outcome of writing the table to disk.
type ExportedMsg struct {
	Path string
	Err  error
}
