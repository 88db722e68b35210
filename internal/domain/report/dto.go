package report

// ExportResult carries a generated file ready to be streamed to the
// client.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}
