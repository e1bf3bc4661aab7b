package model

// Row is one line of a generated CSV table.
type Row struct {
	DateTime     string
	Name         string
	Content      string
	Conversation string
}

// Record returns the CSV fields for the row. The single-file table has no
// conversation column.
func (r Row) Record(withConversation bool) []string {
	if withConversation {
		return []string{r.DateTime, r.Name, r.Content, r.Conversation}
	}
	return []string{r.DateTime, r.Name, r.Content}
}
