package constants

const (
	// Per-folder and base-directory outputs
	CombinedFileName = "combined_messages.csv"
	DatasetFileName  = "all_messages_dataset.csv"
	ConcatFileName   = "concatenated_csv.csv"

	// Single-file defaults
	DefaultInputFile  = "message_1.json"
	DefaultOutputFile = "output_messages.csv"

	JSONExt = ".json"
	CSVExt  = ".csv"
)

const (
	UnknownName        = "Unknown"
	NoContentAvailable = "No content available"

	// DateTimeLayout renders timestamps to second precision.
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Column headers of the generated tables.
var (
	HeaderWithConversation = []string{"Date and Time", "Name", "Content", "Conversation"}
	HeaderSingleFile       = []string{"Date and Time", "Name", "Content"}
)
