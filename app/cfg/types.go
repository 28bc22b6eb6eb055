package cfg

type Cfg struct {
	// Input/output configuration
	JournalsFile string
	DataFile     string

	// Fetch configuration
	FetchTimeout int // seconds
	FetchRetries int
	JournalDelay int // seconds between journals

	// Translation configuration
	TargetLang        string
	TranslateURL      string
	TranslateInterval int // milliseconds between translation calls

	// Merge policy
	DropExpired bool

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}

// KeepExpired reports whether records with past deadlines are retained in the store.
func (c *Cfg) KeepExpired() bool {
	return !c.DropExpired
}
