package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	ListModels bool
	Archive    bool
	Verbose    bool
	LogFile    string

	// Settings overrides
	TargetLang   string
	OutputFile   string
	RowsPerBatch int
	Interval     float64
	Provider     string
	Model        string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		LogFile:      "log.txt",
		RowsPerBatch: 10,
		Interval:     1,
		Provider:     "openai",
	}
}
