package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	Dataset    string
	Sources    []string
	Filters    []FilterArg
	Month      string
	ReportName string
	ReportType []string
	Dir        string
	Trend      bool
	Options    bool
	LogLevel   string
}

// FilterArg is one --filter DIM=v1,v2 occurrence, applied in cascade order.
type FilterArg struct {
	Dimension string
	Values    []string
}
