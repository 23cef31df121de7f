package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	Profile    string
	Days       int
	JSON       bool
	Tag        []string
	ReportName string
	ReportType []string
	Dir        string

	// Explicit marca as flags definidas explicitamente na linha de comando;
	// essas vencem os valores vindos do arquivo de configuração.
	Explicit map[string]bool
}
