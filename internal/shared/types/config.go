package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Profile    string   `json:"profile" yaml:"profile" toml:"profile"`
	Days       int      `json:"days" yaml:"days" toml:"days"`
	JSON       bool     `json:"json" yaml:"json" toml:"json"`
	Tag        []string `json:"tag" yaml:"tag" toml:"tag"`
	ReportName string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir        string   `json:"dir" yaml:"dir" toml:"dir"`
}
