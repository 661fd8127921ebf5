package reporter

import "github.com/yaklabco/kumihan/pkg/config"

// Format names an output format. The names are shared with the
// configuration's format setting.
type Format string

// Output formats supported by the reporter.
const (
	FormatTree = Format(config.FormatTree)
	FormatJSON = Format(config.FormatJSON)
)

// ParseFormat resolves a format name (case-insensitive). An empty name
// yields FormatTree.
func ParseFormat(name string) (Format, error) {
	format, err := config.ParseFormat(name)
	if err != nil {
		return "", err
	}
	return Format(format), nil
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f names a supported format.
func (f Format) IsValid() bool {
	return config.OutputFormat(f).IsValid()
}
