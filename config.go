package negarit

// Config holds tunables for the cleaning pipeline, the structural extractor
// and the batch orchestration.
type Config struct {
	Clean   CleanConfig   `toml:"clean"`
	Extract ExtractConfig `toml:"extract"`
	Paths   PathsConfig   `toml:"paths"`
}

// CleanConfig holds the normalizer's policy constants.
type CleanConfig struct {
	// HeaderMarker starts the document proper; text before it is discarded.
	HeaderMarker string `toml:"header_marker"`

	// SourceStamps are watermark substrings; lines containing one are dropped.
	SourceStamps []string `toml:"source_stamps"`

	// MinLineLength is the shortest trimmed line kept.
	MinLineLength int `toml:"min_line_length"`

	// NoiseToken marks OCR artifact lines when found at line start.
	NoiseToken string `toml:"noise_token"`
}

// ExtractConfig holds the structural extractor's policy constants.
type ExtractConfig struct {
	// MaxSectionTitle is the longest title accepted in a numbered
	// post-2018 section header.
	MaxSectionTitle int `toml:"max_section_title"`
}

// PathsConfig holds the directories used by batch processing.
type PathsConfig struct {
	Source string `toml:"source"`
	Dest   string `toml:"dest"`
	Output string `toml:"output"`
	Logs   string `toml:"logs"`
}

// Default policy constants.
const (
	DefaultHeaderMarker    = "FEDERAL NEGARIT GAZETTE"
	DefaultSourceStamp     = "chilot.me"
	DefaultMinLineLength   = 3
	DefaultNoiseToken      = "gA"
	DefaultMaxSectionTitle = 80
)

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Clean: CleanConfig{
			HeaderMarker:  DefaultHeaderMarker,
			SourceStamps:  []string{DefaultSourceStamp},
			MinLineLength: DefaultMinLineLength,
			NoiseToken:    DefaultNoiseToken,
		},
		Extract: ExtractConfig{
			MaxSectionTitle: DefaultMaxSectionTitle,
		},
		Paths: PathsConfig{
			Source: "text_files",
			Dest:   "text_files",
			Output: "serialized_files",
			Logs:   "logs",
		},
	}
}

// Validate returns an error if the configuration contains invalid values.
func (c *Config) Validate() error {
	if c.Clean.MinLineLength < 0 {
		return Errorf(EINVALID, "clean.min_line_length must not be negative")
	}
	if c.Extract.MaxSectionTitle < 0 {
		return Errorf(EINVALID, "extract.max_section_title must not be negative")
	}
	if c.Paths.Source == "" {
		return Errorf(EINVALID, "paths.source required")
	}
	if c.Paths.Output == "" {
		return Errorf(EINVALID, "paths.output required")
	}
	return nil
}
