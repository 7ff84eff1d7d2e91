package config

// Output formats.
const (
	FormatText  = "text"
	FormatFrame = "frame"
)

// Defaults returns the default configuration: the narrow-sense systematic
// BCH(15, 7) code.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Code: CodeConfig{
			N:          15,
			K:          7,
			C:          1,
			Systematic: true,
		},
		Field: FieldConfig{
			Strategy: "auto",
		},
		Output: OutputConfig{
			Format: FormatText,
		},
		Logging: LoggingConfig{
			Level: "error",
		},
	}
}
