package logging

// Rotation selects the log file rotation strategy.
type Rotation string

// Rotation strategies.
const (
	RotationDaily Rotation = "daily"
	RotationNever Rotation = "never"
)

// Config describes a Logger: where files go, how they rotate, and what
// gets written.
type Config struct {
	// Dir is the directory log files are written to. Created if absent.
	Dir string
	// FilePrefix names the files: <prefix>-YYYY-MM-DD.log (daily) or
	// <prefix>.log (never).
	FilePrefix string
	// Rotation is the file rotation strategy.
	Rotation Rotation
	// RetentionDays caps how many days of rotated files are kept.
	// Zero or negative keeps everything.
	RetentionDays int
	// Level is the minimum level, in logrus notation ("debug", "info", ...).
	Level string
	// JSONFormat writes JSON lines instead of text. Required for ReadEntries.
	JSONFormat bool
	// ConsoleOutput mirrors log output to stderr.
	ConsoleOutput bool
}

// DefaultConfig returns a daily-rotating JSON logger config at info level.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:           dir,
		FilePrefix:    "appkit",
		Rotation:      RotationDaily,
		RetentionDays: 7,
		Level:         "info",
		JSONFormat:    true,
		ConsoleOutput: true,
	}
}
