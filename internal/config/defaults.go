package config

const (
	defaultLogDir          = "~/.local/share/redbreast/logs"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultEncoderBinary   = "ffmpeg"
	defaultOutputFPS       = 60
	defaultMinFreeSpaceMiB = 256
	defaultHistoryEnabled  = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Encoder: Encoder{
			Binary:          defaultEncoderBinary,
			OutputFPS:       defaultOutputFPS,
			MinFreeSpaceMiB: defaultMinFreeSpaceMiB,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
