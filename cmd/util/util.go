package util

import (
	"strings"

	"github.com/ValentinKolb/dPort/lib/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// EnvPrefix is the prefix of environment variables read by the CLI (e.g. DPORT_THREADS)
	EnvPrefix = "dport"
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var lines []string
	var line strings.Builder

	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > Wrap {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString(" ")
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}

	return strings.Join(lines, "\n")
}

// InitConfig loads env files and makes viper read DPORT_* environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// SetupLoggingFlags adds the log level flag to a command
func SetupLoggingFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("log-level", "warn", WrapString("Level at which logs will be output (debug, info, warn, error)"))
}

// InitLogging configures all package loggers with the configured log level
func InitLogging() error {
	return logging.InitLoggers(viper.GetString("log-level"))
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	if err := viper.BindPFlags(cmd.InheritedFlags()); err != nil {
		return err
	}
	return viper.BindPFlags(cmd.Flags())
}
