// Skyreg-server serves registration wizard sessions over websockets.
//
// Every connection gets its own wizard. A remote renderer sends intents
// (edit, advance, submit, ...) and receives a full snapshot of the wizard
// after each one, so any client can draw the form without knowing the
// validation rules.
//
// Usage:
//
//	skyreg-server server [flags]
//	skyreg-server transcript <file>...
//
// See 'skyreg-server server --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/skyreg/internal/config"
	"github.com/muurk/skyreg/internal/server"
	"github.com/muurk/skyreg/internal/version"
	"github.com/muurk/skyreg/internal/wizard"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyreg-server",
	Short: "Skyreg Registration Session Server",
	Long: `A websocket server hosting isolated registration wizard sessions.

Each connection is an independent wizard with its own form state, step and
submission. Renderers connect to /ws; /healthz reports liveness.

Note: for the terminal wizard, use the separate 'skyreg' utility.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(versionCmd)
}

// Server command and flags
var (
	configPath    string
	certPath      string
	keyPath       string
	host          string
	port          int
	logLevel      string
	transcriptDir string
	advertise     bool
	instanceName  string
	animated      bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the session server",
	Long: `Start the registration session server.

Defaults for host, port and mDNS advertising come from the skyreg settings
file; flags override them. Submissions go to the simulated backend
configured under "submission" in the same file.

To keep a record of what each session did, use --transcript-dir. Transcripts
list intents and results as JSON lines and never contain field values.`,
	Example: `  # Start on the configured port (8080 by default)
  skyreg-server server

  # Advertise over mDNS so 'skyreg discover' can find it
  skyreg-server server --advertise --name "Front desk"

  # Serve TLS and write session transcripts
  skyreg-server server --cert cert.pem --key key.pem --transcript-dir ./transcripts

  # Hold step changes until the renderer sends "settle"
  skyreg-server server --animated --log-level debug`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().StringVar(&configPath, "config", "", "Settings file (default is the user config directory)")
	serverCmd.Flags().StringVar(&certPath, "cert", "", "Path to TLS certificate file (serves plain HTTP if not provided)")
	serverCmd.Flags().StringVar(&keyPath, "key", "", "Path to TLS private key file")
	serverCmd.Flags().StringVar(&host, "host", "", "Listen address (empty = all interfaces)")
	serverCmd.Flags().IntVar(&port, "port", 0, "Server port (default from settings)")
	serverCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serverCmd.Flags().StringVar(&transcriptDir, "transcript-dir", "", "Directory for per-session transcripts (disabled if not specified)")
	serverCmd.Flags().BoolVar(&advertise, "advertise", false, "Advertise the server over mDNS")
	serverCmd.Flags().StringVar(&instanceName, "name", "", "mDNS instance name (default \"skyreg on <hostname>\")")
	serverCmd.Flags().BoolVar(&animated, "animated", false, "Require a settle intent after each step change")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Either both cert and key are provided, or neither
	if (certPath != "") != (keyPath != "") {
		return fmt.Errorf("both --cert and --key must be provided together, or neither")
	}
	if certPath != "" {
		if _, err := os.Stat(certPath); os.IsNotExist(err) {
			return fmt.Errorf("certificate file not found: %s", certPath)
		}
		if _, err := os.Stat(keyPath); os.IsNotExist(err) {
			return fmt.Errorf("private key file not found: %s", keyPath)
		}
	}

	var (
		settings *config.Settings
		err      error
	)
	if configPath != "" {
		settings, err = config.LoadFrom(configPath)
	} else {
		settings, err = config.Load()
	}
	if err != nil {
		return err
	}

	cfg := serverConfig(cmd, settings)
	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// serverConfig merges settings with flags. Flags the user set win.
func serverConfig(cmd *cobra.Command, settings *config.Settings) *server.Config {
	cfg := &server.Config{
		Host:          settings.Server.Host,
		Port:          settings.Server.Port,
		CertPath:      certPath,
		KeyPath:       keyPath,
		LogLevel:      logLevel,
		TranscriptDir: transcriptDir,
		Advertise:     settings.Server.Advertise,
		InstanceName:  settings.Server.InstanceName,
		Animated:      animated,
		NewSubmitter: func() wizard.Submitter {
			return &wizard.SimulatedSubmitter{
				Delay: settings.SubmitDelay(),
				Fail:  settings.Submission.SimulateFailure,
			}
		},
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = host
	}
	if flags.Changed("port") {
		cfg.Port = port
	}
	if flags.Changed("advertise") {
		cfg.Advertise = advertise
	}
	if flags.Changed("name") {
		cfg.InstanceName = instanceName
	}
	return cfg
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Details())
	},
}
