// Command toyecc explores elliptic curves over small prime fields and runs
// Diffie-Hellman and ElGamal on them.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	// On failure Cobra prints the error string, so we only need to exit with
	// a non-0 status
	if newRootCmd(viper.New()).Execute() != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree around the given viper instance.
func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfg config

	rootCmd := &cobra.Command{
		Use:           "toyecc",
		Short:         "Elliptic curve arithmetic over small prime fields",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.load(v)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "YAML configuration file")
	flags.Int64("a", defaultA, "curve coefficient a")
	flags.Int64("b", defaultB, "curve coefficient b")
	flags.Int64("prime", defaultPrime, "field prime")
	flags.Int64("gx", defaultGX, "generator x coordinate")
	flags.Int64("gy", defaultGY, "generator y coordinate")
	flags.String("group", defaultGroup, "registered group for dh and elgamal")
	flags.String("log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	flags.String("log-output", defaultLogOutput, "log output (stdout, stderr or a file path)")
	bindFlags(v, flags)

	rootCmd.AddCommand(
		curveCmd(&cfg),
		pointCmd(&cfg),
		addCmd(&cfg),
		mulCmd(&cfg),
		orderCmd(&cfg),
		pointsCmd(&cfg),
		dhCmd(&cfg),
		elgamalCmd(&cfg),
		groupsCmd(),
	)
	return rootCmd
}
