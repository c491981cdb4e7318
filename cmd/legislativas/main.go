package main

// @title           Legislativas API
// @version         1.0
// @description     Answers questions about Portuguese electoral programs using only the programs' own text.

// @contact.name   Legislativas OSS
// @contact.url    https://github.com/custodia-labs/legislativas/issues

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	_ "github.com/custodia-labs/legislativas/docs"
)

var version = "dev"

var envFile string

var rootCmd = &cobra.Command{
	Use:   "legislativas",
	Short: "Ask questions about the 2025 electoral programs",
	Long: `legislativas answers questions about Portuguese party electoral programs.
Answers are generated by an LLM from the programs' own text only.

Configuration is read from the environment; a .env file is loaded first
when present.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvFile(envFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "environment file to load before reading configuration")
}

// loadEnvFile loads path into the environment without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func main() {
	rootCmd.SetOut(os.Stdout)
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}
