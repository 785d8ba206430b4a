package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/moofield/internal/config"
	"github.com/vovakirdan/moofield/internal/games/survival"
)

var flagCatalogCheck bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print or check the game catalog",
	Long: `Print the catalog a new session would use, after the --catalog and
--difficulty flags are applied. With --check, validate it instead.

Examples:
  moofield catalog > my-catalog.yaml
  moofield catalog --check --catalog ./my-catalog.yaml`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&flagCatalogCheck, "check", false, "Validate the catalog and report problems")
}

func runCatalog(_ *cobra.Command, _ []string) error {
	if flagCatalogCheck {
		// Load directly so a bad file is reported rather than replaced.
		cat, err := config.LoadCatalog(flagCatalog)
		if err != nil {
			return err
		}
		if err := cat.Validate(); err != nil {
			return fmt.Errorf("catalog invalid:\n%w", err)
		}
		fmt.Println("catalog ok")
		return nil
	}

	data, err := survival.Catalog().Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
