package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [comparison.pair...]",
	Short: "Renders comparisons into a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}
		cs, err := loadAll(args, cmd.Flags())
		if err != nil {
			return fmt.Errorf("loading comparisons: %v", err)
		}
		pages, err := renderAll(cs)
		if err != nil {
			return err
		}
		for _, page := range pages {
			dir := filepath.Join(out, page.Name)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("creating output directory: %v", err)
			}
			for _, f := range page.Files() {
				if err := os.WriteFile(filepath.Join(dir, f.Path), f.Data, 0644); err != nil {
					return fmt.Errorf("writing %s: %v", f.Path, err)
				}
			}
			log.Printf("Rendered %s to %s (%d connectors)", page.Name, dir, len(page.Result.Connectors))
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringP("out", "o", ".", "output directory")
	pairFlags(renderCmd.Flags())
}
