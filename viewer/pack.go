package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"znkr.io/sidediff/viewer/pack"
)

var packCmd = &cobra.Command{
	Use:   "pack out.tar [comparison.pair...]",
	Short: "Packs rendered comparisons into a .tar file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cs, err := loadAll(args[1:], cmd.Flags())
		if err != nil {
			return fmt.Errorf("loading comparisons: %v", err)
		}
		pages, err := renderAll(cs)
		if err != nil {
			return err
		}
		return pack.Pack(args[0], pages)
	},
}

func init() {
	pairFlags(packCmd.Flags())
}
