package main

import (
	"fmt"

	"github.com/spf13/cobra"

	domain "pdfshrink/internal/domain/compression"
)

var (
	prefsLevel    string
	prefsQuality  int
	prefsPreserve bool
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change default compression settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, err := deps.GetPreferencesService().GetPreferences()
		if err != nil {
			return err
		}
		fmt.Printf("level:            %s\n", prefs.DefaultCompressionLevel)
		fmt.Printf("quality:          %d\n", prefs.DefaultQuality)
		fmt.Printf("preserve quality: %t\n", prefs.PreserveQuality)
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change default compression settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		service := deps.GetPreferencesService()
		prefs, err := service.GetPreferences()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("level") {
			if _, err := domain.ParseLevel(prefsLevel); err != nil {
				return err
			}
			prefs.DefaultCompressionLevel = prefsLevel
		}
		if cmd.Flags().Changed("quality") {
			if prefsQuality < 0 || prefsQuality > 100 {
				return fmt.Errorf("quality %d out of range [0,100]", prefsQuality)
			}
			prefs.DefaultQuality = prefsQuality
		}
		if cmd.Flags().Changed("preserve-quality") {
			prefs.PreserveQuality = prefsPreserve
		}

		return service.UpdatePreferences(*prefs)
	},
}

func init() {
	prefsSetCmd.Flags().StringVar(&prefsLevel, "level", "", "Default compression level: low, medium or high")
	prefsSetCmd.Flags().IntVar(&prefsQuality, "quality", -1, "Default image quality 0-100")
	prefsSetCmd.Flags().BoolVar(&prefsPreserve, "preserve-quality", false, "Keep annotations and rendering hints by default")
	prefsCmd.AddCommand(prefsSetCmd)
}
