package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Upload files to the media library",
	Long: `Uploads one or more files and prints the public URL the server
assigned to each. Type and size are checked before any bytes move.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireAuth(); err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			info, err := f.Stat()
			if err != nil {
				f.Close()
				return err
			}
			url, err := a.media.Upload(ctx, filepath.Base(path), info.Size(), f)
			f.Close()
			if err != nil {
				return fmt.Errorf("upload %s: %w", path, err)
			}
			logger.Info("uploaded", zap.String("file", path), zap.String("url", url))
			fmt.Printf("%s -> %s\n", path, url)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
