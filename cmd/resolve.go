package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var resolveCustomerID int64

var resolveCmd = &cobra.Command{
	Use:   "resolve <image>",
	Short: "Resolve the sender contact of one scanned document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		image, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "read image %s", args[0])
		}

		result, err := env.Pipeline.Run(ctx, image, mediaTypeFor(args[0], image), resolveCustomerID)
		if err != nil {
			return err
		}
		if result == nil {
			fmt.Println("no contact resolved")
			return nil
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// mediaTypeFor picks the image media type from the file extension, falling
// back to content sniffing.
func mediaTypeFor(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	}
	return http.DetectContentType(data)
}

func init() {
	resolveCmd.Flags().Int64Var(&resolveCustomerID, "customer-id", 0, "active customer id for the self-conflict check (0 = none)")
	rootCmd.AddCommand(resolveCmd)
}
