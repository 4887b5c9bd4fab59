// Command gwdectl is a thin host-language-style wrapper around the gwde
// core: it embeds or detects a watermark in a text or raw 8-bit image
// file. Like ftmactl, it is orchestration glue around the core, not a
// redesign of the core's protocol.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vaultmesh/secureagg/pkg/gwde"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gwdectl:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gwdectl",
		Short: "Embed or detect a GW-DE watermark in a text or image file",
	}
	root.AddCommand(newEmbedCmd())
	root.AddCommand(newDetectCmd())
	return root
}

func newEmbedCmd() *cobra.Command {
	var in, key string
	var seed uint64
	var image bool
	var height, width, channels int
	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Embed a watermark and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmbed(in, key, seed, image, height, width, channels)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input file path")
	cmd.Flags().StringVar(&key, "key", "", "watermark key")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "state seed")
	cmd.Flags().BoolVar(&image, "image", false, "treat --in as a raw 8-bit image buffer rather than text")
	cmd.Flags().IntVar(&height, "height", 0, "image height in samples (--image only)")
	cmd.Flags().IntVar(&width, "width", 0, "image width in samples (--image only)")
	cmd.Flags().IntVar(&channels, "channels", 1, "image channel count (--image only)")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func newDetectCmd() *cobra.Command {
	var in string
	var image bool
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect a watermark and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(in, image)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input file path")
	cmd.Flags().BoolVar(&image, "image", false, "treat --in as a raw 8-bit image buffer rather than text")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func runEmbed(path, key string, seed uint64, asImage bool, height, width, channels int) error {
	ctx := context.Background()
	var payload any
	if asImage {
		samples, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		payload = gwde.ImagePayload{Samples: samples, Height: height, Width: width, Channels: channels}
	} else {
		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		payload = string(text)
	}

	result, err := gwde.Embed(ctx, payload, key, seed)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runDetect(path string, asImage bool) error {
	ctx := context.Background()
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var payload any
	if asImage {
		payload = gwde.ImagePayload{Samples: data}
	} else {
		payload = string(data)
	}

	result, err := gwde.Detect(ctx, payload)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
