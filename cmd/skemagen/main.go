package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	skemagen "github.com/reoring/skemagen"
	"github.com/reoring/skemagen/schema"
)

var (
	outputFile  string
	packageName string
	codecs      string
)

var rootCmd = &cobra.Command{
	Use:   "skemagen",
	Short: "Generate Scala 3 sources from class/slot schemas",
	Long:  `Skemagen compiles a YAML class/slot/enum schema into Scala 3 declarations: case classes, traits, enums, companion validators and optional circe codecs.`,
}

var genCmd = &cobra.Command{
	Use:   "gen <schema.yaml>",
	Short: "Compile a schema file into Scala 3 declarations",
	Args:  cobra.ExactArgs(1),
	RunE:  runGen,
}

func init() {
	genCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	genCmd.Flags().StringVarP(&packageName, "package", "p", "", "Scala package name (default: derived from the schema name)")
	genCmd.Flags().StringVar(&codecs, "codecs", "none", "Codec generation mode: none, inline or separate")
	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	mode, err := skemagen.ParseCodecMode(codecs)
	if err != nil {
		return err
	}

	doc, err := schema.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	res, err := skemagen.Generate(schema.NewView(doc), skemagen.Options{
		Package: packageName,
		Codecs:  mode,
	})
	if err != nil {
		return err
	}

	if outputFile == "" {
		out := cmd.OutOrStdout()
		if _, err := out.Write(res.Model); err != nil {
			return err
		}
		if res.Codecs != nil {
			fmt.Fprintf(out, "\n// %s\n\n", strings.Repeat("-", 60))
			if _, err := out.Write(res.Codecs); err != nil {
				return err
			}
		}
		return nil
	}

	if err := os.WriteFile(outputFile, res.Model, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Generated %s\n", outputFile)

	if res.Codecs != nil {
		path := codecsPath(outputFile)
		if err := os.WriteFile(path, res.Codecs, 0o644); err != nil {
			return fmt.Errorf("failed to write codecs file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated %s\n", path)
	}
	return nil
}

// codecsPath derives the sibling codecs file name: Model.scala -> ModelCodecs.scala.
func codecsPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "Codecs" + ext
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
