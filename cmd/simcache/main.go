package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	simcache "github.com/dscroft/wordnet-blast"
	"github.com/dscroft/wordnet-blast/internal/demo"
)

var (
	dataDir    string
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "simcache",
	Short: "Build, query, and inspect a pairwise similarity cache",
	Long:  `A command-line interface for the similarity cache over the bundled demo word graph.`,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the cache from the demo graph and save it to the data directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := []simcache.Option{}
		if verbose {
			opts = append(opts, simcache.WithLogLevel(slog.LevelDebug))
		}

		c := simcache.New(opts...)
		if err := c.Build(context.Background(), demo.Graph(demo.Words), demo.Similarity); err != nil {
			return fmt.Errorf("build failed: %w", err)
		}
		if err := c.Save(dataDir); err != nil {
			return fmt.Errorf("save failed: %w", err)
		}

		fmt.Printf("built cache for %d words, %d bytes stored, in %s\n", len(demo.Words), c.Size(), dataDir)
		return nil
	},
}

var queryCmd = &cobra.Command{
	Use:   "query <a> <b>",
	Short: "Query the similarity between two word ids, or words",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := resolveWord(args[0])
		if err != nil {
			return err
		}
		b, err := resolveWord(args[1])
		if err != nil {
			return err
		}

		c := simcache.New()
		if err := c.Load(dataDir); err != nil {
			return fmt.Errorf("load failed: %w", err)
		}

		sim := c.Query(a, b)
		if jsonOutput {
			data, _ := json.Marshal(map[string]any{
				"a":          demo.Words[a],
				"b":          demo.Words[b],
				"similarity": sim,
			})
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("%s ~ %s = %v\n", demo.Words[a], demo.Words[b], sim)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print summary statistics about the loaded cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := simcache.New()
		if err := c.Load(dataDir); err != nil {
			return fmt.Errorf("load failed: %w", err)
		}

		stats := map[string]any{
			"words":        len(demo.Words),
			"bytes_stored": c.Size(),
			"undefined":    c.Count(255),
			"empty":        c.Empty(),
		}

		if jsonOutput {
			data, _ := json.MarshalIndent(stats, "", "  ")
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("words: %d\nbytes stored: %d\nundefined pairs: %d\nempty: %v\n",
			stats["words"], stats["bytes_stored"], stats["undefined"], stats["empty"])
		return nil
	},
}

// resolveWord accepts either a numeric id or a literal word from the demo
// vocabulary.
func resolveWord(s string) (int, error) {
	if id, err := strconv.Atoi(s); err == nil {
		if id < 0 || id >= len(demo.Words) {
			return 0, fmt.Errorf("id %d out of range [0,%d)", id, len(demo.Words))
		}
		return id, nil
	}
	for i, w := range demo.Words {
		if w == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown word %q", s)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "./data", "Cache data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	queryCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.AddCommand(buildCmd, queryCmd, statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
