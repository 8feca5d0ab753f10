package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lexiclass",
	Short: "lexiclass - naive Bayes document classifier",
	Long: `lexiclass is a multinomial naive Bayes text classifier.

It learns word-frequency statistics from labeled training documents and
assigns the most probable label to new documents. Trained models can be
persisted to a JSON file, Redis, or SQLite.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("lexiclass - naive Bayes document classifier")
		fmt.Println("Use 'lexiclass --help' for usage information")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(configCmd)
}
