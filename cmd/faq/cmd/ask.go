package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	askJSON    bool
	askExplain bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Answer a question",
	Long: "Answers one question from the knowledge base. With no arguments and piped stdin,\n" +
		"every non-blank input line is answered in order. Uses the daemon when it is running.",
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Print answers as JSON lines")
	askCmd.Flags().BoolVar(&askExplain, "explain", false, "Show every entry's score instead of the answer")
}

func runAsk(cmd *cobra.Command, args []string) error {
	var questions []string
	switch {
	case len(args) > 0:
		questions = []string{strings.Join(args, " ")}
	case isStdinPipe():
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				questions = append(questions, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	default:
		return fmt.Errorf("usage: faq ask <question>")
	}

	b, err := openBackend(projectRoot())
	if err != nil {
		return err
	}
	defer b.close()

	if askExplain {
		m, err := b.compiled()
		if err != nil {
			return err
		}
		for _, q := range questions {
			fmt.Print(formatExplain(m, q))
		}
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	for _, q := range questions {
		res, err := b.ask(q)
		if err != nil {
			return err
		}
		if askJSON {
			if err := enc.Encode(res); err != nil {
				return err
			}
			continue
		}
		fmt.Print(formatAnswer(res))
	}
	return nil
}
