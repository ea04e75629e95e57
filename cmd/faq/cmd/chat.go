package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/faq/internal/domain/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive FAQ conversation",
	Long: "Starts a conversation with the FAQ assistant.\n" +
		"Commands: /suggest lists example questions, /reset starts over, /quit exits.",
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	b, err := openBackend(projectRoot())
	if err != nil {
		return err
	}
	defer b.close()

	suggestions, err := b.suggestions()
	if err != nil {
		return err
	}
	session := chat.NewSession(b, suggestions)
	printTranscript(session.Messages())
	fmt.Print(formatSuggestions(session.Suggestions()))
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(paint(colorBold, "> "))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/reset":
			session.Reset()
			printTranscript(session.Messages())
			continue
		case line == "/suggest":
			fmt.Print(formatSuggestions(session.Suggestions()))
			continue
		case strings.HasPrefix(line, "/"):
			// "/2" asks the second suggestion
			n, err := strconv.Atoi(line[1:])
			if err != nil || n < 1 || n > len(suggestions) {
				fmt.Println(paint(colorYellow, "unknown command: "+line))
				continue
			}
			line = suggestions[n-1]
			fmt.Println(paint(colorGray, line))
		}

		if _, ok := session.Send(line); !ok {
			continue
		}
		msgs := session.Messages()
		fmt.Print(formatMessage(msgs[len(msgs)-1]))
	}
}

func printTranscript(msgs []chat.Message) {
	for _, m := range msgs {
		fmt.Print(formatMessage(m))
	}
}
