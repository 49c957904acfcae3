package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fridaylabs/friday-go/core"
	"github.com/fridaylabs/friday-go/intent"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant on the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAssistant(true)
		if err != nil {
			return err
		}
		defer a.close()

		reader := bufio.NewReader(os.Stdin)
		term := &terminalVoice{reader: reader}
		d := a.newDispatcher(term, term)

		fmt.Println("Friday: Hello! I'm Friday. How can I help you today?")
		ctx := context.Background()

		for {
			fmt.Print("You: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println()
				return nil
			}
			utterance := strings.TrimSpace(line)

			fmt.Println("Friday: " + d.Respond(ctx, utterance))
			if intent.Classify(utterance) == intent.TagExit {
				return nil
			}
		}
	},
}

// terminalVoice answers follow-up prompts from the same stdin stream
// the chat loop reads.
type terminalVoice struct {
	reader *bufio.Reader
}

func (t *terminalVoice) Speak(_ context.Context, text string) {
	fmt.Println("Friday: " + text)
}

func (t *terminalVoice) Listen(context.Context) (string, error) {
	fmt.Print("You: ")
	line, err := t.reader.ReadString('\n')
	if err != nil {
		return "", core.ErrInputTimeout
	}
	return strings.TrimSpace(line), nil
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
