package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mapleline/policyscan/internal/adapters/driving/tui"
	"github.com/mapleline/policyscan/internal/core/services"
)

var chatPlain bool

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask questions about party policy positions",
	Long: `Starts a conversation with the policy assistant. Answers are
grounded in ingested content and cite their sources.

With a question argument the answer is printed and the command exits.
Without one, an interactive session starts; on a terminal this is a
full-screen UI unless --plain is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatPlain, "plain", false, "line-based chat instead of the full-screen UI")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return askOnce(cmd, args[0])
	}

	if !chatPlain && term.IsTerminal(int(os.Stdin.Fd())) {
		return runChatTUI(cmd)
	}
	return chatLoop(cmd)
}

func askOnce(cmd *cobra.Command, question string) error {
	answer, err := chatService.Ask(cmd.Context(), question, services.HintsFromQuestion(question))
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}
	cmd.Println(answer)
	return nil
}

// chatLoop is the line-based fallback for non-terminal stdin and
// --plain runs. Errors keep the session alive.
func chatLoop(cmd *cobra.Command) error {
	cmd.Println("Ask about Canadian party policy. Type 'exit' to quit.")
	cmd.Println()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			return nil
		}

		answer, err := chatService.Ask(cmd.Context(), question, services.HintsFromQuestion(question))
		if err != nil {
			cmd.Printf("Error: %v\n\n", err)
			continue
		}
		cmd.Printf("\n%s\n\n", answer)
	}
}

func runChatTUI(cmd *cobra.Command) error {
	app := tui.NewApp(chatService)
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat UI error: %w", err)
	}
	return nil
}
