package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Shahfarzane/CursorFocus/constants/lipgloss"
)

// ConfirmPrompt asks the user a yes/no question and returns the answer.
// EOF counts as a refusal.
func ConfirmPrompt(question string, reader *bufio.Reader) (bool, error) {
	fmt.Print(lipgloss.BlueSky.Render(question + " (y/n): "))

	input, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("error reading input: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(input))
	return answer == "y" || answer == "yes", nil
}
