package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ritualloop/internal/engine"
)

// RunBoard starts the interactive today-board for one user.
func RunBoard(ctx context.Context, svc *engine.Service, userID string, today time.Time, out io.Writer) error {
	m := newBoardModel(ctx, svc, userID, today)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
