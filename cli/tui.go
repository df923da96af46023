package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/harperreed/mobiledir/client"
	"github.com/harperreed/mobiledir/tui"
)

// TUICommand runs the interactive directory until the user quits.
func TUICommand(dir *client.Client, logger *zap.Logger) error {
	logger.Info("starting tui", zap.String("backend", dir.BaseURL()))

	p := tea.NewProgram(tui.NewModel(dir, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
