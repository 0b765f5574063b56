package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"rollcall/internal/cli"
	"rollcall/internal/errors"
	"rollcall/internal/logger"
	"rollcall/internal/tui"
)

type BoardCmd struct{}

func (c *BoardCmd) Run(ctx *cli.Context) error {
	client, err := ctx.API()
	if err != nil {
		return err
	}

	model := tui.NewModel(tui.Options{
		Client:   client,
		Interval: ctx.Config.PollInterval,
		Location: ctx.Location(),
		Version:  ctx.Version,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	// Punch and leave commands poke this listener so the board repolls
	// immediately instead of waiting out the poll interval.
	stopListener, err := tui.StartRefreshListener(p)
	if err != nil {
		logger.Warn("board refresh listener unavailable", "error", err)
	} else {
		defer stopListener()
	}

	if _, err := p.Run(); err != nil {
		return errors.Format("board exited with an error", err)
	}
	return nil
}
