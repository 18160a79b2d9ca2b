package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/mangastats/pkg/app/screens"
	"github.com/kerbaras/mangastats/pkg/services"
)

type App struct {
	controller *services.Controller
}

func NewApp(controller *services.Controller) *App {
	return &App{controller: controller}
}

// Run shows the statistics screen until the user quits. Deletions started
// from the screen are awaited before returning.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := screens.NewRootScreen(ctx, a.controller.Stats())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	cancel()
	a.controller.Stats().Wait()
	return err
}
