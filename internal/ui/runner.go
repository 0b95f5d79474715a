package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"liberty/internal/driver"
)

// RunWithProgress runs work while a progress view reads the events it
// reports. work must not close the channel; RunWithProgress does it once
// work returns. The error of work wins over the error of the UI.
func RunWithProgress(out io.Writer, title string, files []string, work func(driver.PhaseObserver) error) error {
	events := make(chan driver.PhaseEvent, 256)
	outcome := make(chan error, 1)

	go func() {
		err := work(func(ev driver.PhaseEvent) { events <- ev })
		close(events)
		outcome <- err
	}()

	model := NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	// модель могла выйти раньше (ctrl+c); дочитываем, чтобы work не встал
	go func() {
		for range events {
		}
	}()
	err := <-outcome
	if err != nil {
		return err
	}
	return uiErr
}
