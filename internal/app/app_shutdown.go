package app

// Shutdown releases resources that may outlive the Bubble Tea program.
func (a *App) Shutdown() {
	a.shutdownOnce.Do(func() {
		a.input.Close()
		if a.supervisor != nil {
			a.supervisor.Stop()
		}
		if a.zone != nil {
			a.zone.Close()
		}
	})
}
