package app

import "go.trai.ch/composite/internal/core/ports"

// Components are what the command line needs from the application.
type Components struct {
	App    *App
	Logger ports.Logger
}
