package main

import (
	"go.uber.org/fx"

	"github.com/sculptstudio/atelier/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
