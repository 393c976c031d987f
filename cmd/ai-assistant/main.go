package main

import (
	"github.com/eshaffer321/bank-assistant-go/internal/app"
	"go.uber.org/fx"
)

func main() {
	fx.New(app.Module).Run()
}
