package main

import (
	"github.com/osahon-dev/notistream/internal/app"
	"go.uber.org/fx"
)

// main is the entry point for the producer-side API application.
func main() {
	fx.New(app.APIModule).Run()
}
