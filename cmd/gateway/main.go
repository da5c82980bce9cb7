package main

import (
	"github.com/osahon-dev/notistream/internal/app"
	"go.uber.org/fx"
)

// main is the entry point for the websocket gateway application.
func main() {
	fx.New(app.GatewayModule).Run()
}
