package main

import (
	"github.com/storefront-labs/oms/internal/app"
	"github.com/storefront-labs/oms/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
