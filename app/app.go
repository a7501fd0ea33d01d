package app

import (
	"github.com/hkunchal47/formgen/config"
	"github.com/hkunchal47/formgen/generate"
	"github.com/hkunchal47/formgen/store"
)

type App struct {
	*store.Store
	Generator generate.Generator
	config.Config
}
