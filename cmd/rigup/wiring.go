package main

import (
	"os"

	"github.com/alexisbeaulieu97/rigup/internal/execx"
	"github.com/alexisbeaulieu97/rigup/internal/handler"
	"github.com/alexisbeaulieu97/rigup/internal/handlers/brewpkg"
	"github.com/alexisbeaulieu97/rigup/internal/handlers/clishim"
	"github.com/alexisbeaulieu97/rigup/internal/handlers/configkey"
	"github.com/alexisbeaulieu97/rigup/internal/handlers/fileblock"
	"github.com/alexisbeaulieu97/rigup/internal/handlers/manager"
	"github.com/alexisbeaulieu97/rigup/internal/handlers/service"
	"github.com/alexisbeaulieu97/rigup/internal/handlers/shelldefault"
	"github.com/alexisbeaulieu97/rigup/internal/logger"
	"github.com/alexisbeaulieu97/rigup/internal/system"
)

// buildHandlerRegistry wires every declaration kind to its handler over the
// real system facades.
func buildHandlerRegistry(log *logger.Logger, interactive bool) (*handler.Registry, error) {
	runner := execx.NewRunner()
	brew := system.NewHomebrew(runner)
	prefs := system.NewDefaultsStore(runner)
	shell := system.NewLoginShell(runner)

	git, err := system.NewGitConfig()
	if err != nil {
		return nil, err
	}

	var prompter system.Prompter = system.NonInteractivePrompter{}
	if interactive {
		prompter = system.NewTerminalPrompter(os.Stdin, os.Stdout)
	}

	registry := handler.NewRegistry(log)
	for _, h := range []handler.Handler{
		manager.New(brew),
		brewpkg.NewFormula(brew),
		brewpkg.NewCask(brew),
		service.New(brew),
		fileblock.New(),
		configkey.New(prefs, git, prompter),
		shelldefault.New(shell),
		clishim.New(runner),
	} {
		if err := registry.Register(h); err != nil {
			return nil, err
		}
	}

	return registry, nil
}
