// cmd/medit/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	stlog "log" // for fatal errors before the logger is ready
	"os"

	"github.com/bethropolis/medit/internal/app"
	"github.com/bethropolis/medit/internal/config"
	"github.com/bethropolis/medit/internal/logger"
)

var version = "dev"

func main() {
	flags := config.NewFlags(config.AppName)
	files, err := flags.Parse(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		os.Exit(0)
	}

	cfg, undecoded, err := config.Load(*flags.ConfigFilePath, flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	// stderr belongs to the terminal UI, so log to a file unless told otherwise
	logPath := cfg.Logger.LogFilePath
	if logPath == "" {
		logPath = config.DefaultLogFileName
	}
	logOutput, err := logger.OpenOutput(logPath)
	if err != nil {
		stlog.Fatalf("Failed to open log output: %v", err)
	}
	defer logOutput.Close()
	logger.InitWithConfig(cfg.Logger, logOutput)

	logger.Infof("Starting %s %s...", config.AppName, version)
	for _, key := range undecoded {
		logger.Warnf("Unknown configuration key: %s", key)
	}
	if len(files) > 0 {
		logger.Debugf("Files specified: %v", files)
	} else {
		logger.Debugf("No file specified, starting with a scratch view.")
	}

	editor, err := app.NewApp(cfg, files)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "medit: %v\n", err)
		os.Exit(1)
	}

	if err := editor.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
	logger.Infof("%s finished.", config.AppName)
}
