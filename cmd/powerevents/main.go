package main

import (
	"context"
	"fmt"
	"os"
	"powerevents/internal/di"
	"powerevents/internal/providers"
	"powerevents/internal/structures"

	flag "github.com/spf13/pflag"
)

func parseFlags(args []string) (*structures.CliFlags, bool, error) {
	fs := flag.NewFlagSet("powerevents", flag.ContinueOnError)
	configPath := fs.StringP("config", "c", "configs/config.yaml", "path to the config file")
	debug := fs.BoolP("debug", "d", false, "mirror the system log to stderr")
	version := fs.BoolP("version", "v", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}
	return &structures.CliFlags{ConfigPath: *configPath, DebugMode: *debug}, *version, nil
}

func main() {
	flags, version, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if version {
		fmt.Printf("%s %s\n", providers.AppName, providers.Version)
		return
	}

	// Another instance already keeps the record fresh.
	duplicate, err := providers.NewProcessGuard().IsDuplicate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "process guard: %s\n", err)
	}
	if duplicate {
		fmt.Println("duplicate process")
		return
	}

	app, err := di.InitApp(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init: %s\n", err)
		os.Exit(1)
	}
	defer app.Close()

	app.Run(context.Background())
}
