package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/hengadev/serialx"
)

// EnvConfigPath overrides the default configuration file location.
const EnvConfigPath = "SERIALX_GEN_CONFIG"

func main() {
	// a missing .env file is fine
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "generate":
		generateCommand(os.Args[2:])
	case "validate":
		validateCommand(os.Args[2:])
	case "init":
		initCommand(os.Args[2:])
	case "version":
		versionCommand()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options] [packages]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nCommands:\n")
	fmt.Fprintf(os.Stderr, "  generate  Generate registration code for annotated types\n")
	fmt.Fprintf(os.Stderr, "  validate  Validate configuration and directives\n")
	fmt.Fprintf(os.Stderr, "  init      Initialize configuration file\n")
	fmt.Fprintf(os.Stderr, "  version   Show version information\n")
	fmt.Fprintf(os.Stderr, "\nRun '%s <command> -h' for help on a specific command.\n", os.Args[0])
}

// configFlag registers -config on fs and reports whether it was set
// explicitly, either on the command line or through the environment.
func configFlag(fs *flag.FlagSet) func() (string, bool) {
	def := DefaultConfigFile
	env := os.Getenv(EnvConfigPath)
	if env != "" {
		def = env
	}
	path := fs.String("config", def, "Path to configuration file")
	return func() (string, bool) {
		explicit := env != ""
		fs.Visit(func(f *flag.Flag) {
			if f.Name == "config" {
				explicit = true
			}
		})
		return *path, explicit
	}
}

func packagesOrCurrent(fs *flag.FlagSet) []string {
	if fs.NArg() == 0 {
		return []string{"."}
	}
	return fs.Args()
}

func generateCommand(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	configPath := configFlag(fs)
	outputDir := fs.String("output", "", "Override output directory")
	verbose := fs.Bool("v", false, "Verbose output")
	dryRun := fs.Bool("dry-run", false, "Show what would be generated without writing files")
	fs.Parse(args)

	path, explicit := configPath()
	config, _, err := ResolveConfig(path, explicit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	generator, err := NewGenerator(config, *outputDir, *verbose, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := generator.Generate(packagesOrCurrent(fs), *dryRun); err != nil {
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		os.Exit(1)
	}
}

func validateCommand(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := configFlag(fs)
	verbose := fs.Bool("v", false, "Verbose output")
	fs.Parse(args)

	path, explicit := configPath()
	config, resolved, err := ResolveConfig(path, explicit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", failMark, err)
		os.Exit(1)
	}
	if resolved == "" {
		fmt.Println("No configuration file found, using defaults")
	} else {
		fmt.Printf("%s Configuration file %s is valid\n", okMark, resolved)
	}

	generator, err := NewGenerator(config, "", *verbose, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if !generator.Validate(packagesOrCurrent(fs)) {
		fmt.Fprintf(os.Stderr, "\nValidation failed with errors.\n")
		os.Exit(1)
	}
	fmt.Printf("\n%s All validations passed!\n", okMark)
}

func initCommand(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "Overwrite existing configuration file")
	fs.Parse(args)

	configPath := DefaultConfigFile
	if !*force {
		if _, err := os.Stat(configPath); err == nil {
			fmt.Fprintf(os.Stderr, "Configuration file %s already exists. Use -force to overwrite.\n", configPath)
			os.Exit(1)
		}
	}

	fmt.Printf("Creating configuration file at %s...\n", configPath)
	if err := SaveConfig(DefaultConfig(), configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create config file: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Configuration file created!")
}

func versionCommand() {
	fmt.Printf("serialx-gen %s\n", serialx.VersionInfo())
	fmt.Println("Registration code generator for serialx")
	fmt.Println("")
	fmt.Println("Directives:")
	fmt.Println("  //serialx:type [naming=camel_case|pascal_case|snake_case|kebab_case] [prettify=true|false]")
	fmt.Println("  //serialx:method [CustomName]")
}
