package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sagarc03/smallserver/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file interactively",
	Long: `Prompt for the most common settings and write them to a YAML
config file (default: ./smallserver.yaml).

You will be prompted for:
  - Directory to serve
  - Port
  - Index file name
  - Environment (dev or prod)`,
	RunE: runInit,
}

var initOutput string

func init() {
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "smallserver.yaml", "config file to write")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	if _, err := os.Stat(initOutput); err == nil {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("%s already exists. Overwrite it", initOutput),
			IsConfirm: true,
		}
		if _, promptErr := prompt.Run(); promptErr != nil {
			fmt.Println("Cancelled.")
			return nil //nolint:nilerr // User cancelled, not an error
		}
	}

	rootPrompt := promptui.Prompt{
		Label:   "Directory to serve",
		Default: cfg.Root,
		Validate: func(input string) error {
			info, statErr := os.Stat(input)
			if statErr != nil {
				return fmt.Errorf("cannot read directory: %w", statErr)
			}
			if !info.IsDir() {
				return errors.New("not a directory")
			}
			return nil
		},
	}
	root, err := rootPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	portPrompt := promptui.Prompt{
		Label:    "Port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	port, _ := strconv.Atoi(portStr)

	indexPrompt := promptui.Prompt{
		Label:   "Index file",
		Default: cfg.Index,
		Validate: func(input string) error {
			if input == "" {
				return errors.New("index file is required")
			}
			if strings.ContainsAny(input, `/\`) {
				return errors.New("index must be a file name, not a path")
			}
			return nil
		},
	}
	index, err := indexPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	envSelect := promptui.Select{
		Label: "Environment",
		Items: []string{"dev", "prod"},
	}
	_, env, err := envSelect.Run()
	if err != nil {
		return handlePromptError(err)
	}

	cfg.Root = root
	cfg.Server.Port = port
	cfg.Index = index
	cfg.Env = env

	if err := writeConfig(initOutput, cfg); err != nil {
		return err
	}

	fmt.Printf("Config written to %s.\n", initOutput)
	fmt.Printf("Run 'smallserver serve --config %s' to start serving.\n", initOutput)
	return nil
}

func validatePort(input string) error {
	port, err := strconv.Atoi(input)
	if err != nil {
		return errors.New("port must be a number")
	}
	if port < 1 || port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}

// writeConfig marshals cfg to YAML at path, creating the parent directory if needed.
func writeConfig(path string, cfg *config.Config) error {
	cleanPath := filepath.Clean(path)

	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(cleanPath, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		fmt.Println("\nCancelled.")
		os.Exit(0)
	}
	if errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
