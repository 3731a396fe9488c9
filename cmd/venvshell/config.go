// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/venvshell/venvshell/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `venvshell config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage venvshell configuration",
		Long: `Manage venvshell configuration.

Configuration is stored in:
  - Linux: ~/.config/venvshell/config.cue
  - macOS: ~/Library/Application Support/venvshell/config.cue
  - Windows: %APPDATA%\venvshell\config.cue

Every key can be overridden with a VENVSHELL_* environment variable, e.g.
VENVSHELL_CREATOR=venv or VENVSHELL_UI_VERBOSE=true.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, flags, cmd.OutOrStdout())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(flags, cmd.OutOrStdout())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := config.FilePath(loadOptions(flags))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfgPath)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd.Context(), app, flags, args[0], args[1], cmd.OutOrStdout())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := app.Config.Load(cmd.Context(), loadOptions(flags))
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return err
		},
	})

	return cfgCmd
}

func loadOptions(flags *rootFlags) config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: flags.configPath}
}

func showConfig(ctx context.Context, app *App, flags *rootFlags, w io.Writer) error {
	cfg, cfgPath, err := app.Config.Load(ctx, loadOptions(flags))
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if cfgPath != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	python := valueStyle.Render(cfg.Python)
	if cfg.Python == "" {
		python = SubtitleStyle.Render("(creator default)")
	}
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("marker"), valueStyle.Render(cfg.Marker))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("python"), python)
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("creator"), valueStyle.Render(cfg.Creator.String()))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("strict_layout"), valueStyle.Render(strconv.FormatBool(cfg.StrictLayout)))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("descriptor"), valueStyle.Render(cfg.Descriptor))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(strconv.FormatBool(cfg.UI.Verbose)))

	return nil
}

func initConfig(flags *rootFlags, w io.Writer) error {
	cfgPath, created, err := config.CreateDefaultConfig(loadOptions(flags))
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	if !created {
		fmt.Fprintf(w, "%s Configuration already exists at %s\n", warnMark, cfgPath)
		return nil
	}
	fmt.Fprintf(w, "%s Created default configuration at %s\n", checkMark, cfgPath)
	return nil
}

func setConfigValue(ctx context.Context, app *App, flags *rootFlags, key, value string, w io.Writer) error {
	opts := loadOptions(flags)
	cfg, _, err := app.Config.Load(ctx, opts)
	if err != nil {
		return err
	}

	switch key {
	case "marker":
		cfg.Marker = value
	case "python":
		cfg.Python = value
	case "creator":
		cfg.Creator = config.CreatorKind(value)
	case "descriptor":
		cfg.Descriptor = value
	case "strict_layout":
		cfg.StrictLayout, err = strconv.ParseBool(value)
	case "ui.color_scheme":
		cfg.UI.ColorScheme = config.ColorScheme(value)
	case "ui.verbose":
		cfg.UI.Verbose, err = strconv.ParseBool(value)
	default:
		return fmt.Errorf("unknown configuration key %q (valid: marker, python, creator, strict_layout, descriptor, ui.color_scheme, ui.verbose)", key)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if valid, errs := cfg.IsValid(); !valid {
		return errors.Join(errs...)
	}

	if err := config.Save(cfg, opts); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s Set %s = %s\n", checkMark, CmdStyle.Render(key), SuccessStyle.Render(value))
	return nil
}
