package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	exclusionlist "github.com/goliatone/go-exclusionlist"
	"github.com/goliatone/go-exclusionlist/adapters/gologger"
	"github.com/goliatone/go-exclusionlist/auth"
	"github.com/goliatone/go-exclusionlist/config"
	"github.com/goliatone/go-exclusionlist/core"
)

const (
	flagConfig    = "config"
	flagOutput    = "output"
	flagTimeout   = "timeout"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
	flagToken     = "token"
	flagBaseURL   = "base-url"
	flagEnvPrefix = "env-prefix"
)

type fetchOptions struct {
	ConfigPath string
	EnvPrefix  string
	BaseURL    string
	Token      string
	LogLevel   string
	LogFormat  string
	LogOutput  io.Writer
}

type fetcherBuilder func(opts fetchOptions) (core.ExclusionListReader, error)

func newFetchCommand(build fetcherBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fetch <file-id>",
		Short:   "Downloads the raw content of an exclusion list file",
		Example: "exclusionlist fetch 1AbCdEf --output list.csv",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args[0], build)
		},
	}
	cmd.Flags().StringP(flagConfig, "c", "", "Path to a YAML config file")
	cmd.Flags().StringP(flagOutput, "o", "", "Write the payload to this file instead of stdout")
	cmd.Flags().Duration(flagTimeout, 30*time.Second, "Deadline for the whole fetch, 0 disables it")
	cmd.Flags().String(flagLogLevel, "info", "Log level (trace, debug, info, warn, error)")
	cmd.Flags().String(flagLogFormat, "text", "Log format (text or json)")
	cmd.Flags().String(flagToken, "", "Use this bearer token instead of application default credentials")
	cmd.Flags().String(flagBaseURL, "", "Override drive.base_url")
	cmd.Flags().String(flagEnvPrefix, config.DefaultEnvPrefix, "Prefix for configuration environment variables")
	return cmd
}

func runFetch(cmd *cobra.Command, fileID string, build fetcherBuilder) error {
	flags := cmd.Flags()
	configPath, _ := flags.GetString(flagConfig)
	outputPath, _ := flags.GetString(flagOutput)
	timeout, _ := flags.GetDuration(flagTimeout)
	logLevel, _ := flags.GetString(flagLogLevel)
	logFormat, _ := flags.GetString(flagLogFormat)
	token, _ := flags.GetString(flagToken)
	baseURL, _ := flags.GetString(flagBaseURL)
	envPrefix, _ := flags.GetString(flagEnvPrefix)

	reader, err := build(fetchOptions{
		ConfigPath: configPath,
		EnvPrefix:  envPrefix,
		BaseURL:    baseURL,
		Token:      token,
		LogLevel:   logLevel,
		LogFormat:  logFormat,
		LogOutput:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	payload, err := reader.Fetch(ctx, fileID)
	if err != nil {
		return err
	}

	if strings.TrimSpace(outputPath) == "" {
		_, err = cmd.OutOrStdout().Write(payload)
		return err
	}
	if err := os.WriteFile(outputPath, payload, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	return nil
}

func buildFetcher(opts fetchOptions) (core.ExclusionListReader, error) {
	provider, err := gologger.NewConsoleProvider(opts.LogOutput, opts.LogLevel, opts.LogFormat)
	if err != nil {
		return nil, err
	}

	loader := &config.KoanfLoader{
		Path:      opts.ConfigPath,
		EnvPrefix: opts.EnvPrefix,
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		loader.Overrides = map[string]any{"drive.base_url": base}
	}

	fetcherOpts := []exclusionlist.Option{
		exclusionlist.WithLoggerProvider(provider),
		exclusionlist.WithConfigProvider(core.NewCfgxConfigProvider(loader)),
	}
	if token := strings.TrimSpace(opts.Token); token != "" {
		fetcherOpts = append(fetcherOpts, exclusionlist.WithCredentialProvider(
			auth.NewStaticCredentialProvider(auth.StaticCredentialProviderConfig{AccessToken: token}),
		))
	}
	return exclusionlist.NewFetcher(exclusionlist.Config{}, fetcherOpts...)
}
