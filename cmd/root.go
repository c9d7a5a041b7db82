package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hpc-tools/moddrift/config"
	"github.com/hpc-tools/moddrift/modules"
	"github.com/hpc-tools/moddrift/remote"
	"github.com/hpc-tools/moddrift/report"
)

var rootArgs struct {
	Server1    string
	Server2    string
	KeyPath    string
	Password   string
	ConfigPath string
	Dialect    string
	Probe      string
	Port       int
	Timeout    int
	Parallel   bool
	Debug      bool
}

// NewRootCommand builds the command that performs the whole comparison run.
func NewRootCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "moddrift",
		Short: "Compare the environment-module catalogs of two hosts over SSH.",
		Long: "moddrift lists the environment modules available on two remote Linux\n" +
			"hosts and reports the drift between them: modules present on only one\n" +
			"host, and modules whose build times disagree.",
		PreRun: func(cmd *cobra.Command, args []string) {
			log.SetHandler(cli.Default)
			if rootArgs.Debug {
				log.SetLevel(log.DebugLevel)
			}
		},
		Run: rootCmdRun,
	}

	command.Flags().StringVarP(&rootArgs.Server1, "server1", "1", "", "first host to compare (user@hostname)")
	command.Flags().StringVarP(&rootArgs.Server2, "server2", "2", "", "second host to compare (user@hostname)")
	command.Flags().StringVarP(&rootArgs.KeyPath, "key", "k", "", "path to a private SSH key")
	command.Flags().StringVarP(&rootArgs.Password, "password", "p", "", "password for the SSH connections")
	command.Flags().StringVar(&rootArgs.ConfigPath, "config", "", "path to an optional YAML configuration file")
	command.Flags().StringVar(&rootArgs.Dialect, "dialect", "", "module system dialect: terse or verbose")
	command.Flags().StringVar(&rootArgs.Probe, "probe", "", "build time probe mode: shell or sftp")
	command.Flags().IntVar(&rootArgs.Port, "port", 0, "SSH port for both hosts")
	command.Flags().IntVar(&rootArgs.Timeout, "timeout", 0, "per-command timeout in seconds")
	command.Flags().BoolVar(&rootArgs.Parallel, "parallel", false, "list both hosts concurrently")
	command.Flags().BoolVar(&rootArgs.Debug, "debug", false, "enable verbose logging")

	_ = command.MarkFlagRequired("server1")
	_ = command.MarkFlagRequired("server2")

	command.AddCommand(newVersionCommand())

	return command
}

func rootCmdRun(cmd *cobra.Command, _ []string) {
	if err := run(cmd); err != nil {
		log.WithError(err).Error("comparison failed")
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command) error {
	cfg, err := loadConfiguration(cmd)
	if err != nil {
		return err
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	dialect, err := modules.DialectByName(cfg.Dialect)
	if err != nil {
		return err
	}

	target1, err := remote.ParseTarget(rootArgs.Server1)
	if err != nil {
		return err
	}
	target2, err := remote.ParseTarget(rootArgs.Server2)
	if err != nil {
		return err
	}

	creds := remote.Credentials{KeyPath: rootArgs.KeyPath, Password: rootArgs.Password}
	if creds.KeyPath == "" && creds.Password == "" {
		if err := promptPassword(&creds.Password); err != nil {
			return err
		}
	}

	opts := remote.Options{
		Port:           cfg.Ssh.Port,
		ConnectTimeout: time.Duration(cfg.Ssh.ConnectTimeout) * time.Second,
		CommandTimeout: time.Duration(cfg.Ssh.CommandTimeout) * time.Second,
	}

	client1, err := remote.Connect(target1, creds, opts)
	if err != nil {
		return err
	}
	defer client1.Close()

	client2, err := remote.Connect(target2, creds, opts)
	if err != nil {
		return err
	}
	defer client2.Close()

	list := func(ctx context.Context, client *remote.Client, target remote.Target) ([]modules.Record, error) {
		log.WithField("target", target.String()).Info("listing module catalog")
		lister := &modules.Lister{Runner: client, Dialect: dialect, Host: target.String()}
		if cfg.Probe == config.ProbeSFTP {
			stater, err := client.Stater()
			if err != nil {
				return nil, err
			}
			lister.Stater = stater
		}
		records, err := lister.List(ctx)
		if err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{
			"target":  target.String(),
			"modules": len(records),
		}).Info("module catalog listed")
		return records, nil
	}

	ctx := cmd.Context()
	var left, right []modules.Record
	if rootArgs.Parallel {
		// Independent hosts, independent data: concurrency here changes
		// nothing about the report.
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			left, err = list(gctx, client1, target1)
			return err
		})
		g.Go(func() error {
			var err error
			right, err = list(gctx, client2, target2)
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		if left, err = list(ctx, client1, target1); err != nil {
			return err
		}
		if right, err = list(ctx, client2, target2); err != nil {
			return err
		}
	}

	diff := modules.Compare(left, right)
	w := &report.Writer{Out: cmd.OutOrStdout(), Host1: target1.String(), Host2: target2.String()}
	w.Render(diff)

	return nil
}

// loadConfiguration layers the optional YAML file over the defaults and any
// explicitly set flags over both.
func loadConfiguration(cmd *cobra.Command) (*config.Configuration, error) {
	var cfg *config.Configuration
	var err error
	if rootArgs.ConfigPath != "" {
		cfg, err = config.Load(rootArgs.ConfigPath)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("dialect") {
		cfg.Dialect = rootArgs.Dialect
	}
	if flags.Changed("probe") {
		cfg.Probe = rootArgs.Probe
	}
	if flags.Changed("port") {
		cfg.Ssh.Port = rootArgs.Port
	}
	if flags.Changed("timeout") {
		cfg.Ssh.CommandTimeout = rootArgs.Timeout
	}
	if rootArgs.Debug {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func promptPassword(out *string) error {
	input := huh.NewInput().
		Title("SSH password").
		EchoMode(huh.EchoModePassword).
		Value(out)
	if err := input.Run(); err != nil {
		if err == huh.ErrUserAborted {
			return fmt.Errorf("cmd: password entry aborted")
		}
		return err
	}
	return nil
}
