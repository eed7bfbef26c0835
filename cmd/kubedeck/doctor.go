package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pkt.systems/kubedeck/internal/appconfig"
	"pkt.systems/kubedeck/internal/kube"
	"pkt.systems/pslog"
)

func newDoctorCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run kubedeck diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())

			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			configPath := cfgPath
			if strings.TrimSpace(configPath) == "" {
				path, err := appconfig.DefaultConfigPath()
				if err != nil {
					return err
				}
				configPath = path
			}
			logger.Info("doctor start", "config", configPath)

			if err := checkKubeconfig(cfg); err != nil {
				return err
			}
			logger.Info("doctor kubeconfig ok", "path", cfg.Kubeconfig)

			contexts, err := kube.Contexts(cfg.Kubeconfig)
			if err != nil {
				return fmt.Errorf("doctor contexts: %w", err)
			}
			logger.Info("doctor contexts ok", "count", len(contexts))

			if err := checkStateDir(cfg.StateDir); err != nil {
				return err
			}
			logger.Info("doctor state dir ok", "dir", cfg.StateDir)

			if err := checkShell(cfg.Terminal.Shell); err != nil {
				return err
			}
			logger.Info("doctor shell ok")

			logger.Info("doctor complete")
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	return cmd
}

func checkKubeconfig(cfg appconfig.Config) error {
	info, err := os.Stat(cfg.Kubeconfig)
	if err != nil {
		return fmt.Errorf("doctor kubeconfig: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("doctor kubeconfig: %s is a directory", cfg.Kubeconfig)
	}
	return nil
}

func checkStateDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("doctor state dir: %w", err)
	}
	probe, err := os.CreateTemp(dir, "doctor-*")
	if err != nil {
		return fmt.Errorf("doctor state dir not writable: %w", err)
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}

func checkShell(shell string) error {
	if shell == "" {
		shell = os.Getenv("SHELL")
		if shell == "" {
			shell = "/bin/sh"
		}
	}
	if _, err := os.Stat(shell); err != nil {
		return fmt.Errorf("doctor shell %s: %w", shell, err)
	}
	return nil
}
