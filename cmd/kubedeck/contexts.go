package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pkt.systems/kubedeck/internal/appconfig"
	"pkt.systems/kubedeck/internal/kube"
	"pkt.systems/kubedeck/schema"
)

func newContextsCmd() *cobra.Command {
	var cfgPath string
	var kubeconfig string
	var mock bool
	cmd := &cobra.Command{
		Use:   "contexts",
		Short: "List kubeconfig contexts with provider metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			if kubeconfig != "" {
				cfg.Kubeconfig = kubeconfig
			}

			var contexts []schema.ClusterContext
			if mock || cfg.Mock {
				contexts = kube.MockContexts()
			} else {
				contexts, err = kube.Contexts(cfg.Kubeconfig)
				if err != nil {
					return err
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPROVIDER\tREGION\tACCOUNT")
			for _, cc := range contexts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cc.DisplayName(), cc.Provider, cc.Region, cc.Account)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVar(&kubeconfig, "kubeconfig", "", "path to kubeconfig (overrides config)")
	cmd.Flags().BoolVar(&mock, "mock", false, "list fixture contexts")
	return cmd
}
