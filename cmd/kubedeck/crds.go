package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pkt.systems/kubedeck/internal/appconfig"
	"pkt.systems/kubedeck/internal/kube"
	"pkt.systems/kubedeck/schema"
)

func newCRDsCmd() *cobra.Command {
	var cfgPath string
	var kubeconfig string
	var contextName string
	var mock bool
	cmd := &cobra.Command{
		Use:   "crds",
		Short: "List custom resource definitions grouped by API group",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			if kubeconfig != "" {
				cfg.Kubeconfig = kubeconfig
			}

			var client kube.Client
			if mock || cfg.Mock {
				client = kube.NewMockClient()
			} else {
				client, err = kube.NewClient(schema.ContextName(contextName), cfg.Kubeconfig)
				if err != nil {
					return err
				}
			}
			groups, err := client.ListCRDGroups(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "GROUP\tKIND\tPLURAL\tVERSION\tSCOPE")
			for _, group := range groups {
				for _, res := range group.Resources {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", group.Group, res.Kind, res.Plural, res.Version, res.Scope)
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVar(&kubeconfig, "kubeconfig", "", "path to kubeconfig (overrides config)")
	cmd.Flags().StringVar(&contextName, "context", "", "kubeconfig context (defaults to current)")
	cmd.Flags().BoolVar(&mock, "mock", false, "list fixture definitions")
	return cmd
}
