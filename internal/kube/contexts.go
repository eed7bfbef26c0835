package kube

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pkt.systems/kubedeck/schema"
)

type kubeconfigFile struct {
	CurrentContext string `yaml:"current-context"`
	Contexts       []struct {
		Name string `yaml:"name"`
	} `yaml:"contexts"`
}

// Contexts parses the kubeconfig at path and returns its contexts in file
// order, enriched with provider metadata derived from each name.
func Contexts(path string) ([]schema.ClusterContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read kubeconfig: %w", err)
	}
	var cfg kubeconfigFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse kubeconfig: %w", err)
	}
	contexts := make([]schema.ClusterContext, 0, len(cfg.Contexts))
	for _, entry := range cfg.Contexts {
		if entry.Name == "" {
			continue
		}
		contexts = append(contexts, schema.ParseContext(schema.ContextName(entry.Name)))
	}
	return contexts, nil
}

// CurrentContext returns the kubeconfig's current-context, if set.
func CurrentContext(path string) (schema.ContextName, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read kubeconfig: %w", err)
	}
	var cfg kubeconfigFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return "", fmt.Errorf("parse kubeconfig: %w", err)
	}
	return schema.ContextName(cfg.CurrentContext), nil
}

var mockContextNames = []schema.ContextName{
	"gke_project-a_asia-northeast1_cluster-1",
	"gke_project-a_asia-northeast1_cluster-2",
	"gke_project-b_us-central1_cluster-1",
	"gke_project-b_us-central1_cluster-2",
	"arn:aws:eks:ap-northeast-1:123456789012:cluster/eks-cluster-1",
	"arn:aws:eks:ap-northeast-1:123456789012:cluster/eks-cluster-2",
	"arn:aws:eks:us-west-2:123456789012:cluster/eks-cluster-3",
	"docker-desktop",
	"minikube",
	"kind-cluster",
	"custom-context-1",
	"custom-context-2",
}

// MockContexts returns the fixture context list used in mock mode.
func MockContexts() []schema.ClusterContext {
	contexts := make([]schema.ClusterContext, 0, len(mockContextNames))
	for _, name := range mockContextNames {
		contexts = append(contexts, schema.ParseContext(name))
	}
	return contexts
}
