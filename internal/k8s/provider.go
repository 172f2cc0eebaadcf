package k8s

import (
	"strings"
)

// Provider is the hosting flavour of a cluster, guessed from names
type Provider string

const (
	ProviderGeneric       Provider = ""
	ProviderAKS           Provider = "AKS"
	ProviderEKS           Provider = "EKS"
	ProviderGKE           Provider = "GKE"
	ProviderKind          Provider = "kind"
	ProviderK3d           Provider = "k3d"
	ProviderMinikube      Provider = "minikube"
	ProviderDockerDesktop Provider = "docker-desktop"
)

// DetectProvider guesses the provider from the context name and API server URL
func DetectProvider(contextName, server string) Provider {
	server = strings.ToLower(server)

	switch {
	case strings.Contains(server, ".azmk8s.io"):
		return ProviderAKS
	case strings.HasPrefix(contextName, "arn:aws:eks:"), strings.Contains(server, ".eks.amazonaws.com"):
		return ProviderEKS
	case strings.HasPrefix(contextName, "gke_"), strings.Contains(server, "container.googleapis.com"):
		return ProviderGKE
	case strings.HasPrefix(contextName, "kind-"):
		return ProviderKind
	case strings.HasPrefix(contextName, "k3d-"):
		return ProviderK3d
	case contextName == "minikube":
		return ProviderMinikube
	case contextName == "docker-desktop", strings.Contains(server, "kubernetes.docker.internal"):
		return ProviderDockerDesktop
	}
	return ProviderGeneric
}

// ClusterName extracts a short cluster name from well-known context formats
func ClusterName(contextName string) string {
	// AWS EKS: arn:aws:eks:region:account:cluster/name
	if strings.HasPrefix(contextName, "arn:aws:eks:") {
		if idx := strings.LastIndex(contextName, "/"); idx != -1 {
			return contextName[idx+1:]
		}
	}

	// GKE: gke_project_zone_cluster
	if strings.HasPrefix(contextName, "gke_") {
		parts := strings.Split(contextName, "_")
		if len(parts) >= 4 {
			return parts[len(parts)-1]
		}
	}

	for _, prefix := range []string{"kind-", "k3d-"} {
		if strings.HasPrefix(contextName, prefix) {
			return strings.TrimPrefix(contextName, prefix)
		}
	}

	return contextName
}
