package resources

import (
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// Kind is a Kubernetes object kind as found in the "kind" field
type Kind string

const (
	KindBucket         Kind = "Bucket"
	KindGitRepository  Kind = "GitRepository"
	KindOCIRepository  Kind = "OCIRepository"
	KindHelmRepository Kind = "HelmRepository"
	KindHelmChart      Kind = "HelmChart"
	KindKustomization  Kind = "Kustomization"
	KindHelmRelease    Kind = "HelmRelease"
	KindNamespace      Kind = "Namespace"
	KindDeployment     Kind = "Deployment"
	KindNode           Kind = "Node"
	KindPod            Kind = "Pod"
	KindConfigMap      Kind = "ConfigMap"
)

// Category groups kinds by how they are shown in the trees
type Category int

const (
	CategoryOther Category = iota
	CategorySource
	CategoryWorkload
	CategoryNamespace
)

// Flux API groups
const (
	SourceGroup    = "source.toolkit.fluxcd.io"
	KustomizeGroup = "kustomize.toolkit.fluxcd.io"
	HelmGroup      = "helm.toolkit.fluxcd.io"
)

// KindInfo describes a supported kind
type KindInfo struct {
	Kind       Kind
	GVR        schema.GroupVersionResource
	Category   Category
	Namespaced bool
	// FluxCLI is the argument path used by the flux CLI for this kind,
	// e.g. ["source", "git"]. Empty for non-Flux kinds.
	FluxCLI []string
	// Origin lists JSONPath expressions naming where the object's content
	// comes from (repository URL, chart, path). The first match wins.
	Origin []string
}

// kindTable is the fixed set of kinds the trees know how to display
var kindTable = map[Kind]KindInfo{
	KindGitRepository: {
		Kind:       KindGitRepository,
		GVR:        schema.GroupVersionResource{Group: SourceGroup, Version: "v1", Resource: "gitrepositories"},
		Category:   CategorySource,
		Namespaced: true,
		FluxCLI:    []string{"source", "git"},
		Origin:     []string{".spec.url"},
	},
	KindHelmRepository: {
		Kind:       KindHelmRepository,
		GVR:        schema.GroupVersionResource{Group: SourceGroup, Version: "v1", Resource: "helmrepositories"},
		Category:   CategorySource,
		Namespaced: true,
		FluxCLI:    []string{"source", "helm"},
		Origin:     []string{".spec.url"},
	},
	KindOCIRepository: {
		Kind:       KindOCIRepository,
		GVR:        schema.GroupVersionResource{Group: SourceGroup, Version: "v1beta2", Resource: "ocirepositories"},
		Category:   CategorySource,
		Namespaced: true,
		FluxCLI:    []string{"source", "oci"},
		Origin:     []string{".spec.url"},
	},
	KindBucket: {
		Kind:       KindBucket,
		GVR:        schema.GroupVersionResource{Group: SourceGroup, Version: "v1", Resource: "buckets"},
		Category:   CategorySource,
		Namespaced: true,
		FluxCLI:    []string{"source", "bucket"},
		Origin:     []string{".spec.bucketName"},
	},
	KindHelmChart: {
		Kind:       KindHelmChart,
		GVR:        schema.GroupVersionResource{Group: SourceGroup, Version: "v1", Resource: "helmcharts"},
		Category:   CategorySource,
		Namespaced: true,
		FluxCLI:    []string{"source", "chart"},
		Origin:     []string{".spec.chart"},
	},
	KindKustomization: {
		Kind:       KindKustomization,
		GVR:        schema.GroupVersionResource{Group: KustomizeGroup, Version: "v1", Resource: "kustomizations"},
		Category:   CategoryWorkload,
		Namespaced: true,
		FluxCLI:    []string{"kustomization"},
		Origin:     []string{".spec.path", ".spec.sourceRef.name"},
	},
	KindHelmRelease: {
		Kind:       KindHelmRelease,
		GVR:        schema.GroupVersionResource{Group: HelmGroup, Version: "v2", Resource: "helmreleases"},
		Category:   CategoryWorkload,
		Namespaced: true,
		FluxCLI:    []string{"helmrelease"},
		Origin:     []string{".spec.chart.spec.chart", ".spec.chartRef.name"},
	},
	KindNamespace: {
		Kind:     KindNamespace,
		GVR:      schema.GroupVersionResource{Version: "v1", Resource: "namespaces"},
		Category: CategoryNamespace,
	},
	KindDeployment: {
		Kind:       KindDeployment,
		GVR:        schema.GroupVersionResource{Group: "apps", Version: "v1", Resource: "deployments"},
		Namespaced: true,
	},
	KindNode: {
		Kind: KindNode,
		GVR:  schema.GroupVersionResource{Version: "v1", Resource: "nodes"},
	},
	KindPod: {
		Kind:       KindPod,
		GVR:        schema.GroupVersionResource{Version: "v1", Resource: "pods"},
		Namespaced: true,
	},
	KindConfigMap: {
		Kind:       KindConfigMap,
		GVR:        schema.GroupVersionResource{Version: "v1", Resource: "configmaps"},
		Namespaced: true,
	},
}

// SourceKinds lists Flux source kinds in display order
var SourceKinds = []Kind{KindGitRepository, KindOCIRepository, KindHelmRepository, KindHelmChart, KindBucket}

// WorkloadKinds lists Flux workload kinds in display order
var WorkloadKinds = []Kind{KindKustomization, KindHelmRelease}

// Lookup returns the info for a supported kind
func Lookup(kind Kind) (KindInfo, bool) {
	info, ok := kindTable[kind]
	return info, ok
}

// LookupGroupKind finds a supported kind by API group and kind name
func LookupGroupKind(group, kind string) (KindInfo, bool) {
	info, ok := kindTable[Kind(kind)]
	if !ok || info.GVR.Group != group {
		return KindInfo{}, false
	}
	return info, true
}

// IsFluxKind reports whether kind is a Flux source or workload
func IsFluxKind(kind Kind) bool {
	info, ok := kindTable[kind]
	return ok && (info.Category == CategorySource || info.Category == CategoryWorkload)
}

// SupportedKinds returns all kinds in the table
func SupportedKinds() []Kind {
	kinds := make([]Kind, 0, len(kindTable))
	for k := range kindTable {
		kinds = append(kinds, k)
	}
	return kinds
}
