package resources

import (
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/renato0307/fluxtree/internal/tree"
)

// Flux condition types
const (
	ConditionReady       = "Ready"
	ConditionReconciling = "Reconciling"
	ConditionStalled     = "Stalled"
)

// Conditions decodes status.conditions, skipping malformed entries
func Conditions(u *unstructured.Unstructured) []metav1.Condition {
	raw, found, err := unstructured.NestedSlice(u.Object, "status", "conditions")
	if !found || err != nil {
		return nil
	}

	conditions := make([]metav1.Condition, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		var c metav1.Condition
		if err := runtime.DefaultUnstructuredConverter.FromUnstructured(m, &c); err != nil {
			continue
		}
		conditions = append(conditions, c)
	}
	return conditions
}

// ReadinessOf derives the readiness flags of a Flux object.
//
// Ready=True is ready. Ready=Unknown, Reconciling=True or a missing Ready
// condition is progressing. Anything else (Ready=False, Stalled) is failed.
func ReadinessOf(u *unstructured.Unstructured) tree.Readiness {
	conditions := Conditions(u)
	suspended, _, _ := unstructured.NestedBool(u.Object, "spec", "suspend")

	r := tree.Readiness{Suspended: suspended}

	ready := meta.FindStatusCondition(conditions, ConditionReady)
	if ready != nil {
		r.Message = ready.Message
	}

	switch {
	case meta.IsStatusConditionTrue(conditions, ConditionStalled):
		// stalled objects never recover without a spec change
	case ready != nil && ready.Status == metav1.ConditionTrue:
		r.Ready = true
	case ready == nil,
		ready.Status == metav1.ConditionUnknown,
		meta.IsStatusConditionTrue(conditions, ConditionReconciling):
		r.Progressing = true
	}
	return r
}

// Revision returns the last applied or fetched revision of a Flux object
func Revision(u *unstructured.Unstructured) string {
	if rev, found, _ := unstructured.NestedString(u.Object, "status", "artifact", "revision"); found && rev != "" {
		return rev
	}
	if rev, found, _ := unstructured.NestedString(u.Object, "status", "lastAppliedRevision"); found && rev != "" {
		return rev
	}
	rev, _, _ := unstructured.NestedString(u.Object, "status", "lastAttemptedRevision")
	return rev
}
