package k8s

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/client-go/util/jsonpath"

	"github.com/renato0307/fluxtree/internal/resources"
)

// EvaluateJSONPath returns the first value matched by expr in u, or "".
// Expressions may be given bare (".spec.url") or braced ("{.spec.url}").
// Missing fields and invalid expressions both yield "".
func EvaluateJSONPath(u *unstructured.Unstructured, expr string) string {
	if u == nil || expr == "" {
		return ""
	}
	if !strings.HasPrefix(expr, "{") {
		expr = "{" + expr + "}"
	}

	jp := jsonpath.New("origin")
	jp.AllowMissingKeys(true)
	if err := jp.Parse(expr); err != nil {
		return ""
	}

	results, err := jp.FindResults(u.Object)
	if err != nil || len(results) == 0 || len(results[0]) == 0 {
		return ""
	}

	first := results[0][0]
	if !first.IsValid() || !first.CanInterface() {
		return ""
	}

	switch v := first.Interface().(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "True"
		}
		return "False"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Origin describes where a Flux object takes its content from, using the
// kind's origin expressions in order until one matches
func Origin(u *unstructured.Unstructured) string {
	if u == nil {
		return ""
	}
	info, ok := resources.Lookup(resources.Kind(u.GetKind()))
	if !ok {
		return ""
	}
	for _, expr := range info.Origin {
		if v := EvaluateJSONPath(u, expr); v != "" {
			return v
		}
	}
	return ""
}
