package k8s

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/cli-runtime/pkg/printers"
	"k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/yaml"

	"github.com/renato0307/fluxtree/internal/resources"
)

// FormatYAML renders an object the way `kubectl get -o yaml` does
func FormatYAML(obj *unstructured.Unstructured) (string, error) {
	if obj == nil {
		return "", fmt.Errorf("no object to render")
	}

	printer := printers.NewTypeSetter(scheme.Scheme).ToPrinter(&printers.YAMLPrinter{})

	var buf bytes.Buffer
	if err := printer.PrintObj(obj, &buf); err != nil {
		return "", fmt.Errorf("failed to print YAML: %w", err)
	}
	return buf.String(), nil
}

// Describe returns a kubectl-describe style summary of obj with its
// conditions and recent events
func (c *Client) Describe(ctx context.Context, obj *unstructured.Unstructured) (string, error) {
	if obj == nil {
		return "", fmt.Errorf("no object to describe")
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Name:         %s\n", obj.GetName())
	if ns := obj.GetNamespace(); ns != "" {
		fmt.Fprintf(&buf, "Namespace:    %s\n", ns)
	}
	fmt.Fprintf(&buf, "Kind:         %s\n", obj.GetKind())
	fmt.Fprintf(&buf, "API Version:  %s\n", obj.GetAPIVersion())

	labels := obj.GetLabels()
	if len(labels) > 0 {
		keys := make([]string, 0, len(labels))
		for k := range labels {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteString("Labels:       ")
		for i, k := range keys {
			if i > 0 {
				buf.WriteString("              ")
			}
			fmt.Fprintf(&buf, "%s=%s\n", k, labels[k])
		}
	}

	fmt.Fprintf(&buf, "Created:      %s\n", obj.GetCreationTimestamp().String())

	if origin := Origin(obj); origin != "" {
		fmt.Fprintf(&buf, "Origin:       %s\n", origin)
	}
	if rev := resources.Revision(obj); rev != "" {
		fmt.Fprintf(&buf, "Revision:     %s\n", rev)
	}

	if conds := resources.Conditions(obj); len(conds) > 0 {
		buf.WriteString("\nConditions:\n")
		for _, cond := range conds {
			fmt.Fprintf(&buf, "  %-12s %-8s %s\n", cond.Type, cond.Status, cond.Message)
		}
	}

	status, found, err := unstructured.NestedFieldCopy(obj.Object, "status")
	if found && err == nil {
		if statusYAML, err := yaml.Marshal(status); err == nil {
			buf.WriteString("\nStatus:\n")
			for _, line := range strings.Split(string(statusYAML), "\n") {
				if line != "" {
					buf.WriteString("  " + line + "\n")
				}
			}
		}
	}

	// Events are fetched on demand, never cached
	buf.WriteString("\nEvents:\n")
	events, err := c.Events(ctx, obj.GetNamespace(), obj.GetName(), string(obj.GetUID()))
	if err != nil {
		fmt.Fprintf(&buf, "  Failed to fetch events: %v\n", err)
	} else {
		buf.WriteString(formatEvents(events, time.Now()))
	}

	return buf.String(), nil
}

// formatEvents formats events in kubectl describe style
func formatEvents(events []corev1.Event, now time.Time) string {
	if len(events) == 0 {
		return "  <none>\n"
	}

	var buf bytes.Buffer
	buf.WriteString("  Type    Reason    Age                    Message\n")
	buf.WriteString("  ----    ------    ---                    -------\n")

	for _, event := range events {
		age := "<unknown>"
		if t := eventTime(event); !t.IsZero() {
			age = formatEventAge(now.Sub(t))
		}

		message := event.Message
		if len(message) > 80 {
			message = message[:77] + "..."
		}

		fmt.Fprintf(&buf, "  %-7s %-9s %-22s %s\n", event.Type, event.Reason, age, message)
	}

	return buf.String()
}
