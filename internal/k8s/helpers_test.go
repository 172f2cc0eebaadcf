package k8s

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func object(namespace, name string) unstructured.Unstructured {
	u := unstructured.Unstructured{Object: map[string]any{}}
	u.SetNamespace(namespace)
	u.SetName(name)
	return u
}

func TestSortObjects(t *testing.T) {
	items := []unstructured.Unstructured{
		object("monitoring", "grafana"),
		object("flux-system", "infra"),
		object("", "cluster-wide"),
		object("flux-system", "apps"),
	}

	sortObjects(items)

	var got []string
	for _, u := range items {
		got = append(got, u.GetNamespace()+"/"+u.GetName())
	}
	assert.Equal(t, []string{
		"/cluster-wide",
		"flux-system/apps",
		"flux-system/infra",
		"monitoring/grafana",
	}, got)
}

func TestEventTime(t *testing.T) {
	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	series := created.Add(time.Minute)
	last := created.Add(time.Hour)

	tests := []struct {
		name     string
		event    corev1.Event
		expected time.Time
	}{
		{
			name: "last timestamp wins",
			event: corev1.Event{
				ObjectMeta:    metav1.ObjectMeta{CreationTimestamp: metav1.NewTime(created)},
				EventTime:     metav1.NewMicroTime(series),
				LastTimestamp: metav1.NewTime(last),
			},
			expected: last,
		},
		{
			name: "event time without last timestamp",
			event: corev1.Event{
				ObjectMeta: metav1.ObjectMeta{CreationTimestamp: metav1.NewTime(created)},
				EventTime:  metav1.NewMicroTime(series),
			},
			expected: series,
		},
		{
			name: "creation timestamp as last resort",
			event: corev1.Event{
				ObjectMeta: metav1.ObjectMeta{CreationTimestamp: metav1.NewTime(created)},
			},
			expected: created,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(eventTime(tt.event)))
		})
	}
}
