package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/dqgate/pkg/defaults"
	"github.com/NVIDIA/dqgate/pkg/k8s/client"
)

const (
	configMapManagedByLabel = "app.kubernetes.io/managed-by"
	configMapManagedBy      = "dqgate"
	configMapComponentLabel = "app.kubernetes.io/component"
	configMapComponent      = "validation-report"
)

// ConfigMapWriter stores documents in a Kubernetes ConfigMap, creating it
// when it does not exist.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
	client    kubernetes.Interface
}

// ConfigMapOption configures a ConfigMapWriter.
type ConfigMapOption func(*ConfigMapWriter)

// WithKubeClient sets the client used instead of the ambient kubeconfig.
func WithKubeClient(c kubernetes.Interface) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.client = c
	}
}

// NewConfigMapWriter returns a writer for the ConfigMap namespace/name.
func NewConfigMapWriter(namespace, name string, format Format, opts ...ConfigMapOption) *ConfigMapWriter {
	if format.IsUnknown() {
		format = FormatJSON
	}
	w := &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    format,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Serialize stores the encoded document under the "report.<ext>" key.
func (w *ConfigMapWriter) Serialize(ctx context.Context, data any) error {
	b, err := Marshal(w.format, data)
	if err != nil {
		return err
	}

	cs := w.client
	if cs == nil {
		cs, _, err = client.GetKubeClient()
		if err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.K8sOperationTimeout)
	defer cancel()

	key := "report." + w.format.fileExtension()
	cms := cs.CoreV1().ConfigMaps(w.namespace)

	existing, err := cms.Get(ctx, w.name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		cm := &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Name:      w.name,
				Namespace: w.namespace,
				Labels: map[string]string{
					configMapManagedByLabel: configMapManagedBy,
					configMapComponentLabel: configMapComponent,
				},
			},
			Data: map[string]string{key: string(b)},
		}
		if _, err := cms.Create(ctx, cm, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("failed to create ConfigMap %s/%s: %w", w.namespace, w.name, err)
		}
		slog.Debug("configmap created", "namespace", w.namespace, "name", w.name, "key", key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}

	updated := existing.DeepCopy()
	if updated.Data == nil {
		updated.Data = map[string]string{}
	}
	updated.Data[key] = string(b)
	if updated.Labels == nil {
		updated.Labels = map[string]string{}
	}
	updated.Labels[configMapManagedByLabel] = configMapManagedBy
	updated.Labels[configMapComponentLabel] = configMapComponent

	if _, err := cms.Update(ctx, updated, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to update ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	slog.Debug("configmap updated", "namespace", w.namespace, "name", w.name, "key", key)
	return nil
}

// parseConfigMapURI splits cm://namespace/name.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	rest := strings.TrimPrefix(uri, ConfigMapURIScheme)
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q, expected cm://namespace/name", uri)
	}
	return parts[0], parts[1], nil
}
