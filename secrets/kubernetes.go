package secrets

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
)

var _ Source = &KubernetesSecretProvider{}

// KubernetesSecretProvider reads one key of a Secret object. Names have the
// form "object/key".
type KubernetesSecretProvider struct {
	KubernetesConfig
	client kubernetes.Interface
}

type KubernetesConfig struct {
	Namespace string `yaml:"namespace" mapstructure:"namespace"`
}

func NewKubernetesConfig() KubernetesConfig {
	return KubernetesConfig{
		Namespace: getDefaultNamespace(),
	}
}

func NewKubernetesSecretProviderFromConfig(cfg KubernetesConfig) (*KubernetesSecretProvider, error) {
	k8sConfig, err := rest.InClusterConfig()
	if err != nil {
		return nil, fmt.Errorf("getting in-cluster config: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(k8sConfig)
	if err != nil {
		return nil, fmt.Errorf("creating k8s config: %w", err)
	}

	return NewKubernetesSecretProvider(clientset, cfg.Namespace), nil
}

func NewKubernetesSecretProvider(client kubernetes.Interface, namespace string) *KubernetesSecretProvider {
	if namespace == "" {
		namespace = defaultInstallNamespace
	}

	return &KubernetesSecretProvider{
		KubernetesConfig: KubernetesConfig{
			Namespace: namespace,
		},
		client: client,
	}
}

var kubernetesInvalidKeyCharacters = regexp.MustCompile(`[^-._a-zA-Z0-9/]`)

func (k *KubernetesSecretProvider) GetSecret(name string) (secret []byte, err error) {
	name = kubernetesInvalidKeyCharacters.ReplaceAllLiteralString(name, "_")

	secretParts := strings.Split(name, "/")
	if len(secretParts) != 2 {
		return nil, fmt.Errorf("invalid Kubernetes secret path specified, expected exactly 2 parts but was %d", len(secretParts))
	}

	objName := secretParts[0]
	key := secretParts[1]

	retrieved, err := k.client.CoreV1().Secrets(k.Namespace).Get(context.TODO(), objName, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("k8s: get secret: %w", err)
	}

	secretVal, ok := retrieved.Data[key]
	if !ok {
		return nil, fmt.Errorf("secret could not be found in kubernetes: %s", name)
	}

	return secretVal, nil
}

var defaultInstallNamespace = "default"

func getDefaultNamespace() string {
	contents, err := os.ReadFile("/var/run/secrets/kubernetes.io/serviceaccount/namespace")
	if err != nil {
		return defaultInstallNamespace
	}

	if len(contents) > 0 {
		return strings.TrimSpace(string(contents))
	}

	return defaultInstallNamespace
}
