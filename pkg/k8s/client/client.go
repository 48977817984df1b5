package client

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// ConnectionError reports that no usable credential source produced a
// working cluster connection. It is fatal for the whole run.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to kubernetes cluster: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Connect establishes the authenticated session every collector shares.
//
// The in-cluster service account is tried first, so the tool works unmodified
// when deployed as a Pod. Outside a cluster it falls back to kubeconfig
// discovery:
//  1. the explicit kubeconfig argument, if non-empty
//  2. the KUBECONFIG environment variable
//  3. ~/.kube/config, if it exists
//
// Both sources failing returns a *ConnectionError carrying both causes.
// The session is read-only from this tool's perspective and never retried.
func Connect(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	config, inClusterErr := rest.InClusterConfig()
	if inClusterErr != nil {
		slog.Debug("not running in-cluster, falling back to kubeconfig",
			slog.String("reason", inClusterErr.Error()))

		var kubeconfigErr error
		config, kubeconfigErr = buildKubeconfig(kubeconfig)
		if kubeconfigErr != nil {
			return nil, nil, &ConnectionError{Err: errors.Join(inClusterErr, kubeconfigErr)}
		}
	}

	// One-shot batch tool: bound each request, keep API server load modest.
	config.Timeout = 30 * time.Second
	config.QPS = 20
	config.Burst = 50

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, &ConnectionError{Err: err}
	}

	return clientset, config, nil
}

// buildKubeconfig resolves and loads a kubeconfig file.
func buildKubeconfig(kubeconfig string) (*rest.Config, error) {
	if kubeconfig == "" {
		kubeconfig = os.Getenv("KUBECONFIG")

		if kubeconfig == "" {
			kubeconfig = filepath.Join(homedir.HomeDir(), ".kube", "config")
			if _, err := os.Stat(kubeconfig); os.IsNotExist(err) {
				return nil, fmt.Errorf("no kubeconfig found at %s", kubeconfig)
			}
		}
	}

	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build kube config from %s: %w", kubeconfig, err)
	}
	return config, nil
}
