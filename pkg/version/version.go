// Package version carries the build-time tool version.
package version

// Version is the tool version, overridden at build time:
//
//	go build -ldflags "-X github.com/k8sinv/kinvctl/pkg/version.Version=v1.2.3"
var Version = "dev"
