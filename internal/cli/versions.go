package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"
	"sigs.k8s.io/yaml"
)

// Minimum client versions fluxtree is tested against
const (
	MinKubectlVersion = "1.28.0"
	MinFluxVersion    = "2.0.0"
)

// ToolStatus reports whether a CLI dependency is usable
type ToolStatus struct {
	Name      string
	Installed bool
	Version   string
	Minimum   string
	OK        bool
	Err       error
}

type kubectlVersionOutput struct {
	ClientVersion struct {
		GitVersion string `json:"gitVersion"`
	} `json:"clientVersion"`
}

type fluxVersionOutput struct {
	Flux string `json:"flux"`
}

// CheckKubectl runs "kubectl version --client" and compares the result
func CheckKubectl(ctx context.Context, runner Runner, path string) ToolStatus {
	if path == "" {
		path = "kubectl"
	}
	status := ToolStatus{Name: "kubectl", Minimum: MinKubectlVersion}

	res, err := runner.Run(ctx, path, "version", "--client", "-o", "json")
	if err := Check(path+" version", res, err, false); err != nil {
		status.Err = err
		return status
	}
	status.Installed = true

	var out kubectlVersionOutput
	if err := yaml.Unmarshal([]byte(res.Stdout), &out); err != nil {
		status.Err = fmt.Errorf("failed to parse kubectl version: %w", err)
		return status
	}
	return compareVersion(status, out.ClientVersion.GitVersion)
}

// CheckFlux runs "flux version --client" and compares the result
func CheckFlux(ctx context.Context, runner Runner, path string) ToolStatus {
	if path == "" {
		path = "flux"
	}
	status := ToolStatus{Name: "flux", Minimum: MinFluxVersion}

	res, err := runner.Run(ctx, path, "version", "--client", "-o", "json")
	if err := Check(path+" version", res, err, false); err != nil {
		status.Err = err
		return status
	}
	status.Installed = true

	var out fluxVersionOutput
	if err := yaml.Unmarshal([]byte(res.Stdout), &out); err != nil {
		status.Err = fmt.Errorf("failed to parse flux version: %w", err)
		return status
	}
	return compareVersion(status, out.Flux)
}

func compareVersion(status ToolStatus, raw string) ToolStatus {
	status.Version = strings.TrimPrefix(strings.TrimSpace(raw), "v")
	current, err := version.NewVersion(status.Version)
	if err != nil {
		status.Err = fmt.Errorf("invalid %s version %q: %w", status.Name, raw, err)
		return status
	}
	minimum := version.Must(version.NewVersion(status.Minimum))
	status.OK = current.GreaterThanOrEqual(minimum)
	if !status.OK {
		status.Err = fmt.Errorf("%s %s is older than the minimum %s", status.Name, status.Version, status.Minimum)
	}
	return status
}
