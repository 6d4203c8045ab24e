// Package prerequisites provides utilities for checking required client tools.
// The host key bootstrap workflow soft-skips when tooling is missing, so the
// results distinguish "missing" from "too old" and never abort on their own.
package prerequisites

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// MinMajorVersion is the minimum accepted major version. Zero means
	// any version is accepted.
	MinMajorVersion int

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// BootstrapTools returns the tools the connector bootstrap workflow expects
// on the execution host.
func BootstrapTools() []Tool {
	return []Tool{
		{
			Name:            "aws",
			MinMajorVersion: 2,
			Required:        true,
			Description:     "AWS CLI, used to inspect Transfer Family resources alongside this tool",
			InstallURL:      "https://docs.aws.amazon.com/cli/latest/userguide/getting-started-install.html",
		},
		{
			Name:        "jq",
			Required:    true,
			Description: "JSON processor, used by surrounding provisioning scripts",
			InstallURL:  "https://jqlang.github.io/jq/download/",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing or too old.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// MissingNames returns display names of missing required tools, suitable for
// a skip notice.
func (r *CheckResults) MissingNames() []string {
	var names []string
	for _, tool := range r.Missing {
		if !tool.Required {
			continue
		}
		if tool.MinMajorVersion > 0 {
			names = append(names, fmt.Sprintf("%s (>= %d.x)", tool.Name, tool.MinMajorVersion))
		} else {
			names = append(names, tool.Name)
		}
	}
	return names
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available and recent enough.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err != nil {
			results.Missing = append(results.Missing, tool)
			results.Results = append(results.Results, result)
			continue
		}

		result.Found = true
		result.Path = path
		result.Version = getToolVersion(tool.Name)

		if tool.MinMajorVersion > 0 && !meetsMajorVersion(result.Version, tool.MinMajorVersion) {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckBootstrap checks the tools required by the bootstrap workflow.
func CheckBootstrap() *CheckResults {
	return Check(BootstrapTools())
}

// versionRe matches the first dotted version number in a version banner,
// e.g. "aws-cli/2.15.30 Python/3.11.8 ...".
var versionRe = regexp.MustCompile(`(\d+)\.\d+(?:\.\d+)?`)

// meetsMajorVersion reports whether the version banner carries a major
// version of at least min. An unparseable banner counts as not meeting the
// minimum.
func meetsMajorVersion(banner string, min int) bool {
	m := versionRe.FindStringSubmatch(banner)
	if m == nil {
		return false
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return false
	}
	return major >= min
}

// getToolVersion attempts to get the version of a tool.
// Returns empty string if version cannot be determined.
func getToolVersion(name string) string {
	// Common version flags to try
	versionFlags := []string{"--version", "version", "-v"}

	for _, flag := range versionFlags {
		// #nosec G204 - name comes from trusted Tool definitions, not user input
		cmd := exec.Command(name, flag)
		output, err := cmd.CombinedOutput()
		if err == nil {
			// Return first line of output, trimmed
			lines := strings.Split(string(output), "\n")
			if len(lines) > 0 {
				return strings.TrimSpace(lines[0])
			}
		}
	}

	return ""
}
