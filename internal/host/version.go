package host

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// VersionRequirement is the oldest compiler the linter supports.
const VersionRequirement = ">= 4.0"

var versionRE = regexp.MustCompile(`(?P<version>\d+\.\d+\.\d+)`)

// VersionError reports a compiler older than VersionRequirement.
type VersionError struct {
	Executable string
	Found      string
	Required   string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%s %s does not satisfy %s", e.Executable, e.Found, e.Required)
}

// ParseVersion extracts the first x.y.z version from --version output.
func ParseVersion(output string) (*semver.Version, error) {
	m := versionRE.FindString(output)
	if m == "" {
		return nil, fmt.Errorf("no version found in %q", firstLine(output))
	}
	v, err := semver.NewVersion(m)
	if err != nil {
		return nil, fmt.Errorf("failed to parse version %q: %w", m, err)
	}
	return v, nil
}

// CheckVersionOutput parses --version output of executable and checks it
// against VersionRequirement.
func CheckVersionOutput(executable, output string) (*semver.Version, error) {
	v, err := ParseVersion(output)
	if err != nil {
		return nil, err
	}

	c, err := semver.NewConstraint(VersionRequirement)
	if err != nil {
		return nil, fmt.Errorf("failed to parse constraint: %w", err)
	}
	if !c.Check(v) {
		return v, &VersionError{Executable: executable, Found: v.String(), Required: VersionRequirement}
	}
	return v, nil
}

// CheckVersion runs "executable --version" and checks the result.
func CheckVersion(ctx context.Context, executable string) (*semver.Version, error) {
	path, err := LookPath(executable)
	if err != nil {
		return nil, err
	}

	out, err := exec.CommandContext(ctx, path, "--version").CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("failed to run %s --version: %w", executable, err)
	}
	return CheckVersionOutput(executable, string(out))
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
