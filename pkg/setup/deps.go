package setup

import (
	"github.com/hashicorp/go-hclog"
)

// SystemDependency describes one required external tool together with the
// package names that provide it. Most platforms ship the tool under a
// single package; the overrides below handle the rest.
type SystemDependency struct {
	Tool     string
	Packages []string
}

// The tools the pipeline shells out to, probed in order. Verification is a
// pure read-only check: nothing here ever installs anything.
var systemDependencies = []SystemDependency{
	{Tool: "git", Packages: []string{"git"}},
	{Tool: "python3", Packages: []string{"python3"}},
	{Tool: "uv", Packages: []string{"uv"}},
	{Tool: "openssl", Packages: []string{"openssl"}},
}

type remediationKey struct {
	family OSFamily
	distro Distro
}

// installCommandPrefix maps a platform to its package-manager invocation.
// Windows is absent: winget wants per-tool package IDs, see
// windowsInstallCommands.
var installCommandPrefix = map[remediationKey]string{
	{FamilyLinux, DistroArch}:    "sudo pacman -S ",
	{FamilyLinux, DistroDebian}:  "sudo apt install ",
	{FamilyLinux, DistroFedora}:  "sudo dnf install ",
	{FamilyLinux, DistroAlpine}:  "apk add ",
	{FamilyLinux, DistroAndroid}: "pkg install ",
	{FamilyMacOS, DistroNone}:    "brew install ",
}

var windowsInstallCommands = map[string]string{
	"git":     "winget install --id Git.Git -e",
	"openssl": "winget install --id ShiningLight.OpenSSL -e",
	"python3": "winget install --id Python.Python.3.12 -e",
}

// packageNameOverrides renames packages on platforms where the tool name
// and the package name diverge.
var packageNameOverrides = map[remediationKey]map[string][]string{
	{FamilyLinux, DistroArch}:    {"python3": {"python"}},
	{FamilyLinux, DistroAndroid}: {"openssl": {"openssl", "openssl-tool"}, "git": {"git", "openssh"}},
	{FamilyMacOS, DistroNone}:    {"python3": {"python@3.12"}},
}

// uv is installed through pip on every platform.
const uvRemediation = "pip install --user uv  # or pipx install uv"

const manualRemediation = "install manually"

// VerifyDependencies probes each required tool on the search path and
// returns the names of those missing, in probe order.
func VerifyDependencies(runner Runner, logger hclog.Logger) []string {
	var missing []string
	for _, dep := range systemDependencies {
		if _, err := runner.LookPath(dep.Tool); err != nil {
			logger.Debug("🔍 Tool not found", "tool", dep.Tool)
			missing = append(missing, dep.Tool)
			continue
		}
		logger.Debug("🔍 Tool found", "tool", dep.Tool)
	}
	return missing
}

// RemediationLines renders the install guidance for a missing tool on the
// given platform, one line per package. Unknown platforms degrade to
// "install manually".
func RemediationLines(tool string, plat Platform) []string {
	if tool == "uv" {
		return []string{"uv: " + uvRemediation}
	}

	if plat.Family == FamilyWindows {
		if cmd, ok := windowsInstallCommands[tool]; ok {
			return []string{tool + ": " + cmd}
		}
		return []string{tool + ": " + manualRemediation}
	}

	key := remediationKey{plat.Family, plat.Distro}
	prefix, ok := installCommandPrefix[key]
	if !ok {
		return []string{tool + ": " + manualRemediation}
	}

	packages := packagesFor(tool, key)
	lines := make([]string, 0, len(packages))
	for _, pkg := range packages {
		lines = append(lines, tool+": "+prefix+pkg)
	}
	return lines
}

func packagesFor(tool string, key remediationKey) []string {
	if overrides, ok := packageNameOverrides[key]; ok {
		if packages, ok := overrides[tool]; ok {
			return packages
		}
	}
	for _, dep := range systemDependencies {
		if dep.Tool == tool {
			return dep.Packages
		}
	}
	return []string{tool}
}
