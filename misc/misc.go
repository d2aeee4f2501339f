// Package misc keeps build time information about the program.
package misc

// set by linker: -ldflags "-X jahia2wp/misc.version=... -X jahia2wp/misc.gitHash=..."
var (
	version = "dev"
	gitHash = "unknown"
)

const appName = "jahia2wp"

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns git commit hash the program was built from.
func GetGitHash() string {
	return gitHash
}

// GetAppName returns program name used for logs, reports and temporary files.
func GetAppName() string {
	return appName
}
