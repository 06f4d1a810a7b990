// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// notAvailable replaces build metadata that was not injected at link time.
const notAvailable = "N/A"

// AppBuildInfo carries immutable build-time metadata embedded into the
// server binary.
//
// Values are injected by linker flags during CI/CD, printed on startup and
// served by the version endpoint for release traceability.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo] from the provided build metadata.
// Empty values are reported as "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNotAvailable(buildVersion),
		buildDate:    orNotAvailable(buildDate),
		buildCommit:  orNotAvailable(buildCommit),
	}
}

// BuildVersion returns the semantic version string of the build.
func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

// Versioned reports whether a build version was injected.
func (a AppBuildInfo) Versioned() bool {
	return a.buildVersion != "" && a.buildVersion != notAvailable
}

// BuildDate returns the build timestamp string.
func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

// BuildCommit returns the source-control commit hash used for the build.
func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}

// String renders the metadata the way it is printed on startup.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\n",
		a.BuildVersion(), a.BuildDate(), a.BuildCommit())
}

// AppVersion is the body of the version endpoint.
type AppVersion struct {
	// Version is the configured application version, falling back to the
	// build version when not configured.
	Version string `json:"version"`
	Build   string `json:"build_version"`
	Date    string `json:"build_date"`
	Commit  string `json:"build_commit"`
}

// Version builds the version endpoint view. configured wins over the
// linker-injected version when set.
func (a AppBuildInfo) Version(configured string) AppVersion {
	version := configured
	if version == "" {
		version = a.BuildVersion()
	}
	return AppVersion{
		Version: version,
		Build:   a.BuildVersion(),
		Date:    a.BuildDate(),
		Commit:  a.BuildCommit(),
	}
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
