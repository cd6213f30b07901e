package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dagger/streamchat/internal/dagger"
)

const versionPkg = "github.com/papercomputeco/streamchat/pkg/utils"

var (
	buildOSes   = []string{"linux", "darwin"}
	buildArches = []string{"amd64", "arm64"}
)

// Build returns a directory holding a streamchat binary per OS and arch,
// laid out as <os>/<arch>/streamchat.
func (s *Streamchat) Build(
	ctx context.Context,

	// Linker flags for go build
	// +optional
	// +default="-s -w"
	ldflags string,
) *dagger.Directory {
	outputs := dag.Directory()

	for _, goos := range buildOSes {
		for _, goarch := range buildArches {
			path := fmt.Sprintf("%s/%s/", goos, goarch)

			build := s.goContainer().
				WithEnvVariable("GOOS", goos).
				WithEnvVariable("GOARCH", goarch).
				WithExec([]string{"go", "build", "-ldflags", ldflags, "-o", path, "./cli/streamchat"})

			outputs = outputs.WithDirectory(path, build.Directory(path))
		}
	}

	return outputs
}

// BuildRelease compiles binaries with the version, commit and build time
// stamped into the version command.
func (s *Streamchat) BuildRelease(
	ctx context.Context,

	// Version string of build
	version string,

	// Git commit SHA of build
	commit string,
) *dagger.Directory {
	return s.Build(ctx, releaseLDFlags(version, commit, time.Now().UTC()))
}

func releaseLDFlags(version, commit string, built time.Time) string {
	return strings.Join([]string{
		"-s",
		"-w",
		fmt.Sprintf("-X '%s.Version=%s'", versionPkg, version),
		fmt.Sprintf("-X '%s.Sha=%s'", versionPkg, commit),
		fmt.Sprintf("-X '%s.Buildtime=%s'", versionPkg, built.Format(time.RFC3339)),
	}, " ")
}
