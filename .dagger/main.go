// Streamchat CI/CD
//
// Package main provides reproducible tests and builds locally and in GitHub
// actions.
package main

import (
	"context"

	"dagger/streamchat/internal/dagger"
)

// Streamchat is the main module for the streamchat CI/CD pipeline
type Streamchat struct {
	// Project source directory
	//
	// +private
	Source *dagger.Directory
}

// New creates a new Streamchat CI/CD module instance
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".direnv", "build", "tmp", ".streamchat"]
	source *dagger.Directory,
) *Streamchat {
	return &Streamchat{
		Source: source,
	}
}

// goContainer returns an Alpine Go container with the module caches and the
// project source mounted. streamchat is pure Go, so CGO stays off.
func (s *Streamchat) goContainer() *dagger.Container {
	return dag.Container().
		From("golang:1.25-alpine").
		WithEnvVariable("CGO_ENABLED", "0").
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithWorkdir("/src").
		WithDirectory("/src", s.Source)
}

// Test runs the streamchat unit tests via "go test"
func (s *Streamchat) Test(ctx context.Context) (string, error) {
	return s.goContainer().
		WithExec([]string{"go", "test", "./..."}).
		Stdout(ctx)
}
