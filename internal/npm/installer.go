package npm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// maxConcurrentResolves bounds the version-lookup fan-out.
const maxConcurrentResolves = 8

// ResolvedDependency pairs a package name with its looked-up version.
// An empty Version means resolution failed and the bare name is passed
// to npm, which then picks the latest itself.
type ResolvedDependency struct {
	Name    string
	Version string
}

// Spec returns the name@version install argument, or the bare name when
// no version was resolved.
func (d ResolvedDependency) Spec() string {
	if d.Version == "" {
		return d.Name
	}
	return d.Name + "@" + d.Version
}

// InstallError indicates the npm install command exited non-zero.
type InstallError struct {
	Dev    bool
	Output string
	Err    error
}

// Error implements the error interface.
func (e *InstallError) Error() string {
	kind := "dependencies"
	if e.Dev {
		kind = "dev dependencies"
	}
	return fmt.Sprintf("npm: install %s: %v", kind, e.Err)
}

// Unwrap returns the underlying exec error.
func (e *InstallError) Unwrap() error {
	return e.Err
}

// Installer resolves package versions and invokes the npm CLI.
type Installer struct {
	resolver Resolver
	runner   Runner
	npmBin   string
	logger   *slog.Logger
}

// NewInstaller creates an Installer. An empty npmBin defaults to "npm";
// a nil logger discards output.
func NewInstaller(resolver Resolver, runner Runner, npmBin string, logger *slog.Logger) *Installer {
	if npmBin == "" {
		npmBin = "npm"
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Installer{
		resolver: resolver,
		runner:   runner,
		npmBin:   npmBin,
		logger:   logger,
	}
}

// ResolveAll resolves every name concurrently with a bounded fan-out.
// Each name resolves into its own result slot, so no locking is needed.
// Individual failures are logged and yield an absent version; they never
// abort the batch. Results come back in input order.
func (i *Installer) ResolveAll(ctx context.Context, names []string) []ResolvedDependency {
	if len(names) == 0 {
		return nil
	}

	results := make([]ResolvedDependency, len(names))
	sem := make(chan struct{}, maxConcurrentResolves)
	var wg sync.WaitGroup

	for idx, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			version, err := i.resolver.Resolve(ctx, name)
			if err != nil {
				i.logger.Warn("version resolution failed, installing without pin",
					"package", name,
					"error", err,
				)
				results[idx] = ResolvedDependency{Name: name}
				return
			}
			results[idx] = ResolvedDependency{Name: name, Version: version}
		}()
	}

	wg.Wait()
	return results
}

// Install resolves versions for names and runs one npm install command
// scoped to dir. With dev set, packages are installed as dev
// dependencies. The install is not retried and generated files are
// never rolled back on failure.
func (i *Installer) Install(ctx context.Context, names []string, dir string, dev bool) error {
	if len(names) == 0 {
		return nil
	}

	resolved := i.ResolveAll(ctx, names)

	args := []string{"install"}
	if dev {
		args = append(args, "--save-dev")
	}
	for _, dep := range resolved {
		args = append(args, dep.Spec())
	}

	i.logger.Info("installing packages",
		"dir", dir,
		"dev", dev,
		"count", len(resolved),
	)

	output, err := i.runner.Run(ctx, dir, i.npmBin, args...)
	if err != nil {
		return &InstallError{Dev: dev, Output: strings.TrimSpace(output), Err: err}
	}
	return nil
}
