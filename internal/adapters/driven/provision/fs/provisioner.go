package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/overtone-labs/stagehand/internal/core/domain"
	"github.com/overtone-labs/stagehand/internal/core/ports/driven"
	"github.com/overtone-labs/stagehand/internal/logger"
)

// Ensure Provisioner implements the interface.
var _ driven.TemplateProvisioner = (*Provisioner)(nil)

// Provisioner copies a template bundle into the output directory.
// A project bundle is an ordinary directory tree, so provisioning is a
// recursive copy. An existing destination is replaced, which makes the
// operation idempotent.
type Provisioner struct{}

// New creates a filesystem provisioner.
func New() *Provisioner {
	return &Provisioner{}
}

// Provision copies templatePath to outputDir/name and returns the
// destination path. A leftover destination from an earlier run is
// removed first; partial copies are not cleaned up on failure.
func (p *Provisioner) Provision(ctx context.Context, templatePath, name, outputDir string) (string, error) {
	info, err := os.Stat(templatePath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, templatePath)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a bundle directory", domain.ErrTemplateNotFound, templatePath)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrOutputNotWritable, outputDir, err)
	}

	dest := filepath.Join(outputDir, name)
	if _, err := os.Stat(dest); err == nil {
		logger.Info("Project %s already exists, replacing", dest)
		if err := os.RemoveAll(dest); err != nil {
			return "", fmt.Errorf("%w: removing %s: %v", domain.ErrOutputNotWritable, dest, err)
		}
	}

	logger.Debug("Copying template %s -> %s", templatePath, dest)
	if err := copyTree(ctx, templatePath, dest); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProvisioningFailed, err)
	}
	return dest, nil
}

// copyTree recursively copies src to dst, preserving file modes.
// Symlinks inside a bundle are not expected and are skipped.
func copyTree(ctx context.Context, src, dst string) error {
	return filepath.WalkDir(src, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if entry.IsDir() {
			info, err := entry.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm())
		}
		if !entry.Type().IsRegular() {
			logger.Debug("Skipping non-regular file %s", path)
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
