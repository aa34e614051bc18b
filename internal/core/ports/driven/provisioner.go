package driven

import "context"

// TemplateProvisioner copies a template project to a new output path.
// A pre-existing destination is removed before copying - a destructive
// replace, never a merge - which makes provisioning idempotent with
// respect to repeated invocation under the same name.
type TemplateProvisioner interface {
	// Provision copies templatePath into outputDir under name and
	// returns the final project path. The output directory is created
	// if absent. Errors are domain.ErrTemplateNotFound,
	// domain.ErrOutputNotWritable or domain.ErrProvisioningFailed,
	// wrapped with filesystem detail.
	Provision(ctx context.Context, templatePath, name, outputDir string) (string, error)
}
