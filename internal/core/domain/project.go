package domain

import (
	"fmt"
	"strings"
	"time"
)

// ProjectExtension is the bundle extension the host gives its projects.
const ProjectExtension = ".logicx"

// Project represents a provisioned host project on disk.
type Project struct {
	// Name is the human-readable project name (becomes the bundle name).
	Name string

	// Path is the absolute path of the provisioned project bundle.
	Path string

	// TemplatePath is the template the project was copied from.
	TemplatePath string

	// TempoBPM is the intended tempo. Recorded for guidance; the host's
	// tempo widget is not automated.
	TempoBPM int

	// Key is the intended musical key, free text (e.g. "A minor").
	Key string

	// CreatedAt is when provisioning completed.
	CreatedAt time.Time
}

// BundleName returns the on-disk directory name for a project name.
// The extension is not doubled if the name already carries it.
func BundleName(name string) string {
	if strings.HasSuffix(name, ProjectExtension) {
		return name
	}
	return name + ProjectExtension
}

// DisplayName returns the project name with tempo and key when set.
// Used in CLI output and run listings.
func (p *Project) DisplayName() string {
	if p.TempoBPM > 0 && p.Key != "" {
		return fmt.Sprintf("%s (%d BPM, %s)", p.Name, p.TempoBPM, p.Key)
	}
	return p.Name
}
