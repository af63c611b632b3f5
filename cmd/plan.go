package cmd

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/deploymenttheory/go-ftlplan/internal/config"
	"github.com/deploymenttheory/go-ftlplan/internal/layout"
	"github.com/deploymenttheory/go-ftlplan/internal/report"
)

// runPlan executes the full planning pipeline: load the device
// description, derive geometry, allocate both mapping tables, and
// render the summary in the requested format.
func runPlan(w io.Writer, configPath, format string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	l, err := layout.New(cfg)
	if err != nil {
		return err
	}

	var renderErr error
	switch format {
	case "text":
		report.Render(w, l)
	case "json":
		renderErr = report.RenderJSON(w, l, uuid.NewString())
	default:
		renderErr = fmt.Errorf("unsupported output format %q (expected text or json)", format)
	}

	if cerr := l.Close(); cerr != nil && renderErr == nil {
		renderErr = cerr
	}
	return renderErr
}
