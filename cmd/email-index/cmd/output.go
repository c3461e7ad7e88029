package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/zostay/go-email-index/internal/config"
)

// textWriter is implemented by results that know how to print themselves as
// plain text.
type textWriter interface {
	writeText(w io.Writer) error
}

// render writes v in the configured output format.
func render(w io.Writer, v textWriter) error {
	switch cfg.Output {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case config.OutputText:
		return v.writeText(w)
	default:
		return fmt.Errorf("%w: %q", config.ErrInvalidOutput, cfg.Output)
	}
}
