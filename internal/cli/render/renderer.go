package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/config"
	"gopkg.in/yaml.v3"
)

type Renderer[T any] interface {
	Render(result T) error
}

// Printer writes results as JSON or YAML when a structured output format is selected
type Printer struct {
	out    io.Writer
	format config.OutputFormat
}

// NewPrinter creates a new printer
func NewPrinter(out io.Writer, format config.OutputFormat) *Printer {
	return &Printer{out: out, format: format}
}

// Structured reports whether results go out as JSON or YAML instead of text
func (p *Printer) Structured() bool {
	return p.format == config.OutputJSON || p.format == config.OutputYAML
}

// Print encodes v in the selected structured format
func (p *Printer) Print(v any) error {
	switch p.format {
	case config.OutputJSON:
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("output format %q is not structured", p.format)
	}
}
