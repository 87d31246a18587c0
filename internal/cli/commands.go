package cli

import (
	stderrors "errors"
	"fmt"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/mcncl/jsonkit/internal/analyzer"
	"github.com/mcncl/jsonkit/internal/config"
	"github.com/mcncl/jsonkit/internal/converter"
	"github.com/mcncl/jsonkit/internal/differ"
	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mcncl/jsonkit/internal/formatter"
	"github.com/mcncl/jsonkit/internal/generator"
	"github.com/mcncl/jsonkit/internal/models"
	"github.com/mcncl/jsonkit/internal/parser"
	"github.com/mcncl/jsonkit/internal/query"
	"github.com/mcncl/jsonkit/internal/schema"
)

// stdinPath stands for standard input where a command takes file arguments
const stdinPath = "-"

// ValidateCmd reports whether the input is valid JSON
type ValidateCmd struct {
	Value bool `help:"Include the parsed document in the report."`
}

// Run implements the validate command. An invalid document is reported on
// stdout and also returned as an error so the exit status is non-zero.
func (c *ValidateCmd) Run(rt *Runtime) error {
	var invalid error

	err := rt.run("validate", func() (string, error) {
		text, err := rt.readInput()
		if err != nil && !stderrors.Is(err, errors.ErrEmptyInput) && !stderrors.Is(err, errors.ErrFileEmpty) {
			return "", err
		}

		diag := parser.Validate(text)
		if !c.Value {
			diag.Value = nil
		}
		if !diag.Valid {
			rt.Logger.Debug("document is invalid", "class", diag.Class, "offset", diag.Offset)
			invalid = errors.NewParsingError(
				fmt.Sprintf("%s (line %d, column %d)", diag.Message, diag.Line, diag.Column),
				errors.ErrInvalidJSON,
			)
			if diag.Class == models.ErrorClassEmpty {
				invalid = errors.NewInputError(diag.Message, errors.ErrEmptyInput)
			}
		}
		return rt.marshalReport(diag)
	})
	if err != nil {
		return err
	}
	return invalid
}

// StatsCmd prints structural statistics
type StatsCmd struct{}

// Run implements the stats command
func (c *StatsCmd) Run(rt *Runtime) error {
	return rt.run("stats", func() (string, error) {
		v, err := rt.parseInput()
		if err != nil {
			return "", err
		}
		return rt.marshalReport(analyzer.Analyze(v))
	})
}

// DiffCmd compares two documents
type DiffCmd struct {
	Left    string `arg:"" help:"Original JSON file, or - for stdin."`
	Right   string `arg:"" help:"Changed JSON file, or - for stdin."`
	Summary bool   `help:"Print only the number of added, removed and modified entries."`
}

// Run implements the diff command
func (c *DiffCmd) Run(rt *Runtime) error {
	if c.Left == stdinPath && c.Right == stdinPath {
		return errors.NewInputError("only one side of a diff can be read from stdin", errors.ErrInvalidFilePath)
	}

	return rt.run("diff", func() (string, error) {
		left, err := rt.parsePath(c.Left)
		if err != nil {
			return "", err
		}
		right, err := rt.parsePath(c.Right)
		if err != nil {
			return "", err
		}

		entries := differ.Diff(left, right)
		summary := differ.Summarize(entries)
		rt.Logger.Debug("diff computed", "added", summary.Added, "removed", summary.Removed, "modified", summary.Modified)

		if c.Summary {
			return rt.marshalReport(summary)
		}
		return rt.marshalReport(entries)
	})
}

// QueryCmd evaluates a path expression
type QueryCmd struct {
	Expression   string `arg:"" help:"Path expression, e.g. $.store.book[*].title."`
	Paths        bool   `help:"Print the normalized path of each match alongside its value."`
	RequireMatch bool   `help:"Fail when the expression matches nothing." short:"r"`
}

// Run implements the query command
func (c *QueryCmd) Run(rt *Runtime) error {
	return rt.run("query", func() (string, error) {
		v, err := rt.parseInput()
		if err != nil {
			return "", err
		}

		matches := query.Select(v, c.Expression)
		rt.Logger.Debug("query evaluated", "expression", c.Expression, "tokens", query.Tokenize(c.Expression), "matches", len(matches))
		if len(matches) == 0 && c.RequireMatch {
			return "", errors.NewQueryError(fmt.Sprintf("%q matched nothing", c.Expression), nil)
		}

		items := make([]models.Value, len(matches))
		for i, m := range matches {
			if c.Paths {
				items[i] = models.ObjectValue(
					models.Field("path", models.StringValue(m.Path)),
					models.Field("value", m.Value),
				)
			} else {
				items[i] = m.Value
			}
		}
		return rt.formatValue(models.ArrayValue(items...)), nil
	})
}

// SchemaCmd infers a JSON Schema
type SchemaCmd struct {
	Dialect string `help:"Value of the $schema keyword. Overrides schema.dialect."`
	UUID    bool   `name:"uuid" help:"Tag canonical UUID strings with format uuid. Overrides schema.detect_uuid."`
}

// Run implements the schema command
func (c *SchemaCmd) Run(rt *Runtime) error {
	cfg := config.MergeConfigs(rt.Config, config.Overrides{Dialect: c.Dialect, DetectUUID: c.UUID})

	return rt.run("schema", func() (string, error) {
		v, err := rt.parseInput()
		if err != nil {
			return "", err
		}

		doc := schema.InferWithOptions(v, schema.InferOptions{DetectUUID: cfg.Schema.DetectUUID})
		doc.Dialect = cfg.Schema.Dialect
		return rt.formatValue(doc.ToValue()), nil
	})
}

// FormatCmd pretty-prints a document
type FormatCmd struct {
	Indent   int  `help:"Spaces per indentation level: 2, 4 or 8. Overrides format.indent." short:"n"`
	SortKeys bool `help:"Sort object keys at every depth." short:"s"`
}

// Run implements the format command
func (c *FormatCmd) Run(rt *Runtime) error {
	cfg := config.MergeConfigs(rt.Config, config.Overrides{Indent: c.Indent, SortKeys: c.SortKeys})
	f, err := formatter.NewFormatter(formatter.Options{Indent: cfg.Format.Indent, SortKeys: cfg.Format.SortKeys})
	if err != nil {
		return err
	}

	return rt.run("format", func() (string, error) {
		text, err := rt.readInput()
		if err != nil {
			return "", err
		}
		res, err := f.FormatText(text)
		if err != nil {
			return "", err
		}
		rt.logResult("format", res)
		return res.Formatted, nil
	})
}

// MinifyCmd minifies a document
type MinifyCmd struct{}

// Run implements the minify command
func (c *MinifyCmd) Run(rt *Runtime) error {
	return rt.run("minify", func() (string, error) {
		text, err := rt.readInput()
		if err != nil {
			return "", err
		}
		res, err := formatter.MinifyText(text)
		if err != nil {
			return "", err
		}
		rt.logResult("minify", res)
		return res.Formatted, nil
	})
}

// ConvertCmd groups the converters
type ConvertCmd struct {
	CSV  ConvertCSVCmd  `cmd:"" name:"csv" help:"Convert an array of objects, or one object, to CSV."`
	XML  ConvertXMLCmd  `cmd:"" name:"xml" help:"Convert to an XML document."`
	YAML ConvertYAMLCmd `cmd:"" name:"yaml" help:"Convert to block-style YAML."`
	TS   ConvertTSCmd   `cmd:"" name:"ts" aliases:"typescript" help:"Derive a TypeScript interface."`
}

// ConvertCSVCmd converts to CSV
type ConvertCSVCmd struct {
	Delimiter string `help:"Field delimiter. Overrides convert.csv_delimiter."`
}

// Run implements the convert csv command
func (c *ConvertCSVCmd) Run(rt *Runtime) error {
	cfg := config.MergeConfigs(rt.Config, config.Overrides{CSVDelimiter: c.Delimiter})
	if err := cfg.Validate(); err != nil {
		return err
	}

	return rt.run("convert csv", func() (string, error) {
		v, err := rt.parseInput()
		if err != nil {
			return "", err
		}
		out, ok := converter.ToCSV(v, cfg.Delimiter())
		if !ok {
			return "", errors.NewConversionError(out, errors.ErrUnsupportedShape)
		}
		return out, nil
	})
}

// ConvertXMLCmd converts to XML
type ConvertXMLCmd struct {
	Root string `help:"Name of the root element. Overrides convert.xml_root."`
}

// Run implements the convert xml command
func (c *ConvertXMLCmd) Run(rt *Runtime) error {
	cfg := config.MergeConfigs(rt.Config, config.Overrides{XMLRoot: c.Root})

	return rt.run("convert xml", func() (string, error) {
		v, err := rt.parseInput()
		if err != nil {
			return "", err
		}
		return converter.ToXML(v, cfg.Convert.XMLRoot)
	})
}

// ConvertYAMLCmd converts to YAML
type ConvertYAMLCmd struct{}

// Run implements the convert yaml command
func (c *ConvertYAMLCmd) Run(rt *Runtime) error {
	return rt.run("convert yaml", func() (string, error) {
		v, err := rt.parseInput()
		if err != nil {
			return "", err
		}
		return converter.ToYAML(v)
	})
}

// ConvertTSCmd converts to a TypeScript interface
type ConvertTSCmd struct {
	Name string `help:"Interface name. Overrides convert.interface_name."`
}

// Run implements the convert ts command
func (c *ConvertTSCmd) Run(rt *Runtime) error {
	cfg := config.MergeConfigs(rt.Config, config.Overrides{InterfaceName: c.Name})

	return rt.run("convert ts", func() (string, error) {
		v, err := rt.parseInput()
		if err != nil {
			return "", err
		}
		return generator.NewGenerator().GenerateInterface(v, cfg.Convert.InterfaceName), nil
	})
}

// parseInput reads and parses the input document
func (rt *Runtime) parseInput() (models.Value, error) {
	text, err := rt.readInput()
	if err != nil {
		return models.Value{}, err
	}
	return parser.ParseString(text)
}

// parsePath parses a file argument, reading stdin for "-"
func (rt *Runtime) parsePath(path string) (models.Value, error) {
	if path == stdinPath {
		return parser.Parse(rt.stdin)
	}
	return parser.ParseFile(path)
}

// marshalReport renders a report record as indented JSON
func (rt *Runtime) marshalReport(report any) (string, error) {
	data, err := gojson.MarshalIndent(report, "", strings.Repeat(" ", rt.Config.Format.Indent))
	if err != nil {
		return "", errors.NewOutputError("failed to encode report", err)
	}
	return string(data), nil
}

// formatValue renders a document with the configured indent, keeping key order
func (rt *Runtime) formatValue(v models.Value) string {
	return formatter.Format(v, formatter.Options{Indent: rt.Config.Format.Indent})
}

func (rt *Runtime) logResult(command string, res formatter.Result) {
	rt.Logger.Debug("size change",
		"command", command,
		"input_bytes", res.InputBytes,
		"output_bytes", res.OutputBytes,
		"ratio", fmt.Sprintf("%.3f", res.Ratio),
		"saved_percent", fmt.Sprintf("%.1f", res.SavedPercent),
	)
}
