package datasource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/system"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/table"
)

// Format is a table file encoding.
type Format string

const (
	JSON Format = "json"
	TOML Format = "toml"
	YAML Format = "yaml"
)

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return JSON, nil
	case "toml":
		return TOML, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unknown table format %q (want json, toml or yaml)", s)
	}
}

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("cannot infer table format of %s: no extension", path)
	}
	return ParseFormat(ext)
}

type fileColumn struct {
	Title string `json:"title" toml:"title" yaml:"title"`
	Width string `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	Align string `json:"align,omitempty" toml:"align,omitempty" yaml:"align,omitempty"`
}

type fileRow struct {
	ID    string   `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty"`
	Cells []string `json:"cells" toml:"cells" yaml:"cells"`
}

type fileTable struct {
	Columns []fileColumn `json:"columns" toml:"columns" yaml:"columns"`
	Rows    []fileRow    `json:"rows" toml:"rows" yaml:"rows"`
}

// Decode parses raw bytes in the given format into validated table data.
func Decode(data []byte, format Format) (table.Data, error) {
	var ft fileTable
	var err error
	switch format {
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&ft)
	case TOML:
		_, err = toml.Decode(string(data), &ft)
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&ft)
		if err == io.EOF {
			err = nil
		}
	default:
		return table.Data{}, fmt.Errorf("unknown table format %q", format)
	}
	if err != nil {
		return table.Data{}, errors.DataSourceError("decode", fmt.Errorf("%s: %w", format, err))
	}
	return ft.toData()
}

func (ft fileTable) toData() (table.Data, error) {
	d := table.Data{
		Columns: make([]table.Column, len(ft.Columns)),
		Rows:    make([]table.Row, len(ft.Rows)),
	}
	for i, c := range ft.Columns {
		w, err := table.ParseWidth(c.Width)
		if err != nil {
			return table.Data{}, errors.DataSourceError("decode", fmt.Errorf("column %q: %w", c.Title, err))
		}
		a, err := table.ParseAlign(c.Align)
		if err != nil {
			return table.Data{}, errors.DataSourceError("decode", fmt.Errorf("column %q: %w", c.Title, err))
		}
		d.Columns[i] = table.Column{Title: c.Title, Width: w, Align: a}
	}
	for i, r := range ft.Rows {
		d.Rows[i] = table.Row{ID: r.ID, Cells: r.Cells}
	}
	if err := d.Validate(); err != nil {
		return table.Data{}, err
	}
	return d, nil
}

// Encode writes d in the given format using the file schema.
func Encode(w io.Writer, d table.Data, format Format) error {
	ft := fileTable{
		Columns: make([]fileColumn, len(d.Columns)),
		Rows:    make([]fileRow, len(d.Rows)),
	}
	for i, c := range d.Columns {
		ft.Columns[i] = fileColumn{Title: c.Title, Width: widthString(c.Width)}
		if c.Align != table.Left {
			ft.Columns[i].Align = c.Align.String()
		}
	}
	for i, r := range d.Rows {
		ft.Rows[i] = fileRow{ID: r.ID, Cells: r.Cells}
	}

	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ft)
	case TOML:
		return toml.NewEncoder(w).Encode(ft)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ft); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown table format %q", format)
	}
}

func widthString(p table.WidthPolicy) string {
	switch p.Kind {
	case table.Fixed:
		return fmt.Sprintf("fixed:%d", p.N)
	case table.Flexible:
		if p.Max > 0 {
			return fmt.Sprintf("flex:%d:%d", p.Min, p.Max)
		}
		return fmt.Sprintf("flex:%d", p.Min)
	default:
		return ""
	}
}

// Load reads and decodes a table file. The format comes from the file
// extension.
func Load(path string) (table.Data, error) {
	format, err := FormatOf(path)
	if err != nil {
		return table.Data{}, errors.DataSourceError("load", err)
	}
	return LoadAs(path, format)
}

// LoadAs reads and decodes a table file in an explicit format.
func LoadAs(path string, format Format) (table.Data, error) {
	raw, err := system.DefaultFS().ReadFile(path)
	if err != nil {
		return table.Data{}, errors.DataSourceError("load", err)
	}
	d, err := Decode(raw, format)
	if err != nil {
		return table.Data{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Read decodes a table from r, typically standard input.
func Read(r io.Reader, format Format) (table.Data, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return table.Data{}, errors.DataSourceError("read", err)
	}
	return Decode(raw, format)
}
