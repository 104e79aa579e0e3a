package export

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"
	"gopkg.in/yaml.v3"

	"github.com/kraitsura/teal/pkg/tree"
)

// Supported outline formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatMarkdown = "md"
	FormatYAML     = "yaml"
)

// OutlineOptions configures an outline snapshot.
type OutlineOptions struct {
	Path     string
	Format   string // svg, png, md or yaml; inferred from Path when empty
	Title    string
	Elements []tree.Element
}

// Palette shared by the image formats.
const (
	colorBg      = "#282A36"
	colorText    = "#F8F8F2"
	colorMuted   = "#6272A4"
	colorDone    = "#50FA7B"
	colorPending = "#BD93F9"
	colorTitle   = "#8BE9FD"
)

// Layout in pixels.
const (
	marginX     = 24.0
	marginTop   = 48.0
	rowHeight   = 24.0
	indentWidth = 28.0
	nodeRadius  = 5.0
	charWidth   = 7.0
	minWidth    = 320.0
)

// SaveOutline writes the flattened tree to opts.Path in the requested format.
func SaveOutline(opts OutlineOptions) error {
	format, err := resolveFormat(opts.Path, opts.Format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(opts.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if format == FormatPNG {
		return writePNG(opts)
	}

	f, err := os.Create(opts.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.Path, err)
	}
	w := bufio.NewWriter(f)
	switch format {
	case FormatSVG:
		writeSVG(w, opts)
	case FormatMarkdown:
		err = WriteMarkdown(w, opts.Title, opts.Elements)
	case FormatYAML:
		err = WriteYAML(w, opts.Elements)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func resolveFormat(path, format string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch strings.ToLower(format) {
	case FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	case FormatMarkdown, "markdown":
		return FormatMarkdown, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported outline format %q (use svg, png, md or yaml)", format)
}

// row is the drawing position of one element.
type row struct {
	x, y    float64
	parentY float64
	parentX float64
	label   string
	done    bool
	child   bool
}

func layout(elems []tree.Element) ([]row, float64, float64) {
	rows := make([]row, len(elems))
	byID := make(map[int64]int, len(elems))
	width := minWidth
	for i, e := range elems {
		r := row{
			x:     marginX + float64(e.Depth)*indentWidth + nodeRadius,
			y:     marginTop + float64(i)*rowHeight,
			label: e.Number() + "  " + e.Task.Description,
			done:  e.Task.Complete,
		}
		if pid, ok := e.ParentID(); ok {
			if pi, found := byID[pid]; found {
				r.child = true
				r.parentX = rows[pi].x
				r.parentY = rows[pi].y
			}
		}
		rows[i] = r
		byID[e.Task.ID] = i
		if w := r.x + 2*nodeRadius + float64(len(r.label))*charWidth + marginX; w > width {
			width = w
		}
	}
	height := marginTop + float64(len(elems))*rowHeight + marginX
	return rows, width, height
}

func nodeColor(done bool) string {
	if done {
		return colorDone
	}
	return colorPending
}

// px rounds a layout coordinate to the integer pixels svgo draws with.
func px(v float64) int {
	return int(math.Round(v))
}

func writeSVG(w io.Writer, opts OutlineOptions) {
	rows, width, height := layout(opts.Elements)

	canvas := svg.New(w)
	canvas.Start(px(width), px(height))
	if opts.Title != "" {
		canvas.Title(opts.Title)
	}
	canvas.Rect(0, 0, px(width), px(height), "fill:"+colorBg)
	canvas.Text(marginX, marginTop/2+4, opts.Title, "fill:"+colorTitle+";font-family:monospace;font-size:14px;font-weight:bold")

	for _, r := range rows {
		if r.child {
			// Elbow from the parent's node down and across to this one.
			canvas.Line(px(r.parentX), px(r.parentY), px(r.parentX), px(r.y), "stroke:"+colorMuted+";stroke-width:1")
			canvas.Line(px(r.parentX), px(r.y), px(r.x-nodeRadius), px(r.y), "stroke:"+colorMuted+";stroke-width:1")
		}
	}
	for _, r := range rows {
		canvas.Circle(px(r.x), px(r.y), nodeRadius, "fill:"+nodeColor(r.done))
		canvas.Text(px(r.x+2*nodeRadius), px(r.y+4), r.label, "fill:"+colorText+";font-family:monospace;font-size:12px")
	}
	canvas.End()
}

func writePNG(opts OutlineOptions) error {
	rows, width, height := layout(opts.Elements)

	dc := gg.NewContext(int(width), int(height))
	dc.SetHexColor(colorBg)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	if opts.Title != "" {
		dc.SetHexColor(colorTitle)
		dc.DrawString(opts.Title, marginX, marginTop/2+4)
	}

	dc.SetHexColor(colorMuted)
	dc.SetLineWidth(1)
	for _, r := range rows {
		if r.child {
			dc.DrawLine(r.parentX, r.parentY, r.parentX, r.y)
			dc.DrawLine(r.parentX, r.y, r.x-nodeRadius, r.y)
			dc.Stroke()
		}
	}
	for _, r := range rows {
		dc.SetHexColor(nodeColor(r.done))
		dc.DrawCircle(r.x, r.y, nodeRadius)
		dc.Fill()
		dc.SetHexColor(colorText)
		dc.DrawString(r.label, r.x+2*nodeRadius, r.y+4)
	}
	return dc.SavePNG(opts.Path)
}

// WriteMarkdown renders the outline as a nested checklist.
func WriteMarkdown(w io.Writer, title string, elems []tree.Element) error {
	if title != "" {
		if _, err := fmt.Fprintf(w, "# %s\n\n", title); err != nil {
			return err
		}
	}
	for _, e := range elems {
		box := " "
		if e.Task.Complete {
			box = "x"
		}
		if _, err := fmt.Fprintf(w, "%s- [%s] %s %s\n", strings.Repeat("  ", e.Depth), box, e.Number(), e.Task.Description); err != nil {
			return err
		}
	}
	return nil
}

// OutlineNode is the nested form written by WriteYAML.
type OutlineNode struct {
	ID          int64          `yaml:"id"`
	Number      string         `yaml:"number"`
	Description string         `yaml:"description"`
	Complete    bool           `yaml:"complete"`
	Children    []*OutlineNode `yaml:"children,omitempty"`
}

// Nest rebuilds the nesting of a pre-order element sequence.
func Nest(elems []tree.Element) []*OutlineNode {
	var roots []*OutlineNode
	var stack []*OutlineNode
	for _, e := range elems {
		n := &OutlineNode{
			ID:          e.Task.ID,
			Number:      e.Number(),
			Description: e.Task.Description,
			Complete:    e.Task.Complete,
		}
		if len(stack) > e.Depth {
			stack = stack[:e.Depth]
		}
		if len(stack) == 0 {
			roots = append(roots, n)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
		}
		stack = append(stack, n)
	}
	return roots
}

// WriteYAML renders the outline as nested YAML.
func WriteYAML(w io.Writer, elems []tree.Element) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Nest(elems)); err != nil {
		return fmt.Errorf("encode outline: %w", err)
	}
	return enc.Close()
}
