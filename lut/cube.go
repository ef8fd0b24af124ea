package lut

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// WriteCube writes l to path in the .cube text format: TITLE (only if
// title is non-empty), DOMAIN_MIN, DOMAIN_MAX, LUT_3D_SIZE, then one line
// per cell of "r g b" in canonical x-fastest order.
func WriteCube(path string, l *Lut3D, title string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("lut: create %q: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if title != "" {
		fmt.Fprintf(w, "TITLE %q\n", title)
	}
	fmt.Fprintf(w, "DOMAIN_MIN %.6g %.6g %.6g\n", l.DomainMin[0], l.DomainMin[1], l.DomainMin[2])
	fmt.Fprintf(w, "DOMAIN_MAX %.6g %.6g %.6g\n", l.DomainMax[0], l.DomainMax[1], l.DomainMax[2])
	fmt.Fprintf(w, "LUT_3D_SIZE %d\n", l.Size)

	for k := 0; k < l.Size; k++ {
		for j := 0; j < l.Size; j++ {
			for i := 0; i < l.Size; i++ {
				c := l.Data[cellIndex(l.Size, i, j, k)]
				fmt.Fprintf(w, "%.6g %.6g %.6g\n", c[0], c[1], c[2])
			}
		}
	}

	return w.Flush()
}

// ReadCube parses a .cube file. Parsing is lenient: blank lines and '#'
// comments are skipped, directives may appear in any order, TITLE is
// optional. LUT_3D_SIZE must appear before the first data line.
func ReadCube(path string) (*Lut3D, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lut: open %q: %w", path, err)
	}
	defer f.Close()

	// .cube files exported by some grading tools carry a UTF-8 BOM; strip
	// it transparently rather than rejecting the directive line it would
	// otherwise corrupt.
	bomAware := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	r := transform.NewReader(f, bomAware)

	return parseCube(r, path)
}

func parseCube(r io.Reader, path string) (*Lut3D, error) {
	l := &Lut3D{
		DomainMin: [3]float32{0, 0, 0},
		DomainMax: [3]float32{1, 1, 1},
	}
	size := -1
	var cells [][4]float32

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "TITLE"):
			// Title is not retained on Lut3D; only its presence is parsed.
			continue
		case strings.HasPrefix(line, "DOMAIN_MIN"):
			v, err := parseFloat3(line, "DOMAIN_MIN")
			if err != nil {
				return nil, fmt.Errorf("lut: %s:%d: %w", path, lineNo, err)
			}
			l.DomainMin = v
		case strings.HasPrefix(line, "DOMAIN_MAX"):
			v, err := parseFloat3(line, "DOMAIN_MAX")
			if err != nil {
				return nil, fmt.Errorf("lut: %s:%d: %w", path, lineNo, err)
			}
			l.DomainMax = v
		case strings.HasPrefix(line, "LUT_3D_SIZE"):
			fields := strings.Fields(line)
			if len(fields) != 2 {
				return nil, fmt.Errorf("lut: %s:%d: malformed LUT_3D_SIZE", path, lineNo)
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("lut: %s:%d: bad LUT_3D_SIZE: %w", path, lineNo, err)
			}
			size = n
			cells = make([][4]float32, 0, n*n*n)
		default:
			if size < 0 {
				return nil, fmt.Errorf("lut: %s:%d: data line before LUT_3D_SIZE", path, lineNo)
			}
			fields := strings.Fields(line)
			if len(fields) != 3 {
				return nil, fmt.Errorf("lut: %s:%d: expected 3 floats, got %d", path, lineNo, len(fields))
			}
			var rgb [3]float32
			for i, f := range fields {
				v, err := strconv.ParseFloat(f, 32)
				if err != nil {
					return nil, fmt.Errorf("lut: %s:%d: bad float %q: %w", path, lineNo, f, err)
				}
				rgb[i] = float32(v)
			}
			cells = append(cells, [4]float32{rgb[0], rgb[1], rgb[2], 1})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("lut: %s: %w", path, err)
	}

	if size < 0 {
		return nil, fmt.Errorf("lut: %s: missing LUT_3D_SIZE directive", path)
	}
	if want := size * size * size; len(cells) != want {
		return nil, fmt.Errorf("lut: %s: expected %d data lines, got %d", path, want, len(cells))
	}

	l.Size = size
	l.Data = cells
	return l, nil
}

func parseFloat3(line, directive string) ([3]float32, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return [3]float32{}, fmt.Errorf("malformed %s", directive)
	}
	var out [3]float32
	for i, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return [3]float32{}, fmt.Errorf("bad %s component %q: %w", directive, f, err)
		}
		out[i] = float32(v)
	}
	return out, nil
}
