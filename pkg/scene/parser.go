package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/df07/go-kd-raytracer/pkg/core"
	"github.com/df07/go-kd-raytracer/pkg/material"
)

// block is the statement that indented lines attach to
type block int

const (
	blockNone block = iota
	blockSurface
	blockPolygon
)

// Parser reads the line-oriented .ray scene format
type Parser struct {
	scene *Scene
	line  int

	block   block
	surface *material.Surface

	// pending polygon, completed when its block ends
	polySurface string
	polyCoords  []float64
	polyLine    int
}

// NewParser creates a parser that fills a new scene with the given name
func NewParser(name string) *Parser {
	return &Parser{scene: New(name)}
}

// Parse reads a scene description from r
func Parse(name string, r io.Reader) (*Scene, error) {
	parser := NewParser(name)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := parser.processLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading scene: %w", err)
	}

	if err := parser.finalize(); err != nil {
		return nil, err
	}
	return parser.scene, nil
}

// Load parses a .ray file; the scene is named after the file
func Load(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	sc, err := Parse(name, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// errorf reports a parse error at the current line
func (p *Parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: line %d: %s", ErrParse, p.line, fmt.Sprintf(format, args...))
}

// processLine handles one line of input
func (p *Parser) processLine(raw string) error {
	p.line++

	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil
	}

	// Indented lines continue the current block
	if unicode.IsSpace(rune(raw[0])) && p.block != blockNone {
		return p.processBlockLine(fields)
	}

	if err := p.endBlock(); err != nil {
		return err
	}
	return p.processStatement(fields[0], fields[1:])
}

// processStatement handles a top-level keyword
func (p *Parser) processStatement(keyword string, args []string) error {
	sc := p.scene

	switch keyword {
	case "background":
		return p.parseVec(args, &sc.Background)
	case "eyep":
		return p.parseVec(args, &sc.Camera.Eye)
	case "lookp":
		return p.parseVec(args, &sc.Camera.LookAt)
	case "up":
		return p.parseVec(args, &sc.Camera.Up)
	case "fov":
		values, err := p.parseFloats(args, 2)
		if err != nil {
			return err
		}
		sc.Camera.FovH, sc.Camera.FovV = values[0], values[1]
		if sc.Camera.FovH <= 0 || sc.Camera.FovH >= 180 || sc.Camera.FovV <= 0 || sc.Camera.FovV >= 180 {
			return p.errorf("field of view must be between 0 and 180 degrees")
		}
	case "screen":
		values, err := p.parseInts(args, 2)
		if err != nil {
			return err
		}
		if values[0] <= 0 || values[1] <= 0 {
			return p.errorf("screen size must be positive, got %dx%d", values[0], values[1])
		}
		sc.Camera.Width, sc.Camera.Height = values[0], values[1]
	case "maxdepth":
		values, err := p.parseInts(args, 1)
		if err != nil {
			return err
		}
		sc.MaxDepth = values[0]
	case "cutoff":
		values, err := p.parseFloats(args, 1)
		if err != nil {
			return err
		}
		sc.CutOff = values[0]
	case "surface":
		if len(args) != 1 {
			return p.errorf("surface takes a single name")
		}
		p.surface = material.NewSurface(args[0])
		sc.AddSurface(p.surface)
		p.block = blockSurface
	case "light":
		values, err := p.parseFloats(args, 4)
		if err != nil {
			return err
		}
		sc.AddLight(values[0], core.NewVec3(values[1], values[2], values[3]))
	case "sphere":
		if len(args) != 5 {
			return p.errorf("sphere takes a surface, a radius and a center")
		}
		values, err := p.parseFloats(args[1:], 4)
		if err != nil {
			return err
		}
		if err := sc.AddSphere(args[0], values[0], core.NewVec3(values[1], values[2], values[3])); err != nil {
			return p.errorf("%v", err)
		}
	case "polygon":
		if len(args) < 1 {
			return p.errorf("polygon needs a surface")
		}
		if _, err := sc.Surface(args[0]); err != nil {
			return p.errorf("%v", err)
		}
		p.block = blockPolygon
		p.polySurface = args[0]
		p.polyLine = p.line
		p.polyCoords = p.polyCoords[:0]
		return p.appendCoords(args[1:])
	default:
		return p.errorf("unknown keyword %q", keyword)
	}
	return nil
}

// processBlockLine handles an indented line inside a surface or polygon
func (p *Parser) processBlockLine(fields []string) error {
	if p.block == blockPolygon {
		return p.appendCoords(fields)
	}

	keyword, args := fields[0], fields[1:]
	switch keyword {
	case "ambient":
		return p.parseVec(args, &p.surface.Ambient)
	case "diffuse":
		return p.parseVec(args, &p.surface.Diffuse)
	case "specular":
		return p.parseVec(args, &p.surface.Specular)
	case "specpow":
		values, err := p.parseFloats(args, 1)
		if err != nil {
			return err
		}
		p.surface.SpecPow = values[0]
	case "reflect":
		values, err := p.parseFloats(args, 1)
		if err != nil {
			return err
		}
		if values[0] < 0 || values[0] > 1 {
			return p.errorf("reflect must be in [0, 1], got %g", values[0])
		}
		p.surface.Reflect = values[0]
	default:
		return p.errorf("unknown surface attribute %q", keyword)
	}
	return nil
}

// endBlock closes the current block, completing a pending polygon
func (p *Parser) endBlock() error {
	defer func() { p.block = blockNone }()
	if p.block != blockPolygon {
		return nil
	}

	if len(p.polyCoords)%3 != 0 {
		return fmt.Errorf("%w: line %d: polygon coordinates must come in x y z triples", ErrParse, p.polyLine)
	}
	vertices := make([]core.Vec3, 0, len(p.polyCoords)/3)
	for i := 0; i < len(p.polyCoords); i += 3 {
		vertices = append(vertices, core.NewVec3(p.polyCoords[i], p.polyCoords[i+1], p.polyCoords[i+2]))
	}
	if err := p.scene.AddPolygon(p.polySurface, vertices); err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrParse, p.polyLine, err)
	}
	return nil
}

// finalize completes any statement still open at end of input
func (p *Parser) finalize() error {
	return p.endBlock()
}

func (p *Parser) appendCoords(args []string) error {
	for _, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return p.errorf("invalid number %q", arg)
		}
		p.polyCoords = append(p.polyCoords, v)
	}
	return nil
}

func (p *Parser) parseVec(args []string, out *core.Vec3) error {
	values, err := p.parseFloats(args, 3)
	if err != nil {
		return err
	}
	*out = core.NewVec3(values[0], values[1], values[2])
	return nil
}

func (p *Parser) parseFloats(args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, p.errorf("expected %d values, got %d", n, len(args))
	}
	values := make([]float64, n)
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, p.errorf("invalid number %q", arg)
		}
		values[i] = v
	}
	return values, nil
}

func (p *Parser) parseInts(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, p.errorf("expected %d values, got %d", n, len(args))
	}
	values := make([]int, n)
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, p.errorf("invalid integer %q", arg)
		}
		values[i] = v
	}
	return values, nil
}
