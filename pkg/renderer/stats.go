package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/df07/go-kd-raytracer/pkg/accel"
	"github.com/olekukonko/tablewriter"
)

// RenderStats contains statistics about one render
type RenderStats struct {
	Width      int
	Height     int
	Tiles      int
	Workers    int
	Accel      accel.Kind
	Rays       int64 // nearest-hit queries, primary and reflected
	ShadowRays int64 // occlusion probes
	BuildTime  time.Duration
	RenderTime time.Duration
}

// TotalPixels returns the number of pixels in the image
func (s RenderStats) TotalPixels() int {
	return s.Width * s.Height
}

// RaysPerPixel returns the mean number of nearest-hit queries per pixel
func (s RenderStats) RaysPerPixel() float64 {
	if s.TotalPixels() == 0 {
		return 0
	}
	return float64(s.Rays) / float64(s.TotalPixels())
}

// Table renders the statistics as a text table
func (s RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Render", "Value"})
	table.Append([]string{"Image", fmt.Sprintf("%dx%d", s.Width, s.Height)})
	table.Append([]string{"Acceleration", string(s.Accel)})
	table.Append([]string{"Tiles", fmt.Sprintf("%d", s.Tiles)})
	table.Append([]string{"Workers", fmt.Sprintf("%d", s.Workers)})
	table.Append([]string{"Rays", fmt.Sprintf("%d", s.Rays)})
	table.Append([]string{"Shadow rays", fmt.Sprintf("%d", s.ShadowRays)})
	table.Append([]string{"Rays / pixel", fmt.Sprintf("%.2f", s.RaysPerPixel())})
	table.Append([]string{"Build time", s.BuildTime.String()})
	table.SetFooter([]string{"Render time", s.RenderTime.String()})

	table.Render()
	return buf.String()
}
