package processor

import (
	"fmt"

	"github.com/ZacxDev/mp4-shrinker/internal/ffmpeg"
	"github.com/ZacxDev/mp4-shrinker/internal/units"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func (s *Shrinker) reportSource(md *ffmpeg.VideoMetadata) {
	perSecond := float64(md.Size) / md.Duration
	s.writeTable("Original Video Information", [][2]string{
		{"Resolution", fmt.Sprintf("%dx%d", md.Width, md.Height)},
		{"Bit Rate", fmt.Sprintf("%.2f Kbps", float64(md.Bitrate)/1000)},
		{"Duration", fmt.Sprintf("%.2f seconds", md.Duration)},
		{"File Size", units.FormatSize(float64(md.Size))},
		{"Size per second", units.FormatSize(perSecond) + "/s"},
		{"Size per minute", units.FormatSize(perSecond*60) + "/min"},
	})
}

func (s *Shrinker) reportTarget(targetSize int64, duration float64, params EncodeParameters) {
	perSecond := float64(params.Bitrate) / 8
	s.writeTable("Target Information", [][2]string{
		{"Target Size", units.FormatSize(float64(targetSize))},
		{"Target Duration", fmt.Sprintf("%.2f seconds", duration)},
		{"Calculated Resolution", fmt.Sprintf("%dx%d", params.Width, params.Height)},
		{"Calculated Bit Rate", fmt.Sprintf("%.2f Kbps", float64(params.Bitrate)/1000)},
		{"Estimated Size per second", units.FormatSize(perSecond) + "/s"},
		{"Estimated Size per minute", units.FormatSize(perSecond*60) + "/min"},
	})
}

func (s *Shrinker) reportOutput(outputPath string, outputSize int64, percentage float64) {
	s.writeTable("Output", [][2]string{
		{"Output file", outputPath},
		{"Output size", fmt.Sprintf("%s (%.2f%% of target)", units.FormatSize(float64(outputSize)), percentage)},
	})
}

func (s *Shrinker) writeTable(title string, rows [][2]string) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(title)
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1]})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
	})
	fmt.Fprintln(s.report, tw.Render())
}
