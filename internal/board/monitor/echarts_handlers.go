package monitor

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/pointboard/internal/httputil"
)

const echartsAssetsPrefix = "https://go-echarts.github.io/go-echarts-assets/assets/"

// handleBoardChart renders the board as an interactive scatter chart using
// go-echarts. Every point carries its label so the chart is readable without
// tooltips. Query params:
//
//	symbol_size (optional; overrides the configured marker size)
func (ws *WebServer) handleBoardChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	symbolSize := ws.cfg.GetSymbolSize()
	if raw := r.URL.Query().Get("symbol_size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 50 {
			symbolSize = v
		}
	}

	points := ws.board.Points()
	data := make([]opts.ScatterData, 0, len(points))
	for _, p := range points {
		data = append(data, opts.ScatterData{
			Name:  p.Label,
			Value: []interface{}{p.X, p.Y},
		})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:  "Point Board",
			Theme:      ws.cfg.GetChartTheme(),
			Width:      "700px",
			Height:     "700px",
			AssetsHost: echartsAssetsPrefix,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Point Board",
			Subtitle: fmt.Sprintf("board=%s points=%d", ws.board.ID(), len(points)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: ws.cfg.GetAxisMin(), Max: ws.cfg.GetAxisMax(), Name: "X", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: ws.cfg.GetAxisMin(), Max: ws.cfg.GetAxisMax(), Name: "Y", NameLocation: "middle", NameGap: 30}),
	)

	scatter.AddSeries("points", data,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: symbolSize}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "right", Formatter: "{b}"}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ff5252"}),
	)

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	httputil.WriteHTML(w, buf.Bytes())
}
