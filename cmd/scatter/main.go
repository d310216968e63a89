package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gopkg.in/yaml.v2"

	"skyfall/pkg/effects"
	"skyfall/pkg/scatter"
)

func main() {

	t := flag.Int64("t", 10000, "how many barrages to simulate")
	prf := flag.String("p", "config.yaml", "which profile to use")
	worker := flag.Int64("w", 24, "number of workers")
	bin := flag.Int64("b", 1, "bin size in meters")
	out := flag.String("o", "out.html", "output file")
	flag.Parse()

	cfg := effects.Defaults()
	if source, err := ioutil.ReadFile(*prf); err == nil {
		if err = yaml.Unmarshal(source, &cfg); err != nil {
			log.Fatal(err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatal(err)
	}

	start := time.Now()
	sim, err := scatter.New(cfg)
	if err != nil {
		panic(err)
	}
	r := sim.Run(*t, *bin, *worker)
	elapsed := time.Since(start)
	fmt.Printf("Profile %v done in %s\n", *prf, elapsed)

	page := components.NewPage()
	page.PageTitle = "dispersion results"

	var bins []int64
	var items []opts.LineData
	var cumul, med float64
	med = -1
	shots := float64(len(r.Points))

	for i, v := range r.Hist {
		bins = append(bins, r.BinStart+*bin*int64(i))
		items = append(items, opts.LineData{Value: v})
		cumul += v / shots
		if cumul >= 0.5 && med == -1 {
			med = float64(i)
		}
	}
	med = float64(r.BinStart) + med*float64(*bin)

	label := fmt.Sprintf("min: %.1f, max %.1f, mean: %.2f, med: %.2f, sd: %.2f", r.Min, r.Max, r.Mean, med, r.SD)

	lineChart := charts.NewLine()
	lineChart.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%v (%v barrages, %v shells)", *prf, *t, len(r.Points)),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Freq",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Miss distance (m)",
		}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "5%", Right: "0%", Orient: "vertical", Data: []string{label}}),
	)
	lineChart.AddSeries(label, items)
	lineChart.SetXAxis(bins)

	page.AddCharts(
		lineChart,
	)

	graph, err := os.Create(*out)
	if err != nil {
		panic(err)
	}
	page.Render(io.MultiWriter(graph))
}
