package main

import (
	"flag"
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/latency"
	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/marketdata"
	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/matching"
	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/tradesink"
)

func main() {
	var (
		numTicks = flag.Int("ticks", 10_000, "number of synthetic ticks to run")
		csvPath  = flag.String("csv", "trades.csv", "trade log output path")
		seed     = flag.Int64("seed", 12345, "rng seed for the order flow")
		reserve  = flag.Bool("reserve", true, "pre-reserve tracker capacity")
	)
	flag.Parse()

	tick := matching.MustTickSize("0.01")

	sizeHint := 0
	if *reserve {
		sizeHint = *numTicks
	}
	engine := matching.NewEngine(sizeHint)

	sink, err := tradesink.NewCSVSink(*csvPath, tick, 4096)
	if err != nil {
		panic(err)
	}
	defer sink.Close()

	feed := marketdata.NewFeed(marketdata.FeedConfig{Symbol: "SYM", Seed: *seed})
	ticks := feed.Generate(*numTicks)

	// order flow near mid with a small skew so some orders cross
	rng := rand.New(rand.NewSource(*seed))
	maxSkew := decimal.RequireFromString("0.10")

	latencies := make([]int64, 0, *numTicks)
	var timer latency.Timer
	nextID := int64(1)

	for _, md := range ticks {
		isBuy := rng.Intn(2) == 1
		qty := int64(rng.Intn(191) + 10)
		skew := maxSkew.Mul(decimal.NewFromFloat(rng.Float64()))

		px := md.Mid()
		side := matching.Sell
		if isBuy {
			side = matching.Buy
			px = px.Add(skew)
		} else {
			px = px.Sub(skew)
		}

		timer.Start()
		trades, err := engine.Submit(matching.Order{
			ID:       nextID,
			Price:    tick.ToTicks(px),
			Quantity: qty,
			Side:     side,
		})
		nextID++
		if err != nil {
			panic(err)
		}

		if len(trades) > 0 {
			latencies = append(latencies, timer.StopNs())
			if err := sink.Append(trades); err != nil {
				panic(err)
			}
		}
	}

	if err := sink.Flush(); err != nil {
		panic(err)
	}

	summary, err := latency.Summarize(latencies)
	if err != nil {
		panic(err)
	}
	fmt.Println("tick-to-trade latency:", summary)

	printSide := func(name string, px int64, ok bool) {
		if !ok {
			fmt.Printf("%s: -\n", name)
			return
		}
		fmt.Printf("%s: %s\n", name, tick.FromTicks(px))
	}
	bid, okBid := engine.BestBid()
	ask, okAsk := engine.BestAsk()
	printSide("best bid", bid, okBid)
	printSide("best ask", ask, okAsk)
	fmt.Printf("live levels: %d\n", engine.LevelCount())
}
