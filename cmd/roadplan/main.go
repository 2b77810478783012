// Command roadplan generates a road network over procedural terrain and
// infers emergent settlements from the network's density. The finished
// plan is saved to SQLite and rendered as a PNG overview map.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/roadplan/internal/density"
	"github.com/talgya/roadplan/internal/persistence"
	"github.com/talgya/roadplan/internal/render"
	"github.com/talgya/roadplan/internal/roadnet"
	"github.com/talgya/roadplan/internal/terrain"
)

func main() {
	seed := flag.Int64("seed", 42, "terrain and planning seed (0 = random)")
	size := flag.Float64("size", 4000, "terrain side length in world units")
	settlements := flag.Int("settlements", 8, "settlement sites to sample")
	dbPath := flag.String("db", "data/roadplan.db", "plan database path")
	mapPath := flag.String("map", "data/roadplan.png", "overview map output path")
	mapPixels := flag.Int("map-size", 1024, "overview map size in pixels")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// ── Terrain ───────────────────────────────────────────────────────
	tcfg := terrain.DefaultNoiseConfig()
	tcfg.Seed = *seed
	tcfg.Size = *size
	oracle := terrain.NewNoiseOracle(tcfg)
	finder := terrain.NewGridPathFinder(oracle)
	slog.Info("terrain ready", "seed", *seed, "size", *size, "sea_level", tcfg.SeaLevel)

	// ── Destinations ──────────────────────────────────────────────────
	sites := roadnet.SampleSettlementSites(oracle, *seed, *settlements)
	dests := roadnet.GatherDestinations(oracle, sites, *seed)
	slog.Info("destinations gathered", "sites", len(sites), "destinations", len(dests))

	// ── Planning ──────────────────────────────────────────────────────
	cfg := roadnet.DefaultConfig()
	cfg.Seed = *seed

	planner, err := roadnet.NewPlanner(oracle, finder, cfg)
	if err != nil {
		slog.Error("planner construction failed", "error", err)
		os.Exit(1)
	}

	start := time.Now()
	plan, err := planner.Plan(dests)
	if err != nil {
		slog.Error("planning failed", "error", err)
		os.Exit(1)
	}
	slog.Info("plan complete", "elapsed", time.Since(start).Round(time.Millisecond))

	// ── Persist ───────────────────────────────────────────────────────
	os.MkdirAll("data", 0755)
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.SavePlan(plan); err != nil {
		slog.Error("failed to save plan", "error", err)
		os.Exit(1)
	}
	if err := db.SaveMeta("seed", strconv.FormatInt(*seed, 10)); err != nil {
		slog.Error("failed to save metadata", "key", "seed", "error", err)
		os.Exit(1)
	}
	if err := db.SaveMeta("generated_at", time.Now().UTC().Format(time.RFC3339)); err != nil {
		slog.Error("failed to save metadata", "key", "generated_at", "error", err)
		os.Exit(1)
	}
	slog.Info("plan saved", "path", *dbPath)

	// ── Render ────────────────────────────────────────────────────────
	renderer := render.NewRenderer(oracle, *mapPixels, nil)
	if err := renderer.SavePNG(plan, *mapPath); err != nil {
		slog.Error("failed to render map", "error", err)
		os.Exit(1)
	}
	slog.Info("map rendered", "path", *mapPath)

	printSummary(plan)
}

// printSummary writes a human-readable recap of the generated network.
func printSummary(plan *roadnet.Plan) {
	total := 0.0
	byType := make(map[roadnet.RoadType]int)
	for _, r := range plan.Roads {
		total += r.Length()
		byType[r.Type]++
	}

	fmt.Printf("\n%s roads totalling %sm of network:\n",
		humanize.Comma(int64(len(plan.Roads))), humanize.Comma(int64(total)))
	for _, t := range []roadnet.RoadType{roadnet.RoadHighway, roadnet.RoadArterial, roadnet.RoadLane, roadnet.RoadBranch} {
		if byType[t] > 0 {
			fmt.Printf("  %-10s %d\n", roadnet.RoadTypeName(t), byType[t])
		}
	}

	fmt.Printf("%d water crossings excluded for downstream generators.\n", len(plan.ExclusionZones))

	fmt.Printf("%d emergent settlements:\n", len(plan.Settlements))
	for _, s := range plan.Settlements {
		fmt.Printf("  %-10s at (%.0f, %.0f)  score %.1f\n",
			density.DensityClassName(s.Class), s.Center.X, s.Center.Z, s.DensityScore)
	}
}
