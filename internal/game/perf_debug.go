package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	perfLowFpsThreshold = 30.0
	perfLowFpsDuration  = 3 * time.Second
	perfLogInterval     = 3 * time.Second
)

func (gl *GameLoop) maybeLogPerfDrop() {
	if !gl.game.config.Graphics.PerfLog {
		return
	}

	fps := ebiten.ActualFPS()
	if fps >= perfLowFpsThreshold {
		gl.perfLowFpsSince = time.Time{}
		gl.perfLastPerfLog = time.Time{}
		return
	}

	now := time.Now()
	if gl.perfLowFpsSince.IsZero() {
		gl.perfLowFpsSince = now
		return
	}
	if now.Sub(gl.perfLowFpsSince) < perfLowFpsDuration {
		return
	}
	if !gl.perfLastPerfLog.IsZero() && now.Sub(gl.perfLastPerfLog) < perfLogInterval {
		return
	}

	gl.perfLastPerfLog = now
	gl.logPerfSnapshot(fps)
}

func (gl *GameLoop) logPerfSnapshot(fps float64) {
	g := gl.game
	stats := g.monitor.GetDetailedStats()
	metrics := g.monitor.GetCurrentMetrics()

	workers := 0
	if g.pool != nil {
		workers = g.pool.NumWorkers()
		g.monitor.UpdateWorkerMetrics(int32(workers), g.pool.CompletedJobs())
	}

	fmt.Printf(
		"[PERF] FPS<%.0f for >=%s | fps=%.1f tps=%.1f mode=%v screen=%dx%d sprites=%d\n",
		perfLowFpsThreshold,
		perfLowFpsDuration,
		fps,
		ebiten.ActualTPS(),
		g.mode,
		g.config.GetScreenWidth(),
		g.config.GetScreenHeight(),
		len(g.sprites),
	)
	fmt.Printf(
		"[PERF] update=%.2fms draw=%.2fms budget=%.2fms idle=%.2fms %s minimap=%.2fms workers=%d avg_frame=%.2fms\n",
		float64(gl.lastUpdateDuration.Microseconds())/1000.0,
		float64(gl.lastDrawDuration.Microseconds())/1000.0,
		frameBudgetMs(fps),
		idleBudgetMs(fps, gl.lastUpdateDuration, gl.lastDrawDuration),
		metrics,
		float64(metrics.MinimapTime.Microseconds())/1000.0,
		workers,
		stats["avg_frame_time_ms"],
	)
	fmt.Printf("[PERF] mem_alloc=%dMB goroutines=%v\n", metrics.MemoryUsageMB, stats["goroutines"])

	for _, alert := range g.monitor.CheckPerformanceAlerts() {
		fmt.Printf("[PERF] alert %s: %s (%.1f < %.0f)\n", alert.Type, alert.Message, alert.Value, alert.Threshold)
	}
}

func frameBudgetMs(fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return 1000.0 / fps
}

func idleBudgetMs(fps float64, updateDur, drawDur time.Duration) float64 {
	budget := frameBudgetMs(fps)
	busy := float64(updateDur.Microseconds()+drawDur.Microseconds()) / 1000.0
	idle := budget - busy
	if idle < 0 {
		return 0
	}
	return idle
}
