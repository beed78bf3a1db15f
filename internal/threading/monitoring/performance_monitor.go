package monitoring

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// PerformanceMonitor tracks per-frame timing of the render pipeline.
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds, last frame

	// Pipeline stages, last frame, nanoseconds
	raycastTime      atomic.Uint64
	spriteRenderTime atomic.Uint64
	minimapTime      atomic.Uint64

	// Worker pool
	activeWorkers atomic.Int32
	completedJobs atomic.Uint64

	mutex          sync.RWMutex
	totalFrameTime uint64
	avgFrameTime   float64
	avgRaycastTime float64
	startTime      time.Time

	enableDetailed bool
}

// NewPerformanceMonitor creates a new performance monitor.
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:      time.Now(),
		enableDetailed: true,
	}
}

// FrameTimer measures one whole frame.
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing.
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing and folds it into the running average.
func (ft *FrameTimer) EndFrame() {
	elapsed := uint64(time.Since(ft.startTime).Nanoseconds())
	ft.monitor.frameTime.Store(elapsed)
	count := ft.monitor.frameCount.Add(1)

	if ft.monitor.enableDetailed {
		ft.monitor.mutex.Lock()
		ft.monitor.totalFrameTime += elapsed
		ft.monitor.avgFrameTime = float64(ft.monitor.totalFrameTime) / float64(count)
		ft.monitor.mutex.Unlock()
	}
}

// StageTimer measures one pipeline stage.
type StageTimer struct {
	monitor   *PerformanceMonitor
	target    *atomic.Uint64
	startTime time.Time
	raycast   bool
}

// StartRaycast begins timing the wall pass.
func (pm *PerformanceMonitor) StartRaycast() *StageTimer {
	return &StageTimer{monitor: pm, target: &pm.raycastTime, startTime: time.Now(), raycast: true}
}

// StartSprites begins timing the sprite pass.
func (pm *PerformanceMonitor) StartSprites() *StageTimer {
	return &StageTimer{monitor: pm, target: &pm.spriteRenderTime, startTime: time.Now()}
}

// StartMinimap begins timing the minimap overlay.
func (pm *PerformanceMonitor) StartMinimap() *StageTimer {
	return &StageTimer{monitor: pm, target: &pm.minimapTime, startTime: time.Now()}
}

// End records the elapsed time of the stage.
func (st *StageTimer) End() {
	elapsed := uint64(time.Since(st.startTime).Nanoseconds())
	st.target.Store(elapsed)

	if st.raycast && st.monitor.enableDetailed {
		st.monitor.mutex.Lock()
		// exponential moving average, 1/8 weight on the newest sample
		if st.monitor.avgRaycastTime == 0 {
			st.monitor.avgRaycastTime = float64(elapsed)
		} else {
			st.monitor.avgRaycastTime += (float64(elapsed) - st.monitor.avgRaycastTime) / 8
		}
		st.monitor.mutex.Unlock()
	}
}

// UpdateWorkerMetrics records the worker pool state.
func (pm *PerformanceMonitor) UpdateWorkerMetrics(active int32, completed uint64) {
	pm.activeWorkers.Store(active)
	pm.completedJobs.Store(completed)
}

// FrameMetrics is a snapshot of the most recent frame.
type FrameMetrics struct {
	FramesPerSecond float64
	FrameTime       time.Duration
	RaycastTime     time.Duration
	SpriteTime      time.Duration
	MinimapTime     time.Duration
	MemoryUsageMB   uint64
}

// GetCurrentMetrics returns the latest frame metrics.
func (pm *PerformanceMonitor) GetCurrentMetrics() FrameMetrics {
	frameTime := pm.frameTime.Load()
	fps := 0.0
	if frameTime > 0 {
		fps = float64(time.Second) / float64(frameTime)
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return FrameMetrics{
		FramesPerSecond: fps,
		FrameTime:       time.Duration(frameTime),
		RaycastTime:     time.Duration(pm.raycastTime.Load()),
		SpriteTime:      time.Duration(pm.spriteRenderTime.Load()),
		MinimapTime:     time.Duration(pm.minimapTime.Load()),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
	}
}

// String formats the metrics for the debug overlay.
func (m FrameMetrics) String() string {
	return fmt.Sprintf("frame %.2fms  rays %.2fms  sprites %.2fms",
		float64(m.FrameTime)/float64(time.Millisecond),
		float64(m.RaycastTime)/float64(time.Millisecond),
		float64(m.SpriteTime)/float64(time.Millisecond))
}

// GetDetailedStats returns detailed performance statistics.
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	pm.mutex.RLock()
	avgFrame, avgRaycast := pm.avgFrameTime, pm.avgRaycastTime
	pm.mutex.RUnlock()

	return map[string]interface{}{
		"uptime_seconds":      time.Since(pm.startTime).Seconds(),
		"frame_count":         pm.frameCount.Load(),
		"avg_frame_time_ms":   avgFrame / 1e6,
		"avg_raycast_time_ms": avgRaycast / 1e6,
		"active_workers":      pm.activeWorkers.Load(),
		"completed_jobs":      pm.completedJobs.Load(),
		"cpu_cores":           runtime.NumCPU(),
		"goroutines":          runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning.
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts reports a low frame rate for the last frame.
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)

	frameTime := pm.frameTime.Load()
	if frameTime > 0 {
		fps := float64(time.Second) / float64(frameTime)
		if fps < 30 {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below 30 FPS",
				Value:     fps,
				Threshold: 30,
				Timestamp: time.Now(),
			})
		}
	}
	return alerts
}

// EnableDetailedLogging toggles the running averages.
func (pm *PerformanceMonitor) EnableDetailedLogging(enabled bool) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.enableDetailed = enabled
}

// Reset clears every counter.
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.raycastTime.Store(0)
	pm.spriteRenderTime.Store(0)
	pm.minimapTime.Store(0)
	pm.activeWorkers.Store(0)
	pm.completedJobs.Store(0)

	pm.mutex.Lock()
	pm.totalFrameTime = 0
	pm.avgFrameTime = 0
	pm.avgRaycastTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
