package monitoring

import (
	"sync"
	"testing"
	"time"
)

func TestNewPerformanceMonitor(t *testing.T) {
	pm := NewPerformanceMonitor()

	if pm == nil {
		t.Fatal("NewPerformanceMonitor returned nil")
	}
	if !pm.enableDetailed {
		t.Error("Expected enableDetailed to be true")
	}
	if time.Since(pm.startTime) > time.Second {
		t.Error("Start time should be recent")
	}
}

func TestPerformanceMonitorFrameTiming(t *testing.T) {
	pm := NewPerformanceMonitor()

	frameTimer := pm.StartFrame()
	time.Sleep(10 * time.Millisecond)
	frameTimer.EndFrame()

	if pm.frameCount.Load() != 1 {
		t.Errorf("Expected frame count to be 1, got %d", pm.frameCount.Load())
	}

	minExpectedTime := uint64(10 * time.Millisecond)
	if frameTime := pm.frameTime.Load(); frameTime < minExpectedTime {
		t.Errorf("Expected frame time to be at least %d ns, got %d ns", minExpectedTime, frameTime)
	}
	if pm.avgFrameTime < float64(minExpectedTime) {
		t.Errorf("Expected average frame time >= %d ns, got %f", minExpectedTime, pm.avgFrameTime)
	}
}

func TestPerformanceMonitorStages(t *testing.T) {
	pm := NewPerformanceMonitor()

	rt := pm.StartRaycast()
	time.Sleep(2 * time.Millisecond)
	rt.End()
	st := pm.StartSprites()
	time.Sleep(time.Millisecond)
	st.End()
	mt := pm.StartMinimap()
	mt.End()

	m := pm.GetCurrentMetrics()
	if m.RaycastTime < 2*time.Millisecond {
		t.Errorf("Expected raycast time >= 2ms, got %v", m.RaycastTime)
	}
	if m.SpriteTime < time.Millisecond {
		t.Errorf("Expected sprite time >= 1ms, got %v", m.SpriteTime)
	}
	if pm.avgRaycastTime <= 0 {
		t.Error("Expected raycast average to be recorded")
	}
	if m.String() == "" {
		t.Error("Expected non-empty metrics string")
	}
}

func TestPerformanceMonitorAlerts(t *testing.T) {
	pm := NewPerformanceMonitor()
	if alerts := pm.CheckPerformanceAlerts(); len(alerts) != 0 {
		t.Errorf("Expected no alerts before the first frame, got %v", alerts)
	}

	pm.frameTime.Store(uint64(100 * time.Millisecond))
	alerts := pm.CheckPerformanceAlerts()
	if len(alerts) != 1 || alerts[0].Type != "low_fps" {
		t.Fatalf("Expected one low_fps alert, got %v", alerts)
	}
	if alerts[0].Value != 10 {
		t.Errorf("Expected 10 FPS, got %f", alerts[0].Value)
	}
}

func TestPerformanceMonitorConcurrency(t *testing.T) {
	pm := NewPerformanceMonitor()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				ft := pm.StartFrame()
				pm.StartRaycast().End()
				ft.EndFrame()
			}
		}()
	}
	wg.Wait()

	if pm.frameCount.Load() != 400 {
		t.Errorf("Expected 400 frames, got %d", pm.frameCount.Load())
	}
}

func TestPerformanceMonitorReset(t *testing.T) {
	pm := NewPerformanceMonitor()
	pm.StartFrame().EndFrame()
	pm.UpdateWorkerMetrics(4, 12)

	pm.Reset()

	stats := pm.GetDetailedStats()
	if stats["frame_count"].(uint64) != 0 {
		t.Errorf("Expected frame count 0 after reset, got %v", stats["frame_count"])
	}
	if stats["completed_jobs"].(uint64) != 0 {
		t.Errorf("Expected completed jobs 0 after reset, got %v", stats["completed_jobs"])
	}
}

func BenchmarkPerformanceMonitorFrameTiming(b *testing.B) {
	pm := NewPerformanceMonitor()
	for i := 0; i < b.N; i++ {
		pm.StartFrame().EndFrame()
	}
}

func TestPerformanceMonitorDetailedLoggingOff(t *testing.T) {
	pm := NewPerformanceMonitor()
	pm.EnableDetailedLogging(false)

	ft := pm.StartFrame()
	rt := pm.StartRaycast()
	time.Sleep(time.Millisecond)
	rt.End()
	ft.EndFrame()

	stats := pm.GetDetailedStats()
	if stats["avg_frame_time_ms"].(float64) != 0 || stats["avg_raycast_time_ms"].(float64) != 0 {
		t.Errorf("averages updated with detailed logging off: %v", stats)
	}
	if pm.GetCurrentMetrics().RaycastTime <= 0 {
		t.Error("latest stage time should still be recorded")
	}
}
