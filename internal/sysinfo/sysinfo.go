// Package sysinfo samples local system metrics (CPU, memory, uptime, host
// identity) for the dashboard's system card. Samples are published on a
// fixed cadence through a snapshot feed; nothing is persisted.
package sysinfo

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/hubdeck/hubdeck/internal/logger"
	"github.com/hubdeck/hubdeck/internal/watch"
)

// DefaultInterval is the sampling cadence.
const DefaultInterval = 2 * time.Second

// State is one point-in-time system snapshot.
type State struct {
	CPUPercent    float64
	MemoryUsed    uint64
	MemoryTotal   uint64
	MemoryPercent float64
	UptimeSecs    uint64
	Hostname      string
	OS            string
	NumCPU        int
}

// UptimeFormatted renders uptime as "1d 2h 3m", omitting leading zero units.
func (s State) UptimeFormatted() string {
	days := s.UptimeSecs / 86400
	hours := (s.UptimeSecs % 86400) / 3600
	mins := (s.UptimeSecs % 3600) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

// Sampler collects system metrics from /proc. CPU usage is computed from
// the jiffies delta between consecutive Collect calls, so the first sample
// reports 0%.
type Sampler struct {
	prevTotal int64
	prevIdle  int64
}

// NewSampler creates a sampler.
func NewSampler() *Sampler {
	return &Sampler{}
}

// Collect takes one snapshot. On hosts without /proc the CPU and memory
// fields degrade to zero rather than failing.
func (s *Sampler) Collect() State {
	state := State{
		OS:     runtime.GOOS,
		NumCPU: runtime.NumCPU(),
	}

	if hostname, err := os.Hostname(); err == nil {
		state.Hostname = hostname
	} else {
		state.Hostname = "unknown"
	}

	if stat, err := os.ReadFile("/proc/stat"); err == nil {
		if total, idle, err := parseCPUStat(string(stat)); err == nil {
			state.CPUPercent = s.cpuDelta(total, idle)
		}
	}

	if meminfo, err := os.ReadFile("/proc/meminfo"); err == nil {
		if used, total, err := parseMeminfo(string(meminfo)); err == nil {
			state.MemoryUsed = used
			state.MemoryTotal = total
			if total > 0 {
				state.MemoryPercent = float64(used) / float64(total) * 100
			}
		}
	}

	if uptime, err := os.ReadFile("/proc/uptime"); err == nil {
		if secs, err := parseUptime(string(uptime)); err == nil {
			state.UptimeSecs = secs
		}
	}

	return state
}

// cpuDelta converts cumulative jiffies into a usage percentage over the
// window since the previous sample.
func (s *Sampler) cpuDelta(total, idle int64) float64 {
	first := s.prevTotal == 0
	dTotal := total - s.prevTotal
	dIdle := idle - s.prevIdle
	s.prevTotal = total
	s.prevIdle = idle

	if first || dTotal <= 0 {
		return 0
	}
	return float64(dTotal-dIdle) / float64(dTotal) * 100
}

// parseCPUStat extracts total and idle jiffies from the aggregate cpu line
// of /proc/stat. idle includes iowait.
func parseCPUStat(procStat string) (total, idle int64, err error) {
	scanner := bufio.NewScanner(strings.NewReader(procStat))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			return 0, 0, fmt.Errorf("invalid /proc/stat cpu line: %s", line)
		}

		// Fields: cpu user nice system idle iowait irq softirq steal ...
		for i := 1; i < len(fields); i++ {
			val, err := strconv.ParseInt(fields[i], 10, 64)
			if err != nil {
				return 0, 0, fmt.Errorf("parse cpu field %d: %w", i, err)
			}
			total += val
			if i == 4 || i == 5 {
				idle += val
			}
		}
		return total, idle, nil
	}
	return 0, 0, fmt.Errorf("no aggregate cpu line in /proc/stat")
}

// parseMeminfo computes used and total bytes from /proc/meminfo.
func parseMeminfo(procMeminfo string) (used, total uint64, err error) {
	var memTotal, memFree, buffers, cached uint64
	found := 0

	scanner := bufio.NewScanner(strings.NewReader(procMeminfo))
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}
		val, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			continue
		}
		// /proc/meminfo values are in kB.
		valBytes := val * 1024

		switch strings.TrimSuffix(parts[0], ":") {
		case "MemTotal":
			memTotal = valBytes
			found++
		case "MemFree":
			memFree = valBytes
			found++
		case "Buffers":
			buffers = valBytes
			found++
		case "Cached":
			cached = valBytes
			found++
		}
	}

	if found < 2 || memTotal == 0 {
		return 0, 0, fmt.Errorf("insufficient fields in /proc/meminfo")
	}

	reclaimable := memFree + buffers + cached
	if reclaimable > memTotal {
		reclaimable = memTotal
	}
	return memTotal - reclaimable, memTotal, nil
}

// parseUptime extracts whole seconds from /proc/uptime.
func parseUptime(procUptime string) (uint64, error) {
	fields := strings.Fields(strings.TrimSpace(procUptime))
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty /proc/uptime")
	}
	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("parse uptime: %w", err)
	}
	return uint64(secs), nil
}

// Start launches the sampling goroutine and returns its snapshot feed. The
// goroutine ends when ctx is cancelled; there are no commands and no
// failure path.
func Start(ctx context.Context, interval time.Duration) *watch.Feed[State] {
	if interval <= 0 {
		interval = DefaultInterval
	}

	sampler := NewSampler()
	feed := watch.NewFeed(sampler.Collect())

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				state := sampler.Collect()
				logger.Debug().
					Float64("cpu", state.CPUPercent).
					Float64("mem", state.MemoryPercent).
					Msg("system sample")
				feed.Publish(state)
			}
		}
	}()

	return feed
}
