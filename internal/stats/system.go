package stats

import (
	"context"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

const cpuSampleWindow = 200 * time.Millisecond

var (
	processStart = time.Now()

	netOnce         sync.Once
	netSentBaseline uint64
	netRecvBaseline uint64
)

type SystemInfo struct {
	OS           string  `json:"os"`
	Hostname     string  `json:"hostname"`
	SystemUptime string  `json:"system_uptime"`
	CPUCores     int     `json:"cpu_cores"`
	CPUUsage     float64 `json:"cpu_usage"`

	MemUsed    uint64  `json:"mem_used"`
	MemTotal   uint64  `json:"mem_total"`
	MemPercent float64 `json:"mem_percent"`

	DiskUsed    uint64  `json:"disk_used"`
	DiskTotal   uint64  `json:"disk_total"`
	DiskPercent float64 `json:"disk_percent"`

	NetSent uint64 `json:"net_sent"`
	NetRecv uint64 `json:"net_recv"`

	ProcessPID    int     `json:"pid"`
	ProcessUptime string  `json:"process_uptime"`
	ProcessCPU    float64 `json:"process_cpu"`
	ProcessMem    uint64  `json:"process_mem"`

	GoVersion  string `json:"go_version"`
	Goroutines int    `json:"goroutines"`
	HeapAlloc  uint64 `json:"heap_alloc"`
	GCRuns     uint32 `json:"gc_runs"`
}

// InitNetBaseline records the interface counters that network usage is
// reported against. Later calls are no-ops.
func InitNetBaseline() {
	netOnce.Do(func() {
		if counters, err := net.IOCounters(false); err == nil && len(counters) > 0 {
			netSentBaseline = counters[0].BytesSent
			netRecvBaseline = counters[0].BytesRecv
		}
	})
}

// GetSystemInfo collects what the host reports. Fields that cannot be read
// stay zero.
func GetSystemInfo(ctx context.Context) *SystemInfo {
	InitNetBaseline()
	info := &SystemInfo{CPUCores: runtime.NumCPU()}

	if hostInfo, err := host.InfoWithContext(ctx); err == nil {
		info.OS = hostInfo.OS
		info.Hostname = hostInfo.Hostname
		info.SystemUptime = FormatDuration(time.Duration(hostInfo.Uptime) * time.Second)
	}

	if cpuPercent, err := cpu.PercentWithContext(ctx, cpuSampleWindow, false); err == nil && len(cpuPercent) > 0 {
		info.CPUUsage = cpuPercent[0]
	}

	if memInfo, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.MemUsed = memInfo.Used
		info.MemTotal = memInfo.Total
		info.MemPercent = memInfo.UsedPercent
	}

	if diskInfo, err := disk.UsageWithContext(ctx, "/"); err == nil {
		info.DiskUsed = diskInfo.Used
		info.DiskTotal = diskInfo.Total
		info.DiskPercent = diskInfo.UsedPercent
	}

	if counters, err := net.IOCountersWithContext(ctx, false); err == nil && len(counters) > 0 {
		info.NetSent = counters[0].BytesSent - netSentBaseline
		info.NetRecv = counters[0].BytesRecv - netRecvBaseline
	}

	info.ProcessPID = os.Getpid()
	info.ProcessUptime = FormatDuration(time.Since(processStart))
	if proc, err := process.NewProcessWithContext(ctx, int32(info.ProcessPID)); err == nil {
		if cpuPercent, err := proc.CPUPercentWithContext(ctx); err == nil {
			info.ProcessCPU = cpuPercent
		}
		if memInfo, err := proc.MemoryInfoWithContext(ctx); err == nil {
			info.ProcessMem = memInfo.RSS
		}
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	info.GoVersion = runtime.Version()
	info.Goroutines = runtime.NumGoroutine()
	info.HeapAlloc = m.Alloc
	info.GCRuns = m.NumGC

	return info
}
