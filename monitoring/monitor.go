// Package monitoring turns a running sleep manager into a small web server
// that reports the lock state, sleep statistics, and process resources.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/mcuos/sleepmgr/powerstats"
	"github.com/mcuos/sleepmgr/sleeplock"
)

type monitoredDomain struct {
	name  string
	value any
}

// Monitor can serve the internal state of the sleep manager over HTTP,
// allowing external observation of a live system.
type Monitor struct {
	portNumber int

	lock    *sleeplock.Lock
	stats   *powerstats.Collector
	domains []monitoredDomain
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterLock registers the deep-sleep lock to be monitored.
func (m *Monitor) RegisterLock(l *sleeplock.Lock) {
	m.lock = l
}

// RegisterStats registers the sleep statistics collector to be monitored.
func (m *Monitor) RegisterStats(c *powerstats.Collector) {
	m.stats = c
}

// RegisterDomain registers an arbitrary object whose state can be inspected
// through the /api/domain endpoint.
func (m *Monitor) RegisterDomain(name string, domain any) {
	m.domains = append(m.domains, monitoredDomain{
		name:  name,
		value: domain,
	})
}

// StartServer starts the monitor as a web server, on the configured port or
// a random one if none is set.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/lock", m.lockState)
	r.HandleFunc("/api/stats", m.sleepStats)
	r.HandleFunc("/api/domains", m.listDomains)
	r.HandleFunc("/api/domain/{name}", m.domainDetails)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	fmt.Fprintf(
		os.Stderr,
		"Monitoring sleep manager with http://localhost:%d\n",
		listener.Addr().(*net.TCPAddr).Port)

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

type lockStateRsp struct {
	Count        uint32 `json:"count"`
	CanDeepSleep bool   `json:"can_deep_sleep"`
}

func (m *Monitor) lockState(w http.ResponseWriter, _ *http.Request) {
	rsp := lockStateRsp{
		Count:        m.lock.Count(),
		CanDeepSleep: m.lock.CanDeepSleep(),
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type sleepStatsRsp struct {
	UpTimeNS          int64  `json:"up_time_ns"`
	ShallowSleepNS    int64  `json:"shallow_sleep_ns"`
	DeepSleepNS       int64  `json:"deep_sleep_ns"`
	ShallowSleepCount uint64 `json:"shallow_sleep_count"`
	DeepSleepCount    uint64 `json:"deep_sleep_count"`
}

func (m *Monitor) sleepStats(w http.ResponseWriter, _ *http.Request) {
	if m.stats == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	s := m.stats.Snapshot()
	rsp := sleepStatsRsp{
		UpTimeNS:          s.UpTime.Nanoseconds(),
		ShallowSleepNS:    s.ShallowSleepTime.Nanoseconds(),
		DeepSleepNS:       s.DeepSleepTime.Nanoseconds(),
		ShallowSleepCount: s.ShallowSleepCount,
		DeepSleepCount:    s.DeepSleepCount,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) listDomains(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "[")
	for i, d := range m.domains {
		if i > 0 {
			fmt.Fprint(w, ",")
		}

		fmt.Fprintf(w, "%q", d.name)
	}
	fmt.Fprint(w, "]")
}

func (m *Monitor) domainDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	domain := m.findDomainOr404(w, name)
	if domain == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(domain)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) findDomainOr404(
	w http.ResponseWriter,
	name string,
) any {
	for _, d := range m.domains {
		if d.name == name {
			return d.value
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Domain not found"))
	dieOnErr(err)

	return nil
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
