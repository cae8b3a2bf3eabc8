package cmd

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/mcuos/sleepmgr/arbiter"
	"github.com/mcuos/sleepmgr/config"
	"github.com/mcuos/sleepmgr/idleloop"
	"github.com/mcuos/sleepmgr/monitoring"
	"github.com/mcuos/sleepmgr/platform"
	"github.com/mcuos/sleepmgr/powerstats"
	"github.com/mcuos/sleepmgr/recording"
	"github.com/mcuos/sleepmgr/sleeplock"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the sleep manager against simulated drivers",
	Long: `demo wires the deep-sleep lock, the mode arbiter, and a simulated ` +
		`processor core together, then runs a number of simulated drivers that ` +
		`lock deep sleep around asynchronous transactions while the idle loop ` +
		`keeps suspending the core.`,
	Run: func(cmd *cobra.Command, _ []string) {
		drivers, _ := cmd.Flags().GetInt("drivers")
		duration, _ := cmd.Flags().GetDuration("duration")
		open, _ := cmd.Flags().GetBool("open")

		runDemo(drivers, duration, open)
	},
}

func init() {
	demoCmd.Flags().Int("drivers", 4,
		"number of simulated drivers locking deep sleep")
	demoCmd.Flags().Duration("duration", 3*time.Second,
		"how long to run the simulation")
	demoCmd.Flags().Bool("open", false,
		"open the monitoring page in a browser (requires a fixed monitor port)")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(drivers int, duration time.Duration, open bool) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lock := sleeplock.New()
	lock.AcceptHook(sleeplock.NewFaultLogger(
		log.New(os.Stderr, "sleepmgr: ", log.LstdFlags)))

	core := platform.NewSimSuspender()

	builder := arbiter.MakeBuilder().WithLock(lock)
	if cfg.DeviceSleep {
		builder = builder.WithSuspender(core)
	}
	if cfg.DebugBuild {
		builder = builder.WithDebugBuild()
	}
	arb := builder.Build()

	stats := powerstats.NewCollector(nil)
	arb.AcceptHook(stats)

	recorder := recording.NewDataRecorder(cfg.RecordingPath)
	sleepRecorder := recording.NewSleepRecorder(recorder, nil)
	arb.AcceptHook(sleepRecorder)
	lock.AcceptHook(sleepRecorder)

	if cfg.MonitorOn {
		startMonitor(cfg, lock, stats, arb, open)
	}

	ctx, cancel := context.WithCancel(context.Background())

	for i := 0; i < drivers; i++ {
		go runDriver(ctx, i, lock, core)
	}

	runner := idleloop.NewRunner(arb)
	runner.Start(ctx)

	time.Sleep(duration)

	cancel()
	core.Wake()
	err = runner.Stop(time.Second)
	if err != nil {
		log.Fatal(err)
	}

	printSnapshot(stats.Snapshot(), core)

	atexit.Exit(0)
}

func startMonitor(
	cfg config.Config,
	lock *sleeplock.Lock,
	stats *powerstats.Collector,
	arb *arbiter.Arbiter,
	open bool,
) {
	monitor := monitoring.NewMonitor()
	if cfg.MonitorPort > 0 {
		monitor.WithPortNumber(cfg.MonitorPort)
	}

	monitor.RegisterLock(lock)
	monitor.RegisterStats(stats)
	monitor.RegisterDomain("arbiter", arb)
	monitor.StartServer()

	if open && cfg.MonitorPort > 1000 {
		url := fmt.Sprintf("http://localhost:%d/api/lock", cfg.MonitorPort)
		err := browser.OpenURL(url)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open browser: %s\n", err)
		}
	}
}

// runDriver mimics an interrupt-driven peripheral driver: it locks deep
// sleep for the lifetime of each asynchronous transaction and raises a wake
// event when the completion interrupt fires.
func runDriver(
	ctx context.Context,
	seed int,
	lock *sleeplock.Lock,
	core *platform.SimSuspender,
) {
	rng := rand.New(rand.NewSource(int64(seed)))

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := lock.Lock(); err != nil {
			log.Printf("driver %d: %s", seed, err)
			continue
		}

		// Transaction in flight.
		time.Sleep(time.Duration(1+rng.Intn(5)) * time.Millisecond)

		core.Wake()

		if err := lock.Unlock(); err != nil {
			log.Printf("driver %d: %s", seed, err)
		}

		// Idle until the next transaction.
		time.Sleep(time.Duration(1+rng.Intn(10)) * time.Millisecond)
	}
}

func printSnapshot(s powerstats.Snapshot, core *platform.SimSuspender) {
	fmt.Printf("up time:             %s\n", s.UpTime)
	fmt.Printf("shallow sleep time:  %s (%d entries)\n",
		s.ShallowSleepTime, s.ShallowSleepCount)
	fmt.Printf("deep sleep time:     %s (%d entries)\n",
		s.DeepSleepTime, s.DeepSleepCount)
	fmt.Printf("core suspend counts: shallow=%d deep=%d\n",
		core.ShallowCount(), core.DeepCount())
}
