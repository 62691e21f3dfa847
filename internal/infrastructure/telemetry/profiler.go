package telemetry

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"github.com/grafana/pyroscope-go"
	"github.com/jeenmata/impex/internal/infrastructure/config"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// Profiling label keys
const (
	ProfilingLabelRoute      = "route"
	ProfilingLabelMethod     = "method"
	ProfilingLabelController = "controller"
	ProfilingLabelRole       = "role"
)

var profileTypes = map[string]pyroscope.ProfileType{
	"cpu":            pyroscope.ProfileCPU,
	"alloc_objects":  pyroscope.ProfileAllocObjects,
	"alloc_space":    pyroscope.ProfileAllocSpace,
	"inuse_objects":  pyroscope.ProfileInuseObjects,
	"inuse_space":    pyroscope.ProfileInuseSpace,
	"goroutines":     pyroscope.ProfileGoroutines,
	"mutex_count":    pyroscope.ProfileMutexCount,
	"mutex_duration": pyroscope.ProfileMutexDuration,
	"block_count":    pyroscope.ProfileBlockCount,
	"block_duration": pyroscope.ProfileBlockDuration,
}

// Profiler wraps the Pyroscope profiler. A disabled profiler is valid and
// Stop is a no-op.
type Profiler struct {
	profiler *pyroscope.Profiler
	cfg      config.ProfilingConfig
	logger   *zap.Logger
	mu       sync.Mutex
	stopped  bool
}

// NewProfiler starts continuous profiling when cfg.Enabled is set
func NewProfiler(cfg config.ProfilingConfig, logger *zap.Logger) (*Profiler, error) {
	p := &Profiler{cfg: cfg, logger: logger}
	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled")
		return p, nil
	}
	if cfg.ServerAddress == "" {
		return nil, fmt.Errorf("profiler server address is required when profiling is enabled")
	}
	if cfg.ApplicationName == "" {
		return nil, fmt.Errorf("profiler application name is required when profiling is enabled")
	}

	types, err := ParseProfileTypes(cfg.ProfileTypes)
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		switch t {
		case pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration:
			runtime.SetMutexProfileFraction(5)
		case pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration:
			runtime.SetBlockProfileRate(5)
		}
	}

	tags := map[string]string{}
	if hostname := os.Getenv("HOSTNAME"); hostname != "" {
		tags["hostname"] = hostname
	}

	pcfg := pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		Logger:          pyroscopeLogger{logger.Named("pyroscope").Sugar()},
		Tags:            tags,
		ProfileTypes:    types,
	}
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPassword != "" {
		pcfg.BasicAuthUser = cfg.BasicAuthUser
		pcfg.BasicAuthPassword = cfg.BasicAuthPassword
	}

	profiler, err := pyroscope.Start(pcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start Pyroscope profiler: %w", err)
	}
	p.profiler = profiler

	logger.Info("Pyroscope profiler started",
		zap.String("server_address", cfg.ServerAddress),
		zap.String("application_name", cfg.ApplicationName),
		zap.Int("profile_types", len(types)),
	)
	return p, nil
}

// ParseProfileTypes maps configured profile names to Pyroscope types
func ParseProfileTypes(names []string) ([]pyroscope.ProfileType, error) {
	out := make([]pyroscope.ProfileType, 0, len(names))
	for _, name := range names {
		t, ok := profileTypes[name]
		if !ok {
			known := make([]string, 0, len(profileTypes))
			for k := range profileTypes {
				known = append(known, k)
			}
			sort.Strings(known)
			return nil, fmt.Errorf("unknown profile type %q, expected one of %v", name, known)
		}
		out = append(out, t)
	}
	return out, nil
}

// Enabled reports whether profiles are being sent
func (p *Profiler) Enabled() bool {
	return p.profiler != nil
}

// Stop flushes pending profiles. Safe to call more than once.
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped || p.profiler == nil {
		p.stopped = true
		return nil
	}
	p.stopped = true
	if err := p.profiler.Stop(); err != nil {
		p.logger.Error("Error stopping profiler", zap.Error(err))
		return fmt.Errorf("failed to stop profiler: %w", err)
	}
	p.logger.Info("Pyroscope profiler stopped")
	return nil
}

// EnableSpanProfiles wraps the tracer provider so every span carries its
// span_id as a pprof label. Only CPU profiles are linked.
func (p *Provider) EnableSpanProfiles() bool {
	if p.tracer == nil {
		return false
	}
	otel.SetTracerProvider(otelpyroscope.NewTracerProvider(p.tracer))
	p.logger.Info("Span profiles enabled", zap.String("service_name", p.cfg.ServiceName))
	return true
}

// WithProfilingLabels runs fn with labels attached to its goroutine's
// profiles. Empty values are dropped.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	keys := make([]string, 0, len(labels))
	for k, v := range labels {
		if k != "" && v != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		fn(ctx)
		return
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, labels[k])
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

type pyroscopeLogger struct {
	*zap.SugaredLogger
}
