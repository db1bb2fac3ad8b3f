package instrumentation

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.ServiceName != "loadpulse" {
		t.Errorf("expected service name 'loadpulse', got %q", config.ServiceName)
	}
	if !config.Enabled {
		t.Error("expected instrumentation to be enabled by default")
	}
	if config.MetricsExporter != ExporterPrometheus {
		t.Errorf("expected default metrics exporter %q, got %q", ExporterPrometheus, config.MetricsExporter)
	}
	if config.TracingExporter != ExporterNone {
		t.Errorf("expected default tracing exporter %q, got %q", ExporterNone, config.TracingExporter)
	}
	if config.TraceSamplingRate != 1.0 {
		t.Errorf("expected default sampling rate 1.0, got %f", config.TraceSamplingRate)
	}
}

func TestDefaultConfig_EnvOverrides(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "demo-override")
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("TRACING_EXPORTER", "stdout")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")

	config := DefaultConfig()

	if config.ServiceName != "demo-override" {
		t.Errorf("expected service name override, got %q", config.ServiceName)
	}
	if config.Enabled {
		t.Error("expected instrumentation disabled via env var")
	}
	if config.TracingExporter != ExporterStdout {
		t.Errorf("expected stdout tracing exporter, got %q", config.TracingExporter)
	}
	if config.TraceSamplingRate != 0.25 {
		t.Errorf("expected sampling rate 0.25, got %f", config.TraceSamplingRate)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid defaults",
			config:  Config{MetricsExporter: ExporterPrometheus, TracingExporter: ExporterNone, TraceSamplingRate: 1.0},
			wantErr: false,
		},
		{
			name:    "sampling rate too high",
			config:  Config{MetricsExporter: ExporterPrometheus, TracingExporter: ExporterNone, TraceSamplingRate: 1.5},
			wantErr: true,
		},
		{
			name:    "sampling rate negative",
			config:  Config{MetricsExporter: ExporterPrometheus, TracingExporter: ExporterNone, TraceSamplingRate: -0.1},
			wantErr: true,
		},
		{
			name:    "invalid metrics exporter",
			config:  Config{MetricsExporter: "graphite", TracingExporter: ExporterNone, TraceSamplingRate: 0.5},
			wantErr: true,
		},
		{
			name:    "invalid tracing exporter",
			config:  Config{MetricsExporter: ExporterPrometheus, TracingExporter: "jaeger", TraceSamplingRate: 0.5},
			wantErr: true,
		},
		{
			name:    "otlp tracing without endpoint",
			config:  Config{MetricsExporter: ExporterPrometheus, TracingExporter: ExporterOTLP, TraceSamplingRate: 0.5},
			wantErr: true,
		},
		{
			name:    "otlp metrics without endpoint",
			config:  Config{MetricsExporter: ExporterOTLP, TracingExporter: ExporterNone, TraceSamplingRate: 0.5},
			wantErr: true,
		},
		{
			name: "otlp with endpoint",
			config: Config{
				MetricsExporter:   ExporterOTLP,
				TracingExporter:   ExporterOTLP,
				OTLPEndpoint:      "localhost:4318",
				TraceSamplingRate: 0.5,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
