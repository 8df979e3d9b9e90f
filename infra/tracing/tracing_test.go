package tracing

import "testing"

func TestParseOTLPEndpoint(t *testing.T) {
	cases := map[string]string{
		"":                        "",
		"collector:4318":          "collector:4318",
		"http://collector":        "collector:4318",
		"https://collector:14318": "collector:14318",
	}
	for in, want := range cases {
		got, err := parseOTLPEndpoint(in)
		if err != nil {
			t.Fatalf("parseOTLPEndpoint(%q) returned %v", in, err)
		}
		if got != want {
			t.Errorf("parseOTLPEndpoint(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInit_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	if shutdown := Init("rental"); shutdown != nil {
		t.Fatalf("expected nil shutdown when tracing is disabled")
	}
}
