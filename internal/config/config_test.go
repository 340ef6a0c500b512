package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ZENSEND_URL", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("SCHEDULER_INTERVAL", "")

	cfg := New()

	if cfg.ZenSend.URL != "https://api.zensend.io" || cfg.ZenSend.VerifyURL != "https://verify.zensend.io" {
		t.Fatalf("unexpected provider urls %q %q", cfg.ZenSend.URL, cfg.ZenSend.VerifyURL)
	}
	if cfg.ZenSend.KeepAlive != 5*time.Second {
		t.Fatalf("unexpected keep-alive %s", cfg.ZenSend.KeepAlive)
	}
	if cfg.Scheduler.Interval != 5*time.Second {
		t.Fatalf("unexpected scheduler interval %s", cfg.Scheduler.Interval)
	}
	if cfg.KafkaEnabled() {
		t.Fatalf("kafka should be disabled without brokers")
	}
}

func TestNew_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gateway.toml")
	content := `
[zensend]
apiKey = "from-file"
url = "http://file.local"
requestTimeout = "3s"

[worker]
batchSize = 7

[kafka]
brokers = ["k1:9092"]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("ZENSEND_API_KEY", "")
	t.Setenv("ZENSEND_URL", "http://env.local")
	t.Setenv("ZENSEND_REQUEST_TIMEOUT", "")
	t.Setenv("MESSAGE_BATCH_SIZE", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg := New()

	if cfg.ZenSend.APIKey != "from-file" {
		t.Fatalf("expected api key from file, got %q", cfg.ZenSend.APIKey)
	}
	if cfg.ZenSend.URL != "http://env.local" {
		t.Fatalf("env should override file, got %q", cfg.ZenSend.URL)
	}
	if cfg.ZenSend.RequestTimeout != 3*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.ZenSend.RequestTimeout)
	}
	if cfg.Worker.BatchSize != 7 {
		t.Fatalf("unexpected batch size %d", cfg.Worker.BatchSize)
	}
	if !cfg.KafkaEnabled() || cfg.Kafka.Brokers[0] != "k1:9092" {
		t.Fatalf("unexpected brokers %v", cfg.Kafka.Brokers)
	}
}

func TestGetList(t *testing.T) {
	t.Setenv("TEST_LIST", " a:1 , ,b:2 ")

	got := getList("TEST_LIST", nil)
	if len(got) != 2 || got[0] != "a:1" || got[1] != "b:2" {
		t.Fatalf("unexpected list %v", got)
	}
}

func TestIsDevelopment(t *testing.T) {
	for env, want := range map[string]bool{"development": true, "DEV": true, "local": true, "production": false, "": false} {
		c := &Config{}
		c.App.Env = env
		if got := c.IsDevelopment(); got != want {
			t.Errorf("IsDevelopment(%q) = %v, want %v", env, got, want)
		}
	}
}
