package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestInit_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.log")

	lg, err := Init(Config{Level: "debug", FileName: path, MaxSize: 1}, false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	defer zap.ReplaceGlobals(zap.NewNop())

	zap.L().Info("balance checked", zap.String("balance", "4000.84"))
	_ = lg.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, `"msg":"balance checked"`) || !strings.Contains(line, `"balance":"4000.84"`) {
		t.Fatalf("unexpected log output: %s", line)
	}
}

func TestInit_RejectsUnknownLevel(t *testing.T) {
	if _, err := Init(Config{Level: "loud"}, false); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
