package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhubert/huddle/internal/errors"
)

// setupTestLogger creates a temp log file and initializes the logger with it.
func setupTestLogger(t *testing.T) string {
	t.Helper()
	Reset()

	logPath := filepath.Join(t.TempDir(), "test-debug.log")
	if err := Init(logPath); err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}
	t.Cleanup(Reset)
	return logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

func TestLevels(t *testing.T) {
	logPath := setupTestLogger(t)
	SetDebug(true)

	log := WithComponent("test")
	log.Debug("debug one")
	log.Info("info two")
	log.Warn("warn three")
	log.Error("error four")

	content := readLog(t, logPath)
	for _, want := range []string{"level=DEBUG msg=\"debug one\"", "level=INFO msg=\"info two\"", "level=WARN msg=\"warn three\"", "level=ERROR msg=\"error four\""} {
		if !strings.Contains(content, want) {
			t.Errorf("log should contain %q, got:\n%s", want, content)
		}
	}
}

func TestDebug_SuppressedAtInfo(t *testing.T) {
	logPath := setupTestLogger(t)
	SetDebug(false)

	log := WithComponent("test")
	log.Debug("hidden-debug-marker")
	log.Info("visible-info-marker")

	content := readLog(t, logPath)
	if strings.Contains(content, "hidden-debug-marker") {
		t.Error("debug message should not be written at info level")
	}
	if !strings.Contains(content, "visible-info-marker") {
		t.Error("info message should be written at info level")
	}
}

func TestWithComponent(t *testing.T) {
	logPath := setupTestLogger(t)

	WithComponent("wsclient").Info("dialed", "url", "ws://localhost:8080/ws")

	content := readLog(t, logPath)
	if !strings.Contains(content, "component=wsclient") {
		t.Errorf("expected component attribute, got:\n%s", content)
	}
	if !strings.Contains(content, "url=ws://localhost:8080/ws") {
		t.Errorf("expected url attribute, got:\n%s", content)
	}
}

func TestWithSession(t *testing.T) {
	logPath := setupTestLogger(t)

	WithSession("abc-123").Info("mounted")

	if content := readLog(t, logPath); !strings.Contains(content, "sessionID=abc-123") {
		t.Errorf("expected sessionID attribute, got:\n%s", content)
	}
}

func TestInit_UnwritablePath(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	err := Init(filepath.Join(t.TempDir(), "missing", "debug.log"))
	if err == nil {
		t.Fatal("Init should fail when the directory does not exist")
	}
	if !errors.Is(err, errors.KindIO) {
		t.Errorf("Init error kind = %v, want %v", errors.GetKind(err), errors.KindIO)
	}
}

func TestPath(t *testing.T) {
	logPath := setupTestLogger(t)
	if got := Path(); got != logPath {
		t.Errorf("Path() = %q, want %q", got, logPath)
	}
}

func TestConcurrentLogging(t *testing.T) {
	setupTestLogger(t)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(n int) {
			for j := 0; j < 100; j++ {
				WithComponent("test").Info("concurrent test", "n", n, "j", j)
			}
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestReset(t *testing.T) {
	tmpDir := t.TempDir()
	logPath1 := filepath.Join(tmpDir, "log1.log")
	Reset()
	if err := Init(logPath1); err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}
	WithComponent("test").Info("message to log1")

	Reset()

	logPath2 := filepath.Join(tmpDir, "log2.log")
	if err := Init(logPath2); err != nil {
		t.Fatalf("Failed to reinit logger: %v", err)
	}
	WithComponent("test").Info("message to log2")
	defer Reset()

	content1 := readLog(t, logPath1)
	if !strings.Contains(content1, "message to log1") || strings.Contains(content1, "message to log2") {
		t.Errorf("log1 has wrong content:\n%s", content1)
	}
	content2 := readLog(t, logPath2)
	if !strings.Contains(content2, "message to log2") || strings.Contains(content2, "message to log1") {
		t.Errorf("log2 has wrong content:\n%s", content2)
	}
}

func TestClose_ThenLogDoesNotPanic(t *testing.T) {
	setupTestLogger(t)
	Close()
	WithComponent("test").Info("after close")
}
