package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"pkg.jsn.cam/talentfixtures/internal/catalog"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNoArgumentsWritesArgsJSON(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := execute(t)
	if err != nil {
		t.Fatalf("fixturegen failed: %v", err)
	}
	if !strings.Contains(out, "Generated args.json with 500 entries") {
		t.Errorf("unexpected completion message: %q", out)
	}

	data, err := os.ReadFile("args.json")
	if err != nil {
		t.Fatal(err)
	}
	var rows [][]string
	if err := json.Unmarshal(data, &rows); err != nil {
		t.Fatalf("args.json is not an array of string arrays: %v", err)
	}
	if len(rows) != 500 {
		t.Errorf("got %d rows, want 500", len(rows))
	}
	if got := rows[7]; got[0] != "talent0007" || got[1] != "User7" || got[2] != "Test7" {
		t.Errorf("row 7 = %v", got)
	}
}

func TestGenerateThenVerify(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "creds.json.gz")

	if _, err := execute(t, "-g", "credential", "-n", "40", "-o", path, "--seed", "8"); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	out, err := execute(t, "verify", "-g", "credential", "-n", "40", path)
	if err != nil {
		t.Fatalf("verify failed: %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "ok") {
		t.Errorf("verify output = %q", out)
	}
}

func TestVerifyReportsViolations(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")

	if _, err := execute(t, "-n", "5", "-o", good); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(`[["talent0000","User0","Test0","Go","MBA","MIT"]]`), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "verify", good, bad)
	if !errors.Is(err, errVerifyFailed) {
		t.Fatalf("error = %v, want errVerifyFailed", err)
	}
	if !strings.Contains(out, "ok    "+good) || !strings.Contains(out, "FAIL  "+bad) {
		t.Errorf("unexpected report:\n%s", out)
	}
	for _, field := range []string{"skills", "degree", "school"} {
		if !strings.Contains(out, field) {
			t.Errorf("report does not mention %s:\n%s", field, out)
		}
	}
}

func TestVerifyReportsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	missing := filepath.Join(dir, "missing.json")

	if _, err := execute(t, "-n", "5", "-o", good); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "verify", good, missing)
	if !errors.Is(err, errVerifyFailed) {
		t.Fatalf("error = %v, want errVerifyFailed", err)
	}
	if !strings.Contains(out, "ok    "+good) {
		t.Errorf("valid file not reported:\n%s", out)
	}
	if !strings.Contains(out, "FAIL  "+missing) {
		t.Errorf("missing file not reported:\n%s", out)
	}
}

func TestMissingCatalogNotCreated(t *testing.T) {
	db := filepath.Join(t.TempDir(), "fixtures.db")

	if _, err := execute(t, "history", "--catalog", db); !errors.Is(err, catalog.ErrNoCatalog) {
		t.Errorf("history error = %v, want ErrNoCatalog", err)
	}
	if _, err := execute(t, "replay", "--catalog", db, "abcd"); !errors.Is(err, catalog.ErrNoCatalog) {
		t.Errorf("replay error = %v, want ErrNoCatalog", err)
	}
	if _, err := os.Stat(db); !os.IsNotExist(err) {
		t.Error("catalog file created by a read-only command")
	}
}

func TestCatalogHistoryAndReplay(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "fixtures.db")
	path := filepath.Join(dir, "args.json")

	out, err := execute(t, "-n", "25", "-o", path, "--catalog", db)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	m := regexp.MustCompile(`Run (\S+) recorded`).FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("run id not printed: %q", out)
	}
	runID := m[1]

	out, err = execute(t, "history", "--catalog", db)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, runID) {
		t.Errorf("history does not list %s:\n%s", runID, out)
	}

	out, err = execute(t, "history", "--catalog", db, runID[:8])
	if err != nil {
		t.Fatalf("history show failed: %v", err)
	}
	if !strings.Contains(out, "Records:    25") {
		t.Errorf("unexpected run details:\n%s", out)
	}

	replayed := filepath.Join(dir, "replay.json")
	if _, err := execute(t, "replay", "--catalog", db, "-o", replayed, runID[:8]); err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	a, _ := os.ReadFile(path)
	b, _ := os.ReadFile(replayed)
	if !bytes.Equal(a, b) {
		t.Error("replayed fixture differs from the original")
	}
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"talent", "credential"} {
		if !strings.Contains(out, name) {
			t.Errorf("list does not mention %s:\n%s", name, out)
		}
	}
}

func TestInvalidFlags(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := execute(t, "-n", "-3"); err == nil {
		t.Error("negative count accepted")
	}
	if _, err := execute(t, "-g", "unknown"); err == nil {
		t.Error("unknown generator accepted")
	}
	if _, err := os.Stat("args.json"); !os.IsNotExist(err) {
		t.Error("args.json written despite invalid flags")
	}
}
