package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"remuxer/internal/remux"
	"remuxer/internal/staging"
	"remuxer/internal/testsupport"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "strip=none")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, err = env.run(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := env.run(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
	if _, err := env.run(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidateRejectsBadPolicy(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithPolicy("everything", "none", "none"))
	if _, err := env.run(t, "config", "validate"); err == nil {
		t.Fatal("expected invalid strip mode to fail validation")
	}
}

func TestPlanShowsActions(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithPolicy("audio", "none", "none"))
	path := env.addContainer(t, "movie.mkv")

	out, err := env.run(t, "plan", path)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	requireContains(t, out, "strip")
	requireContains(t, out, "keep")
	requireContains(t, out, "Scratch:")

	out, err = env.run(t, "plan", "--json", path)
	if err != nil {
		t.Fatalf("plan --json: %v", err)
	}
	var plan remux.Plan
	if err := json.Unmarshal([]byte(out), &plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if len(plan.Sets.Strip) != 1 || plan.Sets.Strip[0].ID != 2 {
		t.Fatalf("unexpected strip set: %+v", plan.Sets.Strip)
	}
	if env.tools.muxCount() != 0 {
		t.Fatal("plan must not mux")
	}
}

func TestPlanNothingToDo(t *testing.T) {
	env := setupCLITestEnv(t)
	path := env.addContainer(t, "movie.mkv")

	out, err := env.run(t, "plan", path)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	requireContains(t, out, "Nothing to do.")
}

func TestHistoryClearAndForget(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithPolicy("audio", "none", "none"))
	first := env.addContainer(t, "a.mkv")
	env.addContainer(t, "b.mkv")
	if _, err := env.run(t, "scan"); err != nil {
		t.Fatalf("scan: %v", err)
	}

	out, err := env.run(t, "history", "forget", first)
	if err != nil {
		t.Fatalf("history forget: %v", err)
	}
	requireContains(t, out, "Forgot "+first)

	out, err = env.run(t, "history", "clear")
	if err != nil {
		t.Fatalf("history clear: %v", err)
	}
	requireContains(t, out, "Cleared 1 history entries")

	out, err = env.run(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No files recorded")
}

func TestCleanRemovesStaleScratch(t *testing.T) {
	env := setupCLITestEnv(t)
	container := filepath.Join(env.library, "movie.mkv")
	scratch := staging.ScratchDir(container)
	testsupport.WriteFile(t, filepath.Join(scratch, "1.sup"), 8)
	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(scratch, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	out, err := env.run(t, "clean", "--list")
	if err != nil {
		t.Fatalf("clean --list: %v", err)
	}
	requireContains(t, out, scratch)

	out, err = env.run(t, "clean")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	requireContains(t, out, "Removed 1 scratch directories")
	if _, err := os.Stat(scratch); !os.IsNotExist(err) {
		t.Fatalf("scratch dir still present: %v", err)
	}
}

func TestDoctorReportsTools(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "doctor")
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "== Tools ==")
	requireContains(t, out, "mkvmerge v80.0")
	requireContains(t, out, "Library root")
	requireContains(t, out, "All checks passed")
}

func TestDoctorFailsWithoutMkvmerge(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Tools.MkvMerge = "mkvmerge-not-installed"
	writeTestConfig(t, env.configPath, env.cfg)

	out, err := env.run(t, "doctor")
	if err == nil {
		t.Fatalf("expected doctor failure, output:\n%s", out)
	}
	requireContains(t, out, "[ERROR]")
}

func TestConfigValidateSuggestsLanguageTags(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithLanguages("eng", "fr"))

	out, err := env.run(t, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, `language "fr" never matches`)
	requireContains(t, out, `use "fre"`)
}

func TestLogsPrintsTail(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteText(t, filepath.Join(env.cfg.Paths.LogDir, "remuxer-2026-10-18.log"), "old\n")
	testsupport.WriteText(t, filepath.Join(env.cfg.Paths.LogDir, "remuxer-2026-10-19.log"), "one\ntwo\nthree\n")

	out, err := env.run(t, "logs", "-n", "2")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if out != "two\nthree\n" {
		t.Fatalf("logs output = %q", out)
	}
}
