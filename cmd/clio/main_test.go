package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"clio/internal/collection"
)

// fakeKleio is a minimal in-memory Kleio server for CLI tests. Mutations are
// recorded and answered with the current snapshot, mirroring the real server.
type fakeKleio struct {
	mu        sync.Mutex
	snapshot  collection.Snapshot
	plays     []map[string]any
	cleanings []map[string]any
	export    string
}

func (f *fakeKleio) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	writeSnapshot := func() {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(f.snapshot)
	}

	switch {
	case r.Method == http.MethodGet && (r.URL.Path == "/collection" || r.URL.Path == "/collection/resync"):
		writeSnapshot()
	case r.Method == http.MethodGet && r.URL.Path == "/export":
		fmt.Fprint(w, f.export)
	case r.Method == http.MethodPost && r.URL.Path == "/plays":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.plays = append(f.plays, body)
		writeSnapshot()
	case r.Method == http.MethodPost && r.URL.Path == "/cleanings":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.cleanings = append(f.cleanings, body)
		writeSnapshot()
	default:
		http.NotFound(w, r)
	}
}

func testSnapshot(now time.Time) collection.Snapshot {
	year := 1959
	runtime := 2700
	playedAt := collection.NewTimestamp(now.AddDate(0, 0, -3))
	stylusID := "sty-1"

	plays := []collection.PlayEvent{
		{ID: "play-1", ReleaseID: "rel-1", StylusID: &stylusID, PlayedAt: playedAt},
	}

	return collection.Snapshot{
		Releases: []collection.Release{
			{
				ID:           "rel-1",
				Title:        "Kind of Blue",
				Year:         &year,
				PlayDuration: &runtime,
				Artists:      []collection.Artist{{Name: "Miles Davis"}},
				Genres:       []string{"Jazz"},
				PlayHistory:  plays,
			},
			{
				ID:      "rel-2",
				Title:   "Blue Train",
				Artists: []collection.Artist{{Name: "John Coltrane"}},
				Genres:  []string{"Jazz"},
				CleaningHistory: []collection.CleaningEvent{
					{ID: "clean-1", ReleaseID: "rel-2", CleanedAt: collection.NewTimestamp(now.AddDate(0, 0, -10))},
				},
			},
		},
		Styluses: []collection.Stylus{
			{ID: "sty-1", Name: "Ortofon 2M Blue", Active: true, Owned: true},
		},
		PlayHistory: plays,
		LastSynced:  collection.NewTimestamp(now),
	}
}

type cliTestEnv struct {
	server     *fakeKleio
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	t.Setenv("KLEIO_API_URL", "")
	t.Setenv("KLEIO_API_TOKEN", "")

	fake := &fakeKleio{
		snapshot: testSnapshot(time.Now()),
		export:   `{"releases":[]}`,
	}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[api]
base_url = %q

[paths]
log_dir = %q
state_dir = %q
export_dir = %q
`,
		srv.URL,
		filepath.Join(base, "logs"),
		filepath.Join(base, "state"),
		filepath.Join(base, "exports"),
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{server: fake, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestCLICollectionListAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "collection", "list")
	if err != nil {
		t.Fatalf("collection list: %v", err)
	}
	requireContains(t, out, "Kind of Blue")
	requireContains(t, out, "Blue Train")
	requireContains(t, out, "2 releases")

	out, _, err = runCLI(t, env.configPath, "collection", "list", "--query", "coltrane")
	if err != nil {
		t.Fatalf("collection list --query: %v", err)
	}
	requireContains(t, out, "Blue Train")
	if strings.Contains(out, "Kind of Blue") {
		t.Fatalf("query should have filtered out Kind of Blue:\n%s", out)
	}

	out, _, err = runCLI(t, env.configPath, "collection", "show", "kind of blue")
	if err != nil {
		t.Fatalf("collection show: %v", err)
	}
	requireContains(t, out, "Miles Davis")
	requireContains(t, out, "1959")
}

func TestCLIStatusTable(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	// Neither release has a cleaning on record.
	requireContains(t, out, "Needs cleaning")
	requireContains(t, out, "Played this week")
	requireContains(t, out, "Never played")
}

func TestCLIPlayLogWithCleaning(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "play", "log", "kind of blue",
		"--stylus", "active", "--notes", "late night", "--clean")
	if err != nil {
		t.Fatalf("play log: %v", err)
	}
	requireContains(t, out, "Logged play of Kind of Blue")
	requireContains(t, out, "Logged cleaning of Kind of Blue")

	env.server.mu.Lock()
	defer env.server.mu.Unlock()
	if len(env.server.plays) != 1 {
		t.Fatalf("expected 1 recorded play, got %d", len(env.server.plays))
	}
	play := env.server.plays[0]
	if play["releaseId"] != "rel-1" {
		t.Fatalf("play releaseId = %v, want rel-1", play["releaseId"])
	}
	if play["stylusId"] != "sty-1" {
		t.Fatalf("play stylusId = %v, want sty-1", play["stylusId"])
	}
	if play["notes"] != "late night" {
		t.Fatalf("play notes = %v", play["notes"])
	}
	if len(env.server.cleanings) != 1 {
		t.Fatalf("expected 1 recorded cleaning, got %d", len(env.server.cleanings))
	}
	if env.server.cleanings[0]["cleanedAt"] != play["playedAt"] {
		t.Fatalf("cleaning time %v does not match play time %v",
			env.server.cleanings[0]["cleanedAt"], play["playedAt"])
	}
}

func TestCLIPlayList(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "play", "list", "--range", "30d")
	if err != nil {
		t.Fatalf("play list: %v", err)
	}
	requireContains(t, out, "Kind of Blue")
	requireContains(t, out, "Ortofon 2M Blue")
	requireContains(t, out, "1 plays")
}

func TestCLICleaningList(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "cleaning", "list", "--range", "30d")
	if err != nil {
		t.Fatalf("cleaning list: %v", err)
	}
	requireContains(t, out, "Blue Train")
	requireContains(t, out, "clean-1")
	requireContains(t, out, "1 cleanings")
}

func TestCLIStatsCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "stats", "frequency", "--group", "monthly", "--range", "90d")
	if err != nil {
		t.Fatalf("stats frequency: %v", err)
	}
	requireContains(t, out, "Monthly Play Frequency")

	out, _, err = runCLI(t, env.configPath, "stats", "duration", "--group", "weekly", "--range", "30d")
	if err != nil {
		t.Fatalf("stats duration: %v", err)
	}
	requireContains(t, out, "Weekly Listening Time")
	// rel-1 runs 2700 seconds, so one play is 45 minutes.
	requireContains(t, out, "45")

	out, _, err = runCLI(t, env.configPath, "stats", "distribution", "--by", "artist", "--range", "all")
	if err != nil {
		t.Fatalf("stats distribution: %v", err)
	}
	requireContains(t, out, "Plays By Artist")
	requireContains(t, out, "Miles Davis")
}

func TestCLISyncPrintsSummary(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "sync")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	requireContains(t, out, "Sync complete: 2 releases")
}

func TestCLIExportWritesFile(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(env.baseDir, "out.json")
	out, _, err := runCLI(t, env.configPath, "export", "--out", target)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, target)

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(data) != `{"releases":[]}` {
		t.Fatalf("unexpected export payload: %q", data)
	}
}

func TestCLIStylusList(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "stylus", "list")
	if err != nil {
		t.Fatalf("stylus list: %v", err)
	}
	requireContains(t, out, "Ortofon 2M Blue")
	requireContains(t, out, "yes")
}
