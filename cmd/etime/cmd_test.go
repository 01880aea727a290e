package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/daviddao/etime/pkg/etime"
	"github.com/daviddao/etime/pkg/verify"
)

// run executes the CLI with args and returns stdout, stderr and the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := newApp(&stdout, &stderr)
	err := a.command().Run(context.Background(), append([]string{"etime"}, args...))
	return stdout.String(), stderr.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, _, err := run(t, args...)
	if err != nil {
		t.Fatalf("etime %s: %v", strings.Join(args, " "), err)
	}
	return out
}

// --- decompose ---

func TestDecompose(t *testing.T) {
	out := mustRun(t, "decompose", "951782400")
	if want := "2000-02-29 00:00:00 Tue yday=59\n"; out != want {
		t.Fatalf("decompose: got %q, want %q", out, want)
	}
}

func TestDecompose_Alias(t *testing.T) {
	out := mustRun(t, "gm", "0", "86400")
	want := "1970-01-01 00:00:00 Thu yday=0\n1970-01-02 00:00:00 Fri yday=1\n"
	if out != want {
		t.Fatalf("gm: got %q, want %q", out, want)
	}
}

func TestDecompose_UnixFlag(t *testing.T) {
	out := mustRun(t, "--epoch", "ntp", "decompose", "--unix", "0")
	if want := "1970-01-01 00:00:00 Thu yday=0\n"; out != want {
		t.Fatalf("decompose --unix: got %q, want %q", out, want)
	}
}

func TestDecompose_EpochFromEnv(t *testing.T) {
	t.Setenv("ETIME_EPOCH", "y2k")
	out := mustRun(t, "decompose", "0")
	if want := "2000-01-01 00:00:00 Sat yday=0\n"; out != want {
		t.Fatalf("decompose with ETIME_EPOCH=y2k: got %q, want %q", out, want)
	}
}

func TestDecompose_CustomYear(t *testing.T) {
	out := mustRun(t, "-e", "1750", "decompose", "0")
	if want := "1750-01-01 00:00:00 Thu yday=0\n"; out != want {
		t.Fatalf("decompose -e 1750: got %q, want %q", out, want)
	}
}

func TestDecompose_JSON(t *testing.T) {
	out := mustRun(t, "--json", "decompose", "951782400")
	var got tmJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if got.Epoch != "unix" || got.Timestamp != 951782400 || got.Unix != 951782400 {
		t.Fatalf("json header: got %+v", got)
	}
	if got.Fields.Year != 100 || got.Fields.Mon != 1 || got.Fields.MDay != 29 || got.Fields.WDay != 2 {
		t.Fatalf("json fields: got %+v", got.Fields)
	}
}

func TestDecompose_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no argument", []string{"decompose"}},
		{"not a number", []string{"decompose", "soon"}},
		{"unix before epoch", []string{"-e", "y2k", "decompose", "--unix", "0"}},
		{"unknown epoch", []string{"-e", "julian", "decompose", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := run(t, tt.args...); err == nil {
				t.Fatalf("etime %v: expected error", tt.args)
			}
		})
	}

	_, _, err := run(t, "-e", "julian", "decompose", "0")
	if !errors.Is(err, etime.ErrUnknownEpoch) {
		t.Fatalf("unknown epoch: got %v", err)
	}
}

// --- compose ---

func TestCompose(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"compose", "2000", "2", "29"}, "951782400\tunix=951782400\n"},
		{[]string{"mk", "1970", "1", "1", "0", "0", "1"}, "1\tunix=1\n"},
		{[]string{"-e", "ntp", "compose", "1970", "1", "1"}, "2208988800\tunix=0\n"},
		{[]string{"compose", "1999", "13", "1"}, "946684800\tunix=946684800\n"},
	}
	for _, tt := range tests {
		if out := mustRun(t, tt.args...); out != tt.want {
			t.Fatalf("etime %v: got %q, want %q", tt.args, out, tt.want)
		}
	}
}

func TestCompose_JSON(t *testing.T) {
	out := mustRun(t, "--json", "-e", "filetime", "compose", "1601", "1", "1", "0", "0", "0")
	var got tmJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if got.Timestamp != 0 || got.Unix != -11644473600 || got.Date != "1601-01-01 00:00:00" {
		t.Fatalf("compose json: got %+v", got)
	}
}

func TestCompose_Errors(t *testing.T) {
	for _, args := range [][]string{
		{"compose", "2000", "2"},
		{"compose", "2000", "2", "29", "1"},
		{"compose", "2000", "feb", "29"},
	} {
		if _, _, err := run(t, args...); err == nil {
			t.Fatalf("etime %v: expected error", args)
		}
	}
}

// --- epochs ---

func TestEpochs(t *testing.T) {
	out := mustRun(t, "epochs")
	for _, name := range profileNames() {
		if !strings.Contains(out, name) {
			t.Fatalf("epochs output missing %q:\n%s", name, out)
		}
	}
	if !strings.Contains(out, "unix") || strings.Count(out, "<-- selected") != 1 {
		t.Fatalf("epochs should mark exactly one selection:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines != 1+len(etime.Profiles()) {
		t.Fatalf("epochs: got %d lines, want %d", lines, 1+len(etime.Profiles()))
	}
}

func TestEpochs_CustomAppended(t *testing.T) {
	out := mustRun(t, "--json", "-e", "2100", "epochs")
	var got []struct {
		Name     string `json:"name"`
		Selected bool   `json:"selected"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	last := got[len(got)-1]
	if len(got) != len(etime.Profiles())+1 || last.Name != "2100" || !last.Selected {
		t.Fatalf("epochs -e 2100: got %+v", got)
	}
}

// --- now ---

func TestNow_Pinned(t *testing.T) {
	out := mustRun(t, "now", "--at", "951782400", "--count", "2", "--interval", "24h")
	want := "2000-02-29 00:00:00 Tue yday=59\n2000-03-01 00:00:00 Wed yday=60\n"
	if out != want {
		t.Fatalf("now --at: got %q, want %q", out, want)
	}
}

func TestNow_WallClock(t *testing.T) {
	out := mustRun(t, "--json", "now")
	var got tmJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if got.Fields.FullYear() < 2024 {
		t.Fatalf("now: implausible year %d", got.Fields.FullYear())
	}
}

func TestNow_Errors(t *testing.T) {
	if _, _, err := run(t, "now", "--interval", "10ms"); err == nil {
		t.Fatal("sub-second interval should be rejected")
	}
	if _, _, err := run(t, "-e", "y2k", "now", "--at", "0"); err == nil {
		t.Fatal("--at before the epoch should be rejected")
	}
}

// --- check ---

func TestCheck(t *testing.T) {
	out, stderr, err := run(t, "check", "-n", "200", "--workers", "2", "--verbose")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.HasPrefix(out, "unix vs stdlib: checked 400 timestamps") || !strings.HasSuffix(out, ": ok\n") {
		t.Fatalf("check: got %q", out)
	}
	if !strings.Contains(stderr, "etime: checking unix against stdlib") {
		t.Fatalf("check --verbose: got stderr %q", stderr)
	}
}

func TestCheck_AllAgainstSQLite(t *testing.T) {
	out := mustRun(t, "--json", "check", "--all", "--ref", "sqlite", "-n", "100")
	var got []checkResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if len(got) != len(etime.Profiles()) {
		t.Fatalf("check --all: got %d results, want %d", len(got), len(etime.Profiles()))
	}
	for _, r := range got {
		if !r.OK || r.Checked != 200 || r.Reference != "sqlite" {
			t.Fatalf("check --all: got %+v", r)
		}
	}
}

func TestCheck_UnknownReference(t *testing.T) {
	if _, _, err := run(t, "check", "--ref", "abacus"); err == nil {
		t.Fatal("unknown reference should be rejected")
	}
}

func TestCheckResults(t *testing.T) {
	reports := []verify.Report{
		{Calendar: "unix", Reference: "stdlib", Checked: 10},
		{Calendar: "ntp", Reference: "stdlib", Checked: 3, Mismatch: &verify.Mismatch{Timestamp: 7, Composed: 8}},
	}
	got := checkResults(reports)
	if !got[0].OK || got[0].Mismatch != "" {
		t.Fatalf("passing report: got %+v", got[0])
	}
	if got[1].OK || !strings.Contains(got[1].Mismatch, "timestamp 7") {
		t.Fatalf("failing report: got %+v", got[1])
	}
}

func TestFormatTm(t *testing.T) {
	tm := etime.FileTime.Decompose(0)
	if got := formatTm(tm); got != "1601-01-01 00:00:00" {
		t.Fatalf("formatTm: got %q", got)
	}
}
