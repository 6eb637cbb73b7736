package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"cardcredit/internal/domain/auth"
)

func TestRunPrintsTotals(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-salary", "40,000,000", "-credit", "8,000,000", "-check", "5,000,000"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "900,000원") {
		t.Fatalf("expected basic deduction in output, got %s", out)
	}
	if !strings.Contains(out, "체크카드 일반") {
		t.Fatalf("expected breakdown labels, got %s", out)
	}
}

func TestRunMissingSalary(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-credit", "1,000"}, &stdout, &stderr)
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "총급여액") {
		t.Fatalf("expected missing salary prompt, got %q", stderr.String())
	}
}

func TestRunJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-json", "-salary", "80000000", "-market", "10,000,000"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr.String())
	}
	var res struct {
		Bracket string `json:"bracket"`
		Extra   int64  `json:"extraDeduction"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &res); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if res.Bracket != "high" || res.Extra != 2_000_000 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRunIssueToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-issue-token", "-subject", "ops"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr.String())
	}
	claims, err := auth.ParseToken("cli-secret", strings.TrimSpace(stdout.String()))
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != "ops" {
		t.Fatalf("expected subject ops, got %q", claims.Subject)
	}
}
