package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	prev := color.Output
	color.Output = &buf
	defer func() { color.Output = prev }()

	cmd := New()
	cmd.SetArgs(args)
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("ledger %s: %v\n%s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

func TestAddListDelete(t *testing.T) {
	t.Setenv("LEDGER_PATH", t.TempDir())
	t.Setenv("LEDGER_CONFIG_PATH", t.TempDir())

	var added struct {
		ID     string `json:"id"`
		Payee  string `json:"payee"`
		Amount string `json:"amount"`
	}
	out := run(t, "add", "-c", "Food/Out", "--on", "2024-03-10", "--json", "--", "-4,20", "corner", "cafe")
	if err := json.Unmarshal([]byte(out), &added); err != nil {
		t.Fatalf("decode add output %q: %v", out, err)
	}
	if added.Payee != "corner cafe" || added.Amount != "-4.2" {
		t.Fatalf("unexpected transaction %+v", added)
	}
	run(t, "add", "--json", "2500", "employer")

	var listed struct {
		Matched      int    `json:"matched"`
		Balance      string `json:"balance"`
		Transactions []struct {
			ID string `json:"id"`
		} `json:"transactions"`
	}
	out = run(t, "list", "--json", "-c", "Food")
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("decode list output %q: %v", out, err)
	}
	if listed.Matched != 1 || listed.Transactions[0].ID != added.ID || listed.Balance != "2495.80" {
		t.Fatalf("unexpected listing %+v", listed)
	}

	out = run(t, "delete", added.ID)
	if !strings.Contains(out, "deleted corner cafe -4.20") {
		t.Fatalf("unexpected delete output %q", out)
	}
	out = run(t, "list", "--json")
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("decode list output %q: %v", out, err)
	}
	if listed.Matched != 1 || listed.Balance != "2500.00" {
		t.Fatalf("unexpected listing after delete %+v", listed)
	}
}

func TestAddReportsErrorsAsJSON(t *testing.T) {
	t.Setenv("LEDGER_PATH", t.TempDir())
	t.Setenv("LEDGER_CONFIG_PATH", t.TempDir())

	out := run(t, "add", "--json", "--", "lots", "cafe")
	var res map[string]string
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if !strings.Contains(res["error"], "amount") {
		t.Fatalf("unexpected error %q", res["error"])
	}
}
