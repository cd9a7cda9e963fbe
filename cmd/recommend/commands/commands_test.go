package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"movierec/internal/models"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
)

const testCatalog = `index,title,genres,keywords,tagline,cast,director
0,Avatar,Action Science Fiction,space war,,Sam Worthington,James Cameron
1,Aliens,Horror Action Science Fiction,space marine,,Sigourney Weaver,James Cameron
2,Titanic,Drama Romance,ship iceberg,,Kate Winslet,James Cameron
3,Batman,Fantasy Action,dc comics,,Michael Keaton,Tim Burton
`

func writeCatalog(t *testing.T) string {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	path := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(path, []byte(testCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	if cmd.Use != "recommend" {
		t.Errorf("Use = %q, want recommend", cmd.Use)
	}
	want := map[string]bool{"query": false, "similar": false, "search": false, "token": false, "hash-password": false, "version": false}
	for _, c := range cmd.Commands() {
		want[c.Name()] = true
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	cmd := NewRootCmd()

	tests := []struct {
		flagName  string
		shorthand string
		defValue  string
	}{
		{"format", "", "table"},
		{"quiet", "q", "false"},
		{"catalog", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.flagName, func(t *testing.T) {
			flag := cmd.PersistentFlags().Lookup(tt.flagName)
			if flag == nil {
				t.Fatalf("--%s flag not found", tt.flagName)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("--%s shorthand = %q, want %q", tt.flagName, flag.Shorthand, tt.shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("--%s default = %q, want %q", tt.flagName, flag.DefValue, tt.defValue)
			}
		})
	}
}

func TestRootCmd_BadFormat(t *testing.T) {
	if _, err := run(t, "--format", "xml", "version"); err == nil {
		t.Error("expected error for --format xml")
	}
}

func TestQuery_Table(t *testing.T) {
	path := writeCatalog(t)

	out, err := run(t, "--catalog", path, "query", "--k", "2", "Avatr")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !strings.Contains(out, "Movies similar to Avatar:") {
		t.Errorf("missing header in %q", out)
	}
	if !strings.Contains(out, "Aliens") {
		t.Errorf("missing Aliens in %q", out)
	}
}

func TestQuery_JSON(t *testing.T) {
	path := writeCatalog(t)

	out, err := run(t, "--catalog", path, "--format", "json", "query", "--k", "1", "Batmn")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	var res models.RecResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if res.Match != "Batman" || len(res.Items) != 1 {
		t.Errorf("result = %+v", res)
	}
}

func TestQuery_Outcomes(t *testing.T) {
	path := writeCatalog(t)

	if _, err := run(t, "--catalog", path, "query", "zzzzzzzzzzzz"); !errors.Is(err, errNotFound) {
		t.Errorf("no match err = %v, want errNotFound", err)
	}
	out, err := run(t, "--catalog", path, "query", "")
	if err != nil || out != "" {
		t.Errorf("empty query = %q, %v; want no output", out, err)
	}
	if _, err := run(t, "--catalog", path, "query", "   "); !errors.Is(err, errNotFound) {
		t.Errorf("blank query err = %v, want errNotFound", err)
	}
	if _, err := run(t, "--catalog", path, "query", "--k", "51", "Avatar"); err == nil {
		t.Error("expected error for --k 51")
	}
}

func TestQuery_MissingCatalog(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	if _, err := run(t, "--catalog", filepath.Join(t.TempDir(), "nope.csv"), "query", "Avatar"); err == nil {
		t.Error("expected load error")
	}
}

func TestSimilar(t *testing.T) {
	path := writeCatalog(t)

	out, err := run(t, "--catalog", path, "similar", "--k", "1", "0")
	if err != nil {
		t.Fatalf("similar: %v", err)
	}
	if !strings.Contains(out, "Movies similar to Avatar:") || !strings.Contains(out, "Aliens") {
		t.Errorf("output = %q", out)
	}

	if _, err := run(t, "--catalog", path, "similar", "abc"); err == nil {
		t.Error("expected error for non-integer index")
	}
	if _, err := run(t, "--catalog", path, "similar", "9"); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

func TestSearch(t *testing.T) {
	path := writeCatalog(t)

	out, err := run(t, "--catalog", path, "search", "Batmn")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "Batman") {
		t.Errorf("output = %q", out)
	}

	out, err = run(t, "--catalog", path, "search", "zzzzzzzzzzzz")
	if err != nil || !strings.Contains(out, "No titles close to") {
		t.Errorf("no hits = %q, %v", out, err)
	}

	cmd := NewSearchCmd()
	if f := cmd.Flags().Lookup("limit"); f == nil || f.DefValue != "10" {
		t.Errorf("--limit flag = %+v", f)
	}
}

func TestToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")

	out, err := run(t, "token", "--subject", "ops")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	signed := strings.TrimSpace(out)
	token, err := jwt.Parse(signed, func(*jwt.Token) (interface{}, error) { return []byte("cli-secret"), nil })
	if err != nil || !token.Valid {
		t.Fatalf("parse %q: %v", signed, err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["sub"] != "ops" || claims["role"] != "admin" {
		t.Errorf("claims = %v", claims)
	}

	if _, err := run(t, "token", "--ttl", "-1h"); err == nil {
		t.Error("expected error for negative ttl")
	}
}

func TestToken_NoSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	out, err := run(t, "token")
	if err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("token without secret = %q, %v; want JWT_SECRET error", out, err)
	}
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "hash-password", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "$2a$") {
		t.Errorf("hash = %q", out)
	}
}

func TestVersion(t *testing.T) {
	SetVersion("1.2.3", "abc123", "2026-01-01")
	defer SetVersion("dev", "none", "unknown")

	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"recommend 1.2.3", "abc123", "2026-01-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}
