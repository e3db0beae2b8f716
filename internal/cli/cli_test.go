package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
)

const contactDefs = `
forms:
  contact:
    method: post
    action: /contact
    required:
      - name
      - email: Email
    optional:
      - age: Integer
    fields:
      - address: Compound
      - address.city: Text
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	if cmd.Use != "formkit" {
		t.Errorf("expected Use to be 'formkit', got %s", cmd.Use)
	}
	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	want := []string{"fields", "fill", "operations", "render", "validate", "version"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("subcommands mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_WritesFormMarkup(t *testing.T) {
	dir := t.TempDir()
	defs := writeFile(t, dir, "forms.yaml", contactDefs)
	values := writeFile(t, dir, "values.yaml", "name: Ada\naddress:\n  city: London\n")

	code, out, errOut := run(t, "render", "--config", writeFile(t, dir, "formkit.yaml", "log_level: error\n"),
		"--defs", defs, "--form", "contact", "--values", values)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}
	for _, fragment := range []string{
		`<form id="contact" method="post" action="/contact">`,
		`name="email"`,
		`value="Ada"`,
		`value="London"`,
		`<legend>Address</legend>`,
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, out)
		}
	}
}

func TestRender_SingleFieldToFile(t *testing.T) {
	dir := t.TempDir()
	defs := writeFile(t, dir, "forms.yaml", contactDefs)
	output := filepath.Join(dir, "out.html")

	code, _, errOut := run(t, "render", "--defs", defs, "--form", "contact", "--field", "email", "-o", output)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.Contains(string(data), "<form") || !strings.Contains(string(data), `name="email"`) {
		t.Fatalf("unexpected single field markup:\n%s", data)
	}
}

func TestValidate_ReportsErrorsAndExitCode(t *testing.T) {
	dir := t.TempDir()
	defs := writeFile(t, dir, "forms.yaml", contactDefs)
	values := writeFile(t, dir, "values.yaml", "email: nope\nage: 7\n")

	code, out, errOut := run(t, "validate", "--defs", defs, "--form", "contact", "--values", values)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if out != "" {
		t.Fatalf("expected no values on stdout, got %q", out)
	}
	if !strings.Contains(errOut, "name: Name field is required") {
		t.Fatalf("expected required error, got:\n%s", errOut)
	}
	if !strings.Contains(errOut, "email:") {
		t.Fatalf("expected email error, got:\n%s", errOut)
	}
	if strings.Contains(errOut, "Error:") {
		t.Fatalf("invalid forms should not print a generic error, got:\n%s", errOut)
	}
}

func TestValidate_PrintsValues(t *testing.T) {
	dir := t.TempDir()
	defs := writeFile(t, dir, "forms.yaml", contactDefs)
	values := writeFile(t, dir, "values.yaml", "name: Ada\nemail: ada@example.com\nage: 36\naddress:\n  city: London\n")

	code, out, errOut := run(t, "validate", "--defs", defs, "--form", "contact", "--values", values)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}
	want := "address:\n    city: London\nage: 36\nemail: ada@example.com\nname: Ada\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestFields_PrintsTree(t *testing.T) {
	dir := t.TempDir()
	defs := writeFile(t, dir, "forms.yaml", contactDefs)

	code, out, errOut := run(t, "fields", "--defs", defs, "--form", "contact")
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}
	want := strings.Join([]string{
		"1 name (Text) required",
		"2 email (Email) required",
		"3 age (Integer)",
		"4 address (Compound)",
		"  5 address.city (Text)",
		"",
	}, "\n")
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("field tree mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_ThemeAndFilter(t *testing.T) {
	dir := t.TempDir()
	defs := writeFile(t, dir, "forms.yaml", contactDefs)
	cfg := writeFile(t, dir, "formkit.yaml", "defs: "+defs+"\ntheme:\n  classes:\n    field: row\n")

	code, out, errOut := run(t, "render", "--config", cfg, "--form", "contact")
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}
	if !strings.Contains(out, `<div class="row">`) {
		t.Fatalf("expected themed field class, got:\n%s", out)
	}

	bad := writeFile(t, dir, "bad.yaml", "filter: loud\n")
	code, _, errOut = run(t, "render", "--config", bad, "--defs", defs, "--form", "contact")
	if code != 1 || !strings.Contains(errOut, `unknown filter "loud"`) {
		t.Fatalf("expected filter error, got code %d:\n%s", code, errOut)
	}
}

func TestMissingFormLists(t *testing.T) {
	dir := t.TempDir()
	defs := writeFile(t, dir, "forms.yaml", contactDefs)

	code, _, errOut := run(t, "render", "--defs", defs)
	if code != 1 || !strings.Contains(errOut, "defined forms: contact") {
		t.Fatalf("expected missing form error, got code %d:\n%s", code, errOut)
	}
}

const ordersDoc = `
openapi: 3.0.3
info:
  title: Orders
  version: "1.0"
paths:
  /orders:
    post:
      operationId: createOrder
      requestBody:
        content:
          application/x-www-form-urlencoded:
            schema:
              type: object
              required: [sku]
              properties:
                sku:
                  type: string
                quantity:
                  type: integer
                  minimum: 1
      responses:
        "201":
          description: created
`

func TestOpenAPI_OperationsAndRender(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "openapi.yaml", ordersDoc)

	code, out, errOut := run(t, "operations", "--openapi", doc)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}
	if out != "createOrder\n" {
		t.Fatalf("operations = %q", out)
	}

	code, out, errOut = run(t, "render", "--openapi", doc, "--operation", "createOrder")
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}
	if !strings.Contains(out, `<form id="createOrder"`) || !strings.Contains(out, `name="quantity"`) {
		t.Fatalf("unexpected markup:\n%s", out)
	}

	code, _, errOut = run(t, "render", "--openapi", doc)
	if code != 1 || !strings.Contains(errOut, "--operation is required") {
		t.Fatalf("expected missing operation error, got code %d:\n%s", code, errOut)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := LoadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Orphans != "drop" || cfg.Filter != "escape" || cfg.LogLevel != "warn" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Theme.Selection() != nil {
		t.Fatalf("expected no theme selection without classes")
	}
	if _, err := LoadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for explicit missing config file")
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FORMKIT_ORPHANS", "fail")
	cfg, err := LoadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Orphans != "fail" {
		t.Fatalf("orphans = %q, want fail from env", cfg.Orphans)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "info", "logfmt")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Info("hello")
	logger.Debug("hidden")
	if !strings.Contains(buf.String(), "msg=hello") || strings.Contains(buf.String(), "hidden") {
		t.Fatalf("unexpected log output: %q", buf.String())
	}

	if _, err := NewLogger(&buf, "loud", "json"); err == nil {
		t.Fatalf("expected invalid level error")
	}
	if _, err := NewLogger(&buf, "info", "xml"); err == nil {
		t.Fatalf("expected invalid format error")
	}
}

func TestFlattenParams(t *testing.T) {
	got := flattenParams("user.", map[string]any{
		"name":    "Ada",
		"address": map[string]any{"city": "London", "zip": nil},
	}, nil)
	want := map[string]any{
		"user.name":         "Ada",
		"user.address.city": "London",
		"user.address.zip":  "",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
}
