//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "storefront-api"
	ConsumerName = "storefront-web"

	StateMenuBaseline = "the menu is served"
	StateCartEmpty    = "the cart is empty"
	StateCartHasPizza = "the cart holds one calabresa pizza without a saved profile"
)

const (
	ExistingItemID = "pz-calabresa"
	MissingItemID  = "pz-inexistente"

	ExampleItemName  = "Calabresa"
	ExampleBasePrice = 41.99
	ExampleGrandeQty = 2
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront web consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleAddItemPayload adds two large calabresa pizzas with extra cheese.
func ExampleAddItemPayload() map[string]any {
	return map[string]any{
		"productId": ExistingItemID,
		"qty":       ExampleGrandeQty,
		"options": map[string]any{
			"size":        "Grande",
			"extraCheese": true,
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
