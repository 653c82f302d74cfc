package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/testutil/fakebackend"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func newFake(t *testing.T) *fakebackend.Backend {
	t.Helper()
	fake := fakebackend.New(t,
		fakebackend.Product{ID: "A", Name: "iPhone XR", Category: "Phones", Cost: 100, Rating: 4},
		fakebackend.Product{ID: "B", Name: "Basketball", Category: "Sports", Cost: 50, Rating: 5},
	)
	fake.AddUser("crio.user", "learnbydoing", 5000)

	t.Setenv("BACKEND_ENDPOINT", fake.URL())
	t.Setenv("SESSION_STORE", "file")
	t.Setenv("SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("LOG_LEVEL", "error")
	return fake
}

func run(t *testing.T, args ...string) cliResult {
	t.Helper()

	// Flag globals outlive a single Execute
	username, password, confirmPassword = "", "", ""
	addressID, receiptPath, backendURL = "", "", ""
	verbose = false

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestProductsCmd(t *testing.T) {
	newFake(t)

	res := run(t, "products")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "iPhone XR")
	assert.Contains(t, res.stdout, "Basketball")
	assert.Contains(t, res.stdout, "$100.00")
}

func TestSearchCmd(t *testing.T) {
	newFake(t)

	res := run(t, "search", "phones")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "iPhone XR")
	assert.NotContains(t, res.stdout, "Basketball")

	res = run(t, "search", "zzz")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No products found")
}

func TestCartRequiresLogin(t *testing.T) {
	newFake(t)

	res := run(t, "add", "A")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "warning: Login to add an item to the Cart")
}

func TestLoginPersistsAcrossRuns(t *testing.T) {
	newFake(t)

	res := run(t, "login", "-u", "crio.user", "-p", "learnbydoing")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "crio.user (wallet: $5000.00)")
	assert.Contains(t, res.stderr, "success: Logged in successfully")

	_, err := os.Stat(os.Getenv("SESSION_FILE"))
	require.NoError(t, err)

	res = run(t, "whoami")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "crio.user")

	require.NoError(t, run(t, "logout").err)

	res = run(t, "whoami")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Not logged in")
}

func TestLoginValidation(t *testing.T) {
	newFake(t)

	res := run(t, "login", "-u", "crio.user")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "Password is a required field")
}

func TestCartMutations(t *testing.T) {
	fake := newFake(t)
	require.NoError(t, run(t, "login", "-u", "crio.user", "-p", "learnbydoing").err)

	res := run(t, "add", "A")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "iPhone XR")

	require.NoError(t, run(t, "inc", "A").err)
	res = run(t, "set", "B", "3")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Order total: $350.00 (5 items)")

	res = run(t, "add", "A")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "Item already in cart")

	require.NoError(t, run(t, "dec", "B").err)
	assert.Equal(t, []fakebackend.CartRecord{{ProductID: "A", Qty: 2}, {ProductID: "B", Qty: 2}}, fake.Cart("crio.user"))

	res = run(t, "set", "A", "0")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "iPhone XR")

	res = run(t, "set", "A", "two")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid quantity")
}

func TestCheckoutCmd(t *testing.T) {
	fake := newFake(t)
	require.NoError(t, run(t, "login", "-u", "crio.user", "-p", "learnbydoing").err)
	require.NoError(t, run(t, "add", "A").err)

	res := run(t, "checkout")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "Please select one shipping address to proceed.")

	res = run(t, "addresses", "add", "221B Baker Street, London")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "221B Baker Street")

	var id string
	for _, line := range strings.Split(run(t, "addresses").stdout, "\n") {
		if strings.Contains(line, "Baker Street") {
			id = strings.Fields(line)[0]
		}
	}
	require.NotEmpty(t, id)

	res = run(t, "checkout", "--address", id)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Wallet balance: $4900.00")
	assert.Contains(t, res.stderr, "success: Order placed successfully!")
	assert.Empty(t, fake.Cart("crio.user"))
	assert.InDelta(t, 4900.0, fake.Balance("crio.user"), 0.001)

	res = run(t, "whoami")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "wallet: $4900.00")
}

func TestSummaryCmd(t *testing.T) {
	newFake(t)
	require.NoError(t, run(t, "login", "-u", "crio.user", "-p", "learnbydoing").err)
	require.NoError(t, run(t, "set", "B", "2").err)

	res := run(t, "summary")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Products")
	assert.Contains(t, res.stdout, "$100.00")
}

func TestUnknownSessionStore(t *testing.T) {
	newFake(t)
	t.Setenv("SESSION_STORE", "floppy")

	res := run(t, "products")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "unknown SESSION_STORE")
}
