// Package fakebackend is an in-memory storefront REST backend for tests.
// It speaks the same JSON contract as the real backend and records every
// request it receives so tests can assert that no call was made.
package fakebackend

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Product mirrors the backend's product document
type Product struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Cost     float64 `json:"cost"`
	Rating   int     `json:"rating"`
	Image    string  `json:"image"`
}

// CartRecord mirrors the backend's cart line
type CartRecord struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// Address mirrors the backend's address document
type Address struct {
	ID      string `json:"_id"`
	Address string `json:"address"`
}

// Request is one request the fake received
type Request struct {
	Method string
	Path   string
	Query  string
	Auth   string
}

type failure struct {
	status int
	body   string
}

type user struct {
	password  string
	balance   float64
	cart      []CartRecord
	addresses []Address
}

// Backend is the fake. Zero value is not usable; call New.
type Backend struct {
	mu       sync.Mutex
	server   *httptest.Server
	products []Product
	users    map[string]*user
	tokens   map[string]string
	requests []Request
	failures map[string]failure
}

// New starts a fake backend that shuts down with the test
func New(t testing.TB, products ...Product) *Backend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := &Backend{
		products: append([]Product(nil), products...),
		users:    make(map[string]*user),
		tokens:   make(map[string]string),
		failures: make(map[string]failure),
	}
	b.server = httptest.NewServer(b.routes())
	t.Cleanup(b.server.Close)
	return b
}

// URL is the base endpoint to hand to the client
func (b *Backend) URL() string {
	return b.server.URL
}

// Close stops the server early, making the backend unreachable
func (b *Backend) Close() {
	b.server.Close()
}

// AddUser registers username and returns a valid credential for it
func (b *Backend) AddUser(username, password string, balance float64) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[username] = &user{password: password, balance: balance}
	return b.issueToken(username)
}

// SetCart replaces a user's cart
func (b *Backend) SetCart(username string, records ...CartRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[username].cart = append([]CartRecord(nil), records...)
}

// Cart returns a user's cart
func (b *Backend) Cart(username string) []CartRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]CartRecord(nil), b.users[username].cart...)
}

// Balance returns a user's wallet balance
func (b *Backend) Balance(username string) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.users[username].balance
}

// AddAddress stores an address for username and returns its id
func (b *Backend) AddAddress(username, address string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := uuid.NewString()
	u := b.users[username]
	u.addresses = append(u.addresses, Address{ID: id, Address: address})
	return id
}

// Fail makes every request to method+path answer with status and a message envelope
func (b *Backend) Fail(method, path string, status int, message string) {
	body := `{"success":false}`
	if message != "" {
		body = `{"success":false,"message":"` + message + `"}`
	}
	b.FailRaw(method, path, status, body)
}

// FailRaw makes every request to method+path answer with status and a raw body
func (b *Backend) FailRaw(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = failure{status: status, body: body}
}

// Heal removes all injected failures
func (b *Backend) Heal() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = make(map[string]failure)
}

// Requests returns every request received so far
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// Count returns how many requests hit method+path
func (b *Backend) Count(method, path string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (b *Backend) issueToken(username string) string {
	token := "token-" + uuid.NewString()
	b.tokens[token] = username
	return token
}

func (b *Backend) routes() http.Handler {
	r := gin.New()
	r.Use(b.record, b.inject)

	r.GET("/products", b.listProducts)
	r.GET("/products/search", b.searchProducts)
	r.POST("/auth/register", b.register)
	r.POST("/auth/login", b.login)

	authed := r.Group("", b.authenticate)
	authed.GET("/cart", b.getCart)
	authed.POST("/cart", b.upsertCart)
	authed.POST("/cart/checkout", b.checkout)
	authed.GET("/user/addresses", b.listAddresses)
	authed.POST("/user/addresses", b.addAddress)
	authed.DELETE("/user/addresses/:id", b.deleteAddress)

	return r
}

func (b *Backend) record(c *gin.Context) {
	b.mu.Lock()
	b.requests = append(b.requests, Request{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.RawQuery,
		Auth:   c.GetHeader("Authorization"),
	})
	b.mu.Unlock()
	c.Next()
}

func (b *Backend) inject(c *gin.Context) {
	b.mu.Lock()
	f, ok := b.failures[c.Request.Method+" "+c.Request.URL.Path]
	b.mu.Unlock()
	if ok {
		c.Data(f.status, "application/json", []byte(f.body))
		c.Abort()
		return
	}
	c.Next()
}

func (b *Backend) authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	b.mu.Lock()
	username, ok := b.tokens[token]
	b.mu.Unlock()
	if header == "" || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Protected route, Oauth2 Bearer token not found"})
		c.Abort()
		return
	}
	c.Set("username", username)
	c.Next()
}

func (b *Backend) listProducts(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, b.products)
}

func (b *Backend) searchProducts(c *gin.Context) {
	term := strings.ToLower(c.Query("value"))

	b.mu.Lock()
	matches := []Product{}
	for _, p := range b.products {
		if strings.Contains(strings.ToLower(p.Name), term) || strings.Contains(strings.ToLower(p.Category), term) {
			matches = append(matches, p)
		}
	}
	b.mu.Unlock()

	if len(matches) == 0 {
		c.JSON(http.StatusNotFound, []Product{})
		return
	}
	c.JSON(http.StatusOK, matches)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (b *Backend) register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, taken := b.users[req.Username]; taken {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username is already taken"})
		return
	}
	b.users[req.Username] = &user{password: req.Password, balance: 5000}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (b *Backend) login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[req.Username]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username does not exist"})
		return
	}
	if u.password != req.Password {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password is incorrect"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"token":    b.issueToken(req.Username),
		"username": req.Username,
		"balance":  u.balance,
	})
}

func (b *Backend) getCart(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, b.cartOf(c))
}

func (b *Backend) upsertCart(c *gin.Context) {
	var req CartRecord
	if err := c.ShouldBindJSON(&req); err != nil || req.Qty < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.hasProduct(req.ProductID) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product doesn't exist"})
		return
	}

	u := b.users[c.GetString("username")]
	next := make([]CartRecord, 0, len(u.cart)+1)
	found := false
	for _, rec := range u.cart {
		if rec.ProductID == req.ProductID {
			found = true
			if req.Qty == 0 {
				continue
			}
			rec.Qty = req.Qty
		}
		next = append(next, rec)
	}
	if !found && req.Qty > 0 {
		next = append(next, req)
	}
	u.cart = next
	c.JSON(http.StatusOK, u.cart)
}

func (b *Backend) checkout(c *gin.Context) {
	var req struct {
		AddressID string `json:"addressId"`
	}
	_ = c.ShouldBindJSON(&req)

	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.users[c.GetString("username")]
	if len(u.cart) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart is empty"})
		return
	}
	known := false
	for _, a := range u.addresses {
		if a.ID == req.AddressID {
			known = true
		}
	}
	if !known {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Bad Request"})
		return
	}
	total := 0.0
	for _, rec := range u.cart {
		for _, p := range b.products {
			if p.ID == rec.ProductID {
				total += p.Cost * float64(rec.Qty)
			}
		}
	}
	if total > u.balance {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Wallet balance not sufficient to place order"})
		return
	}
	u.balance -= total
	u.cart = nil
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (b *Backend) listAddresses(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, b.addressesOf(c))
}

func (b *Backend) addAddress(c *gin.Context) {
	var req struct {
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Address) < 20 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Address should be greater than 20 characters"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.users[c.GetString("username")]
	u.addresses = append(u.addresses, Address{ID: uuid.NewString(), Address: req.Address})
	c.JSON(http.StatusOK, u.addresses)
}

func (b *Backend) deleteAddress(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.users[c.GetString("username")]
	kept := make([]Address, 0, len(u.addresses))
	found := false
	for _, a := range u.addresses {
		if a.ID == c.Param("id") {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Address to delete was not found"})
		return
	}
	u.addresses = kept
	c.JSON(http.StatusOK, u.addresses)
}

func (b *Backend) cartOf(c *gin.Context) []CartRecord {
	cart := b.users[c.GetString("username")].cart
	if cart == nil {
		return []CartRecord{}
	}
	return cart
}

func (b *Backend) addressesOf(c *gin.Context) []Address {
	addresses := b.users[c.GetString("username")].addresses
	if addresses == nil {
		return []Address{}
	}
	return addresses
}

func (b *Backend) hasProduct(id string) bool {
	for _, p := range b.products {
		if p.ID == id {
			return true
		}
	}
	return false
}
