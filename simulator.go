// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"io"
	"log"
	"math/big"
	"net"
	"net/http"
	"sync"
	"time"
)

// Handler answers one simulated request envelope. Returning nil makes
// the Simulator answer with an HTTP 500, for transport fault injection.
type Handler func(req *Element) *Element

// Simulator is an in-process IMC XML endpoint for tests: HTTPS with a
// self-signed certificate, cookie-issuing auth handlers, and
// per-operation handler overrides.
type Simulator struct {
	Username string
	Password string
	// RefreshPeriod is the outRefreshPeriod issued with each cookie,
	// in seconds
	RefreshPeriod int

	wg  sync.WaitGroup
	ln  net.Listener
	srv *http.Server

	mu       sync.Mutex
	handlers map[Operation]Handler
	cookies  map[string]time.Time
	counts   map[Operation]int
	requests int
	failures int
	seq      int
}

// NewSimulator constructs a Simulator with default credentials
func NewSimulator() *Simulator {
	s := &Simulator{
		Username:      "admin",
		Password:      "password",
		RefreshPeriod: 600,
		cookies:       map[string]time.Time{},
		counts:        map[Operation]int{},
	}

	// Built-in handlers for session management
	s.handlers = map[Operation]Handler{
		OpLogin:   s.login,
		OpRefresh: s.refresh,
		OpLogout:  s.logout,
	}

	return s
}

// SetHandler sets the handler for the given operation
func (s *Simulator) SetHandler(op Operation, handler Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[op] = handler
}

// FailNext makes the next n requests answer with an HTTP 500
func (s *Simulator) FailNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = n
}

// ExpireSessions discards every issued cookie, so the next
// cookie-bearing request is rejected with error code 552
func (s *Simulator) ExpireSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cookies = map[string]time.Time{}
}

// Requests returns the total number of HTTP posts received, including
// injected failures
func (s *Simulator) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// Count returns how many requests have been seen for the operation
func (s *Simulator) Count(op Operation) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[op]
}

// NewConnection to this Simulator instance
func (s *Simulator) NewConnection() *Connection {
	addr := s.ln.Addr().(*net.TCPAddr)
	return &Connection{
		Hostname: addr.IP.String(),
		Port:     addr.Port,
		Username: s.Username,
		Password: s.Password,
	}
}

// Run the Simulator.
func (s *Simulator) Run() error {
	cert, err := selfSignedCert()
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		return err
	}
	s.ln = ln

	s.srv = &http.Server{Handler: s}
	tlsLn := tls.NewListener(ln, &tls.Config{Certificates: []tls.Certificate{cert}})

	s.wg.Add(1)
	go func() {
		_ = s.srv.Serve(tlsLn)
		s.wg.Done()
	}()

	return nil
}

// Stop the Simulator.
func (s *Simulator) Stop() {
	_ = s.srv.Close()
	s.wg.Wait()
}

func (s *Simulator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests++
	if s.failures > 0 {
		s.failures--
		s.mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	s.mu.Unlock()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	req, err := decodeEnvelope(body)
	if err != nil {
		log.Printf("simulator: bad request document: %s", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	res := s.dispatch(req)
	if res == nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	buf := new(bytes.Buffer)
	writeElement(buf, res)
	w.Header().Set("Content-Type", "text/xml")
	_, _ = w.Write(buf.Bytes())
}

func (s *Simulator) dispatch(req *Element) *Element {
	op := operationFromName(req.Name)

	s.mu.Lock()
	s.counts[op]++
	handler, ok := s.handlers[op]
	s.mu.Unlock()

	if op == opInvalid {
		return errorResponse("ERR-xml-parse", fmt.Sprintf("unsupported request %q", req.Name))
	}

	// the firmware validates the cookie before looking at the method
	if !op.auth() && !s.cookieValid(req.Attr("cookie")) {
		return response(req.Name, map[string]string{
			"cookie":     req.Attr("cookie"),
			"response":   "no",
			"errorCode":  errAuthRequired,
			"errorDescr": "Authorization required",
		})
	}

	if !ok {
		return errorResponse("ERR-xml-parse", fmt.Sprintf("unsupported request %q", req.Name))
	}

	return handler(req)
}

func (s *Simulator) cookieValid(cookie string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	expires, ok := s.cookies[cookie]
	return ok && time.Now().Before(expires)
}

func (s *Simulator) issueCookie() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	cookie := fmt.Sprintf("%d/%016x", time.Now().Unix(), s.seq)
	s.cookies[cookie] = time.Now().Add(time.Duration(s.RefreshPeriod) * time.Second)
	return cookie
}

func (s *Simulator) login(req *Element) *Element {
	if req.Attr("inName") != s.Username || req.Attr("inPassword") != s.Password {
		return errorResponse("551", "Authentication failed")
	}
	cookie := s.issueCookie()
	return response("aaaLogin", map[string]string{
		"response":         "yes",
		"outCookie":        cookie,
		"outRefreshPeriod": fmt.Sprintf("%d", s.RefreshPeriod),
		"outPriv":          "admin",
	})
}

func (s *Simulator) refresh(req *Element) *Element {
	old := req.Attr("inCookie")
	if !s.cookieValid(old) {
		return errorResponse(errAuthRequired, "Authorization required")
	}

	s.mu.Lock()
	delete(s.cookies, old)
	s.mu.Unlock()

	cookie := s.issueCookie()
	return response("aaaRefresh", map[string]string{
		"response":         "yes",
		"outCookie":        cookie,
		"outRefreshPeriod": fmt.Sprintf("%d", s.RefreshPeriod),
	})
}

func (s *Simulator) logout(req *Element) *Element {
	s.mu.Lock()
	delete(s.cookies, req.Attr("inCookie"))
	s.mu.Unlock()

	return response("aaaLogout", map[string]string{
		"response":  "yes",
		"outStatus": "success",
	})
}

func response(name string, attrs map[string]string) *Element {
	return NewElement(name, attrs)
}

func errorResponse(code, descr string) *Element {
	return NewElement("error", map[string]string{
		"response":   "yes",
		"errorCode":  code,
		"errorDescr": descr,
	})
}

// ResolveDnHandler answers configResolveDn for the given dn with a
// single managed object, and an empty outConfig for any other dn
func ResolveDnHandler(dn string, mo *Element) Handler {
	return func(req *Element) *Element {
		res := response("configResolveDn", map[string]string{
			"response": "yes",
			"dn":       req.Attr("dn"),
		})
		out := NewElement("outConfig", nil)
		if req.Attr("dn") == dn {
			out.Append(mo)
		}
		res.Append(out)
		return res
	}
}

// ResolveClassHandler answers configResolveClass with the given objects
func ResolveClassHandler(mos ...*Element) Handler {
	return func(req *Element) *Element {
		res := response("configResolveClass", map[string]string{
			"response": "yes",
			"classId":  req.Attr("classId"),
		})
		out := NewElement("outConfigs", nil)
		for _, mo := range mos {
			out.Append(mo)
		}
		res.Append(out)
		return res
	}
}

// ConfMoHandler answers configConfMo by echoing the submitted config
func ConfMoHandler() Handler {
	return func(req *Element) *Element {
		res := response("configConfMo", map[string]string{
			"response": "yes",
			"dn":       req.Attr("dn"),
		})
		out := NewElement("outConfig", nil)
		if in := req.First("inConfig"); in != nil && len(in.Children) > 0 {
			out.Append(in.Children[0])
		}
		res.Append(out)
		return res
	}
}

func selfSignedCert() (tls.Certificate, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return tls.Certificate{}, err
	}

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "cimc-simulator"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1)},
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		return tls.Certificate{}, err
	}

	return tls.Certificate{
		Certificate: [][]byte{der},
		PrivateKey:  key,
	}, nil
}
