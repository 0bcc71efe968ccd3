package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/block-breaker/internal/config"
)

// fakeWallet answers the JSON-RPC calls of the connect flow.
type fakeWallet struct {
	mu       sync.Mutex
	chainID  string
	known    bool         // Whether the target chain was added
	failWith map[string]int // Method -> error code to return
	calls    []string
}

func (f *fakeWallet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     uint64            `json:"id"`
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req.Method)

	reply := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	if code, ok := f.failWith[req.Method]; ok {
		reply["error"] = map[string]any{"code": code, "message": "failed"}
		_ = json.NewEncoder(w).Encode(reply)
		return
	}

	switch req.Method {
	case "eth_requestAccounts":
		reply["result"] = []string{"0xabc"}
	case "eth_chainId":
		reply["result"] = f.chainID
	case "wallet_switchEthereumChain":
		if !f.known {
			reply["error"] = map[string]any{"code": CodeUnknownChain, "message": "unrecognized chain"}
			break
		}
		var p struct {
			ChainID string `json:"chainId"`
		}
		_ = json.Unmarshal(req.Params[0], &p)
		f.chainID = p.ChainID
		reply["result"] = nil
	case "wallet_addEthereumChain":
		f.known = true
		reply["result"] = nil
	default:
		reply["error"] = map[string]any{"code": -32601, "message": "method not found"}
	}
	_ = json.NewEncoder(w).Encode(reply)
}

func (f *fakeWallet) methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func testConfig(url string) config.Wallet {
	cfg := config.Default().Wallet
	cfg.RPCURL = url
	return cfg
}

func TestConnectFlows(t *testing.T) {
	tests := []struct {
		name      string
		wallet    *fakeWallet
		wantErr   error
		notice    string
		wantCalls []string
	}{
		{
			name:      "already on chain",
			wallet:    &fakeWallet{chainID: "0x7a69", known: true},
			notice:    "Already connected to Monad network!",
			wantCalls: []string{"eth_requestAccounts", "eth_chainId"},
		},
		{
			name:      "switch known chain",
			wallet:    &fakeWallet{chainID: "0x1", known: true},
			notice:    "Switched to Monad network",
			wantCalls: []string{"eth_requestAccounts", "eth_chainId", "wallet_switchEthereumChain"},
		},
		{
			name:   "add unknown chain then switch",
			wallet: &fakeWallet{chainID: "0x1"},
			notice: "Monad network added",
			wantCalls: []string{
				"eth_requestAccounts", "eth_chainId", "wallet_switchEthereumChain",
				"wallet_addEthereumChain", "wallet_switchEthereumChain",
			},
		},
		{
			name:      "user rejects accounts",
			wallet:    &fakeWallet{failWith: map[string]int{"eth_requestAccounts": CodeUserRejected}},
			wantErr:   ErrUserRejected,
			wantCalls: []string{"eth_requestAccounts"},
		},
		{
			name:    "switch fails",
			wallet:  &fakeWallet{chainID: "0x1", known: true, failWith: map[string]int{"wallet_switchEthereumChain": CodeInternalError}},
			wantErr: ErrChainSwitch,
		},
		{
			name:    "add fails",
			wallet:  &fakeWallet{chainID: "0x1", failWith: map[string]int{"wallet_addEthereumChain": CodeInternalError}},
			wantErr: ErrChainAdd,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.wallet)
			defer srv.Close()

			g := NewChainGate(testConfig(srv.URL))
			res, err := g.Connect(context.Background())

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Connect() error = %v, expected %v", err, tc.wantErr)
				}
				if g.Connected() {
					t.Error("gate must stay closed after a failed connect")
				}
			} else {
				if err != nil {
					t.Fatalf("Connect() error = %v", err)
				}
				if !g.Connected() || g.Account() != "0xabc" {
					t.Errorf("connected = %v account = %q", g.Connected(), g.Account())
				}
				if res.Notice != tc.notice {
					t.Errorf("notice = %q, expected %q", res.Notice, tc.notice)
				}
			}

			if tc.wantCalls != nil {
				got := tc.wallet.methods()
				if len(got) != len(tc.wantCalls) {
					t.Fatalf("calls = %v, expected %v", got, tc.wantCalls)
				}
				for i := range got {
					if got[i] != tc.wantCalls[i] {
						t.Errorf("call %d = %s, expected %s", i, got[i], tc.wantCalls[i])
					}
				}
			}
		})
	}
}

func TestRPCErrorIsTyped(t *testing.T) {
	srv := httptest.NewServer(&fakeWallet{failWith: map[string]int{"eth_requestAccounts": CodeUserRejected}})
	defer srv.Close()

	_, err := NewChainGate(testConfig(srv.URL)).Connect(context.Background())

	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("expected *RPCError in chain, got %v", err)
	}
	if rpcErr.Code != CodeUserRejected {
		t.Errorf("code = %d, expected %d", rpcErr.Code, CodeUserRejected)
	}
}

func TestConnectUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g := NewChainGate(testConfig(url))
	if _, err := g.Connect(context.Background()); !errors.Is(err, ErrNoProvider) {
		t.Errorf("expected ErrNoProvider, got %v", err)
	}
	if g.Connected() {
		t.Error("gate opened without a provider")
	}
}

func TestConnectHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewChainGate(testConfig(srv.URL)).Connect(context.Background()); !errors.Is(err, ErrNoProvider) {
		t.Errorf("expected ErrNoProvider, got %v", err)
	}
}

func TestConnectTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	cfg := testConfig(srv.URL)
	cfg.Timeout = config.Duration{Duration: 50 * time.Millisecond}

	_, err := NewChainGate(cfg).Connect(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestOpenGate(t *testing.T) {
	g := New(config.Wallet{Enabled: false})
	if _, ok := g.(Open); !ok {
		t.Fatalf("disabled wallet should give Open, got %T", g)
	}
	if !g.Connected() {
		t.Error("Open must be connected")
	}
	if _, err := g.Connect(context.Background()); err != nil {
		t.Errorf("Open.Connect() error = %v", err)
	}

	if _, ok := New(testConfig("http://localhost:1")).(*ChainGate); !ok {
		t.Error("enabled wallet should give a ChainGate")
	}
}

func TestFailureNotice(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{ErrChainAdd, "Failed to add Monad network"},
		{ErrChainSwitch, "Failed to switch to Monad network"},
		{ErrUserRejected, "Wallet request rejected"},
		{ErrNoProvider, "Failed to connect wallet"},
	}
	for _, tc := range tests {
		if got := FailureNotice(tc.err, "Monad"); got != tc.expected {
			t.Errorf("FailureNotice(%v) = %q, expected %q", tc.err, got, tc.expected)
		}
	}
}

func TestAddChainParams(t *testing.T) {
	n := NetworkFromConfig(config.Default().Wallet)
	if n.ChainIDHex() != "0x7a69" {
		t.Errorf("ChainIDHex() = %s, expected 0x7a69", n.ChainIDHex())
	}
	p := n.addChainParams()
	if _, ok := p["blockExplorerUrls"]; ok {
		t.Error("empty explorer url should be omitted")
	}
	if p["chainName"] != "Monad" {
		t.Errorf("chainName = %v", p["chainName"])
	}
}
