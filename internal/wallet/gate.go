// Package wallet implements the wallet gate: a connected flag the game reads
// before ticking, and a connect action that asks a wallet endpoint for an
// account and makes sure it is on the expected chain.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/block-breaker/internal/config"
)

// Gate is the wallet collaborator. Connected is cheap and safe to call from
// the tick loop; Connect blocks and must run elsewhere.
type Gate interface {
	Connected() bool
	Connect(ctx context.Context) (Result, error)
}

// Result describes a successful connect.
type Result struct {
	Account string
	Notice  string // User-facing success message
}

// Open is a Gate that is always connected. Used when the wallet is disabled.
type Open struct{}

// Connected always returns true.
func (Open) Connected() bool { return true }

// Connect succeeds immediately.
func (Open) Connect(context.Context) (Result, error) {
	return Result{Notice: "Wallet not required"}, nil
}

// Network describes the chain the gate switches the wallet to.
type Network struct {
	ChainID     uint64
	ChainName   string
	Currency    config.Currency
	RPCURL      string
	ExplorerURL string
}

// ChainIDHex returns the chain id in the 0x-prefixed form wallets expect.
func (n Network) ChainIDHex() string {
	return fmt.Sprintf("0x%x", n.ChainID)
}

// addChainParams is the wallet_addEthereumChain parameter object.
func (n Network) addChainParams() map[string]any {
	p := map[string]any{
		"chainId":   n.ChainIDHex(),
		"chainName": n.ChainName,
		"nativeCurrency": map[string]any{
			"name":     n.Currency.Name,
			"symbol":   n.Currency.Symbol,
			"decimals": n.Currency.Decimals,
		},
		"rpcUrls": []string{n.RPCURL},
	}
	if n.ExplorerURL != "" {
		p["blockExplorerUrls"] = []string{n.ExplorerURL}
	}
	return p
}

// NetworkFromConfig builds a Network from the wallet config section.
func NetworkFromConfig(cfg config.Wallet) Network {
	return Network{
		ChainID:     cfg.ChainID,
		ChainName:   cfg.ChainName,
		Currency:    cfg.Currency,
		RPCURL:      cfg.RPCURL,
		ExplorerURL: cfg.ExplorerURL,
	}
}

// ChainGate connects through a JSON-RPC wallet endpoint.
type ChainGate struct {
	client  *Client
	network Network
	cfg     config.Wallet
	logger  *log.Logger

	connected atomic.Bool
	mu        sync.Mutex // Serializes Connect
	account   string
}

// Option configures a ChainGate.
type Option func(*ChainGate)

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *log.Logger) Option {
	return func(g *ChainGate) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithClient replaces the JSON-RPC client.
func WithClient(c *Client) Option {
	return func(g *ChainGate) { g.client = c }
}

// NewChainGate creates a disconnected gate for the configured network.
func NewChainGate(cfg config.Wallet, opts ...Option) *ChainGate {
	g := &ChainGate{
		client:  NewClient(cfg.RPCURL, nil),
		network: NetworkFromConfig(cfg),
		cfg:     cfg,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// New returns the gate selected by the config: Open when the wallet is disabled.
func New(cfg config.Wallet, opts ...Option) Gate {
	if !cfg.Enabled {
		return Open{}
	}
	return NewChainGate(cfg, opts...)
}

// Connected reports whether a connect has succeeded.
func (g *ChainGate) Connected() bool {
	return g.connected.Load()
}

// Account returns the connected account, or "".
func (g *ChainGate) Account() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.account
}

// Connect requests an account and makes sure the wallet is on the configured chain.
// On any failure the gate stays disconnected.
func (g *ChainGate) Connect(ctx context.Context) (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cfg.Timeout.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout.Duration)
		defer cancel()
	}

	res, err := g.connect(ctx)
	if err != nil {
		g.logger.Warn("wallet connect failed", "chain", g.network.ChainName, "err", err)
		return Result{}, err
	}

	g.account = res.Account
	g.connected.Store(true)
	g.logger.Info("wallet connected", "account", res.Account, "chain", g.network.ChainName)
	return res, nil
}

func (g *ChainGate) connect(ctx context.Context) (Result, error) {
	var accounts []string
	if err := g.client.Call(ctx, &accounts, "eth_requestAccounts"); err != nil {
		if codeOf(err) == CodeUserRejected {
			return Result{}, fmt.Errorf("%w: %w", ErrUserRejected, err)
		}
		return Result{}, err
	}
	if len(accounts) == 0 {
		return Result{}, ErrNoAccounts
	}
	res := Result{Account: accounts[0]}

	var chainID string
	if err := g.client.Call(ctx, &chainID, "eth_chainId"); err != nil {
		return Result{}, err
	}
	if strings.EqualFold(chainID, g.network.ChainIDHex()) {
		res.Notice = fmt.Sprintf("Already connected to %s network!", g.network.ChainName)
		return res, nil
	}

	g.logger.Debug("switching chain", "from", chainID, "to", g.network.ChainIDHex())
	err := g.switchChain(ctx)
	if err == nil {
		res.Notice = fmt.Sprintf("Switched to %s network", g.network.ChainName)
		return res, nil
	}
	if codeOf(err) != CodeUnknownChain {
		return Result{}, g.wrapSwitch(err)
	}

	g.logger.Debug("chain unknown to wallet, adding", "chain", g.network.ChainName)
	if err := g.client.Call(ctx, nil, "wallet_addEthereumChain", g.network.addChainParams()); err != nil {
		if codeOf(err) == CodeUserRejected {
			return Result{}, fmt.Errorf("%w: %w: %w", ErrChainAdd, ErrUserRejected, err)
		}
		return Result{}, fmt.Errorf("%w: %w", ErrChainAdd, err)
	}
	if err := g.switchChain(ctx); err != nil {
		return Result{}, g.wrapSwitch(err)
	}
	res.Notice = fmt.Sprintf("%s network added", g.network.ChainName)
	return res, nil
}

func (g *ChainGate) switchChain(ctx context.Context) error {
	return g.client.Call(ctx, nil, "wallet_switchEthereumChain",
		map[string]string{"chainId": g.network.ChainIDHex()})
}

func (g *ChainGate) wrapSwitch(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrNoProvider) {
		return err
	}
	if codeOf(err) == CodeUserRejected {
		return fmt.Errorf("%w: %w: %w", ErrChainSwitch, ErrUserRejected, err)
	}
	return fmt.Errorf("%w: %w", ErrChainSwitch, err)
}
