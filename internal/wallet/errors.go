package wallet

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Connect. Check with errors.Is.
var (
	ErrNoProvider   = errors.New("wallet: provider unreachable")
	ErrUserRejected = errors.New("wallet: request rejected by user")
	ErrNoAccounts   = errors.New("wallet: no accounts available")
	ErrChainSwitch  = errors.New("wallet: failed to switch chain")
	ErrChainAdd     = errors.New("wallet: failed to add chain")
)

// JSON-RPC error codes the connect flow reacts to.
const (
	CodeUserRejected  = 4001 // EIP-1193 user rejected the request
	CodeUnknownChain  = 4902 // Chain has not been added to the wallet
	CodeInternalError = -32603
)

// RPCError is an error object returned by the JSON-RPC endpoint.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// codeOf returns the JSON-RPC error code carried by err, or 0.
func codeOf(err error) int {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr.Code
	}
	return 0
}

// FailureNotice returns the user-facing message for a failed connect.
func FailureNotice(err error, chainName string) string {
	switch {
	case errors.Is(err, ErrChainAdd):
		return fmt.Sprintf("Failed to add %s network", chainName)
	case errors.Is(err, ErrChainSwitch):
		return fmt.Sprintf("Failed to switch to %s network", chainName)
	case errors.Is(err, ErrUserRejected):
		return "Wallet request rejected"
	default:
		return "Failed to connect wallet"
	}
}
