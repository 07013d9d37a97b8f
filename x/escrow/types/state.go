package types

// Wallet is an escrow account created through the wallet factory. Funds for
// every wallet are held by the module account; per-wallet balances, locks and
// allowances are tracked in the module store under the wallet address.
type Wallet struct {
	Address   string `json:"address"`
	Owner     string `json:"owner"`
	CreatedAt int64  `json:"created_at"`
}
