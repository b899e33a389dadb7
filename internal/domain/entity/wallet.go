package entity

import "time"

// Wallet is the wallet currently opened by the front-end.
type Wallet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountAddress is an address derived for an account index on a network.
type AccountAddress struct {
	Network string `json:"network"`
	Index   int    `json:"index"`
	Address string `json:"address"`
}
