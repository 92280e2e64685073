// Package economy owns the player's coins, bet size and cannon power.
package economy

import (
	"fmt"

	"github.com/pthm-cable/reef/config"
)

// State is a snapshot of the economy.
// Coins is never negative, Bet is in [1, max_bet] and Power is in [1, max_power].
type State struct {
	Coins    int64
	Bet      int
	Power    int
	AutoFire bool
}

// Ledger validates and applies every change to the economy.
// It is the only owner of State; callers read copies through State().
type Ledger struct {
	state State

	maxBet       int
	maxPower     int
	costPerLevel int64
}

// NewLedger creates a ledger seeded from the economy config.
func NewLedger(cfg config.EconomyConfig) *Ledger {
	l := &Ledger{
		state: State{
			Coins: cfg.StartCoins,
			Bet:   cfg.StartBet,
			Power: cfg.StartPower,
		},
		maxBet:       cfg.MaxBet,
		maxPower:     cfg.MaxPower,
		costPerLevel: cfg.CostPerLevel,
	}
	l.mustValid()
	return l
}

// State returns a copy of the current economy.
func (l *Ledger) State() State {
	return l.state
}

// Coins returns the current balance.
func (l *Ledger) Coins() int64 {
	return l.state.Coins
}

// Debit subtracts amount if the balance covers it.
// Returns false without mutating anything otherwise.
func (l *Ledger) Debit(amount int64) bool {
	if amount < 0 {
		panic(fmt.Sprintf("economy: negative debit %d", amount))
	}
	if l.state.Coins < amount {
		return false
	}
	l.state.Coins -= amount
	return true
}

// Credit adds amount to the balance.
func (l *Ledger) Credit(amount int64) {
	if amount < 0 {
		panic(fmt.Sprintf("economy: negative credit %d", amount))
	}
	l.state.Coins += amount
}

// UpgradeCost returns the price of the next power level.
func (l *Ledger) UpgradeCost() int64 {
	return int64(l.state.Power) * l.costPerLevel
}

// CanUpgrade reports whether TryUpgrade would succeed.
func (l *Ledger) CanUpgrade() bool {
	return l.state.Power < l.maxPower && l.state.Coins >= l.UpgradeCost()
}

// TryUpgrade buys one power level.
// Fails without mutation when power is already at max or coins are short.
func (l *Ledger) TryUpgrade() (cost int64, ok bool) {
	if l.state.Power >= l.maxPower {
		return 0, false
	}
	cost = l.UpgradeCost()
	if !l.Debit(cost) {
		return 0, false
	}
	l.state.Power++
	l.mustValid()
	return cost, true
}

// SetAutoFire enables or disables automatic firing.
func (l *Ledger) SetAutoFire(enabled bool) {
	l.state.AutoFire = enabled
}

// ToggleAutoFire flips auto-fire and returns the new setting.
func (l *Ledger) ToggleAutoFire() bool {
	l.state.AutoFire = !l.state.AutoFire
	return l.state.AutoFire
}

// SetBet changes the coins spent per shot. Rejects n outside [1, max_bet].
func (l *Ledger) SetBet(n int) bool {
	if n < 1 || n > l.maxBet {
		return false
	}
	l.state.Bet = n
	return true
}

// MaxBet returns the upper bound accepted by SetBet.
func (l *Ledger) MaxBet() int {
	return l.maxBet
}

// MaxPower returns the highest cannon power level.
func (l *Ledger) MaxPower() int {
	return l.maxPower
}

// mustValid panics if the state breaks an economy invariant.
func (l *Ledger) mustValid() {
	s := l.state
	switch {
	case s.Coins < 0:
		panic(fmt.Sprintf("economy: coins went negative (%d)", s.Coins))
	case s.Bet < 1 || s.Bet > l.maxBet:
		panic(fmt.Sprintf("economy: bet %d outside [1, %d]", s.Bet, l.maxBet))
	case s.Power < 1 || s.Power > l.maxPower:
		panic(fmt.Sprintf("economy: power %d outside [1, %d]", s.Power, l.maxPower))
	}
}
