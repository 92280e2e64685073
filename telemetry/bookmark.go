package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkJackpot       BookmarkType = "jackpot"
	BookmarkRTPSpike      BookmarkType = "rtp_spike"
	BookmarkBankrupt      BookmarkType = "bankrupt"
	BookmarkWaveMilestone BookmarkType = "wave_milestone"
	BookmarkMaxPower      BookmarkType = "max_power"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	RunID       string       `csv:"run_id"`
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// KillsOf returns the window's kill count for one tier.
func (s WindowStats) KillsOf(r components.Rarity) int {
	switch r {
	case components.RarityCommon:
		return s.KillsCommon
	case components.RarityRare:
		return s.KillsRare
	case components.RarityEpic:
		return s.KillsEpic
	case components.RarityLegendary:
		return s.KillsLegendary
	case components.RarityMythic:
		return s.KillsMythic
	}
	return 0
}

// BookmarkDetector flags notable moments in a run from window stats.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	jackpot       components.Rarity
	spikeFactor   float64
	waveMilestone int
	maxPower      int

	// Edge-triggered state
	lastMilestone int
	bankrupt      bool
	maxedPower    bool
}

// NewBookmarkDetector creates a detector from the telemetry thresholds.
// maxPower is the cannon level that triggers a max_power bookmark.
func NewBookmarkDetector(cfg config.TelemetryConfig, maxPower int) *BookmarkDetector {
	historySize := cfg.BookmarkHistorySize
	if historySize < 3 {
		historySize = 3 // minimum for a meaningful rolling average
	}
	jackpot, ok := components.ParseRarity(cfg.JackpotRarity)
	if !ok {
		jackpot = components.RarityMythic
	}
	return &BookmarkDetector{
		history:       make([]WindowStats, historySize),
		historySize:   historySize,
		jackpot:       jackpot,
		spikeFactor:   cfg.RTPSpikeMultiplier,
		waveMilestone: cfg.WaveMilestone,
		maxPower:      maxPower,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	checks := []func(WindowStats) *Bookmark{
		bd.checkJackpot,
		bd.checkRTPSpike,
		bd.checkBankrupt,
		bd.checkWaveMilestone,
		bd.checkMaxPower,
	}
	for _, check := range checks {
		if b := check(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkJackpot fires on any kill at or above the jackpot tier.
func (bd *BookmarkDetector) checkJackpot(stats WindowStats) *Bookmark {
	var n int
	for r := bd.jackpot; r < components.RarityCount; r++ {
		n += stats.KillsOf(r)
	}
	if n == 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkJackpot,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d %s+ catch(es), %d coins won this window", n, bd.jackpot, stats.CoinsWon),
	}
}

func (bd *BookmarkDetector) checkRTPSpike(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || bd.spikeFactor <= 0 {
		return nil
	}

	var won, spent int64
	for _, h := range history {
		won += h.CoinsWon
		spent += h.CoinsSpent
	}
	if spent == 0 || won == 0 || stats.CoinsSpent == 0 {
		return nil
	}

	avg := float64(won) / float64(spent)
	if stats.RTP > avg*bd.spikeFactor && stats.Kills >= 3 {
		return &Bookmark{
			Type:        BookmarkRTPSpike,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("RTP %.2f is %.1fx average (%.2f)", stats.RTP, stats.RTP/avg, avg),
		}
	}
	return nil
}

// checkBankrupt fires once when the balance can no longer cover the bet,
// and re-arms after the balance recovers.
func (bd *BookmarkDetector) checkBankrupt(stats WindowStats) *Bookmark {
	broke := stats.Coins < int64(stats.Bet)
	if !broke {
		bd.bankrupt = false
		return nil
	}
	if bd.bankrupt {
		return nil
	}
	bd.bankrupt = true
	return &Bookmark{
		Type:        BookmarkBankrupt,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Balance %d cannot cover bet %d", stats.Coins, stats.Bet),
	}
}

func (bd *BookmarkDetector) checkWaveMilestone(stats WindowStats) *Bookmark {
	if bd.waveMilestone <= 0 {
		return nil
	}
	milestone := stats.Wave / bd.waveMilestone * bd.waveMilestone
	if milestone == 0 || milestone <= bd.lastMilestone {
		return nil
	}
	bd.lastMilestone = milestone
	return &Bookmark{
		Type:        BookmarkWaveMilestone,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Reached wave %d", milestone),
	}
}

func (bd *BookmarkDetector) checkMaxPower(stats WindowStats) *Bookmark {
	if bd.maxedPower || bd.maxPower <= 0 || stats.Power < bd.maxPower {
		return nil
	}
	bd.maxedPower = true
	return &Bookmark{
		Type:        BookmarkMaxPower,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Cannon at max power %d", stats.Power),
	}
}
