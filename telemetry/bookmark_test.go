package telemetry

import (
	"testing"

	"github.com/pthm-cable/reef/config"
)

func testDetector() *BookmarkDetector {
	return NewBookmarkDetector(config.TelemetryConfig{
		BookmarkHistorySize: 10,
		JackpotRarity:       "legendary",
		RTPSpikeMultiplier:  3,
		WaveMilestone:       5,
	}, 10)
}

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_Jackpot(t *testing.T) {
	bd := testDetector()

	if hasBookmark(bd.Check(WindowStats{Coins: 100, Bet: 1, KillsEpic: 4}), BookmarkJackpot) {
		t.Error("epic kills should not count as a jackpot")
	}
	if !hasBookmark(bd.Check(WindowStats{Coins: 100, Bet: 1, KillsMythic: 1}), BookmarkJackpot) {
		t.Error("expected jackpot bookmark for a mythic kill")
	}
	if !hasBookmark(bd.Check(WindowStats{Coins: 100, Bet: 1, KillsLegendary: 1}), BookmarkJackpot) {
		t.Error("expected jackpot bookmark at the configured tier")
	}
}

func TestBookmarkDetector_RTPSpike(t *testing.T) {
	bd := testDetector()

	// Steady history at RTP 0.5
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{
			WindowEndTick: int64(i * 600),
			Coins:         500,
			Bet:           1,
			CoinsSpent:    100,
			CoinsWon:      50,
			RTP:           0.5,
			Kills:         10,
		})
	}

	spike := WindowStats{
		WindowEndTick: 3000,
		Coins:         700,
		Bet:           1,
		CoinsSpent:    100,
		CoinsWon:      250,
		RTP:           2.5, // 5x the 0.5 average
		Kills:         12,
	}
	if !hasBookmark(bd.Check(spike), BookmarkRTPSpike) {
		t.Error("expected rtp_spike bookmark")
	}

	flat := spike
	flat.RTP = 0.6
	flat.CoinsWon = 60
	if hasBookmark(bd.Check(flat), BookmarkRTPSpike) {
		t.Error("unexpected rtp_spike for an ordinary window")
	}
}

func TestBookmarkDetector_BankruptEdgeTriggered(t *testing.T) {
	bd := testDetector()

	if !hasBookmark(bd.Check(WindowStats{Coins: 3, Bet: 5}), BookmarkBankrupt) {
		t.Fatal("expected bankrupt bookmark")
	}
	if hasBookmark(bd.Check(WindowStats{Coins: 0, Bet: 5}), BookmarkBankrupt) {
		t.Error("bankrupt should not repeat while still broke")
	}
	bd.Check(WindowStats{Coins: 50, Bet: 5})
	if !hasBookmark(bd.Check(WindowStats{Coins: 1, Bet: 5}), BookmarkBankrupt) {
		t.Error("bankrupt should re-arm after recovery")
	}
}

func TestBookmarkDetector_WaveMilestone(t *testing.T) {
	bd := testDetector()

	var hits []int
	for wave := 1; wave <= 12; wave++ {
		if hasBookmark(bd.Check(WindowStats{Wave: wave, Coins: 10, Bet: 1}), BookmarkWaveMilestone) {
			hits = append(hits, wave)
		}
	}
	// Repeated windows in the same wave stay quiet.
	if hasBookmark(bd.Check(WindowStats{Wave: 12, Coins: 10, Bet: 1}), BookmarkWaveMilestone) {
		t.Error("milestone repeated")
	}

	if len(hits) != 2 || hits[0] != 5 || hits[1] != 10 {
		t.Errorf("milestones at waves %v, want [5 10]", hits)
	}
}

func TestBookmarkDetector_MaxPowerOnce(t *testing.T) {
	bd := testDetector()

	if hasBookmark(bd.Check(WindowStats{Power: 9, Coins: 10, Bet: 1}), BookmarkMaxPower) {
		t.Error("max_power below the cap")
	}
	if !hasBookmark(bd.Check(WindowStats{Power: 10, Coins: 10, Bet: 1}), BookmarkMaxPower) {
		t.Error("expected max_power bookmark")
	}
	if hasBookmark(bd.Check(WindowStats{Power: 10, Coins: 10, Bet: 1}), BookmarkMaxPower) {
		t.Error("max_power repeated")
	}
}
