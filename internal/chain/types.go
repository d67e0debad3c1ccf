package chain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// RoundStatus is the prediction round lifecycle state on the contract.
type RoundStatus uint8

const (
	RoundOpen RoundStatus = iota
	RoundClosed
	RoundResolved
)

func (s RoundStatus) String() string {
	switch s {
	case RoundOpen:
		return "open"
	case RoundClosed:
		return "closed"
	case RoundResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Tier is the reward tier on the rewards contract.
type Tier uint8

const (
	TierBronze Tier = iota
	TierSilver
	TierGold
	TierPlatinum
	TierDiamond
)

var tierNames = [...]string{"Bronze", "Silver", "Gold", "Platinum", "Diamond"}

func (t Tier) String() string {
	if int(t) < len(tierNames) {
		return tierNames[t]
	}
	return "Unknown"
}

// Round mirrors the prediction contract's round tuple. Field names must
// match the ABI component names for abi.ConvertType to map them.
type Round struct {
	RoundId        *big.Int `json:"round_id"`
	TokenSymbol    string   `json:"token_symbol"`
	StartTime      *big.Int `json:"start_time"`
	EndTime        *big.Int `json:"end_time"`
	ResolutionTime *big.Int `json:"resolution_time"`
	InitialScore   *big.Int `json:"initial_score"`
	FinalScore     *big.Int `json:"final_score"`
	TotalUpStake   *big.Int `json:"total_up_stake"`
	TotalDownStake *big.Int `json:"total_down_stake"`
	Status         uint8    `json:"status"`
	PredictionType uint8    `json:"prediction_type"`
	Resolved       bool     `json:"resolved"`
	UpWon          bool     `json:"up_won"`
}

// UserPrediction mirrors the per-user stake tuple.
type UserPrediction struct {
	RoundId     *big.Int       `json:"round_id"`
	User        common.Address `json:"user"`
	PredictedUp bool           `json:"predicted_up"`
	StakeAmount *big.Int       `json:"stake_amount"`
	Claimed     bool           `json:"claimed"`
	Reward      *big.Int       `json:"reward"`
}

// UserProfile mirrors the rewards contract's profile tuple.
type UserProfile struct {
	TotalRewardsEarned *big.Int `json:"total_rewards_earned"`
	ContributionScore  *big.Int `json:"contribution_score"`
	PredictionAccuracy *big.Int `json:"prediction_accuracy"`
	StreakCount        *big.Int `json:"streak_count"`
	MaxStreak          *big.Int `json:"max_streak"`
	Tier               uint8    `json:"tier"`
	LastClaimTime      *big.Int `json:"last_claim_time"`
	IsActive           bool     `json:"is_active"`
}

// UserStats is the flat getUserStats output.
type UserStats struct {
	TotalPredictions *big.Int `json:"total_predictions"`
	TotalWins        *big.Int `json:"total_wins"`
	WinRate          *big.Int `json:"win_rate"`
}

// ScorePercent converts the contract's 0-10000 score scale to 0-100.
func ScorePercent(score *big.Int) float64 {
	if score == nil {
		return 0
	}
	v, _ := new(big.Float).Quo(new(big.Float).SetInt(score), big.NewFloat(100)).Float64()
	return v
}
