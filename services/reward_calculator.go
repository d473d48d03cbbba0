package services

// RewardParams are the tunable economic inputs to the reward formula,
// copied from the platform state at the start of each operation.
type RewardParams struct {
	BaseRewardPerWin      uint64
	StreakBonusMultiplier uint64 // percent of base per streak step
}

// ComputeReward returns the tokens earned for one game outcome.
// Deterministic: the same (winStreak, score, isWin, params) always
// yields the same amount, which is what makes exact token balances
// reproducible in tests and audits.
//
// winStreak is the player's streak BEFORE this game is applied.
// Integer division truncates throughout, matching the source ledger:
//
//	base/4  participation cut, win or lose
//	+base   on a win
//	+base × streak × multiplier / 100   streak bonus, wins only
//	+score / 100
func ComputeReward(winStreak uint64, score int64, isWin bool, params RewardParams) uint64 {
	reward := params.BaseRewardPerWin / 4
	if isWin {
		reward += params.BaseRewardPerWin
		if winStreak > 0 {
			reward += params.BaseRewardPerWin * winStreak * params.StreakBonusMultiplier / 100
		}
	}
	if score > 0 {
		reward += uint64(score) / 100
	}
	return reward
}
