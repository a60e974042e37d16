package utils

import (
	"fmt"
	"strings"

	"github.com/ruei-yu/activity-checkin-points/config"
)

// UnlockedRewards returns the tiers whose threshold the given point total
// has reached, in ascending threshold order.
func UnlockedRewards(points int, tiers []config.RewardTier) []config.RewardTier {
	var unlocked []config.RewardTier
	for _, t := range tiers {
		if points >= t.Threshold {
			unlocked = append(unlocked, t)
		}
	}
	return unlocked
}

// RewardText renders the unlocked-rewards summary line shown on the
// personal view. tiers must be sorted by ascending threshold.
func RewardText(points int, tiers []config.RewardTier) string {
	unlocked := UnlockedRewards(points, tiers)
	if len(unlocked) == 0 {
		return "尚未解鎖獎勵，繼續加油～"
	}
	parts := make([]string, 0, len(unlocked))
	for _, t := range unlocked {
		parts = append(parts, fmt.Sprintf("%d點：%s", t.Threshold, t.Reward))
	}
	return "✅ 已解鎖｜" + strings.Join(parts, "、")
}

// NextRewardHint tells the participant how far the next tier is.
// tiers must be sorted by ascending threshold.
func NextRewardHint(points int, tiers []config.RewardTier) string {
	for _, t := range tiers {
		if points < t.Threshold {
			return fmt.Sprintf("再 %d 點可獲得「%s」", t.Threshold-points, t.Reward)
		}
	}
	return "你已達最高獎勵門檻 🎉"
}
