package generator

import "time"

type Season string

const (
	SeasonSpring Season = "春（3-5月）"
	SeasonSummer Season = "夏（6-8月）"
	SeasonAutumn Season = "秋（9-11月）"
	SeasonWinter Season = "冬（12-2月）"
)

// SeasonFor maps a calendar month to its season label.
func SeasonFor(month time.Month) Season {
	switch {
	case month >= time.March && month <= time.May:
		return SeasonSpring
	case month >= time.June && month <= time.August:
		return SeasonSummer
	case month >= time.September && month <= time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}
