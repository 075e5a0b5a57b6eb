package domain

import (
	"math"
	"sort"
	"strconv"
)

// Classification is the three-bucket score policy used for NPS reporting and
// quality-score coloring. Boundaries are a fixed business rule: >= 9 promoter,
// 7-8 neutral, < 7 detractor.
type Classification string

const (
	Promoter  Classification = "PROMOTER"
	Neutral   Classification = "NEUTRAL"
	Detractor Classification = "DETRACTOR"
)

// Classify buckets a 0-10 score.
func Classify(score float64) Classification {
	switch {
	case score >= 9:
		return Promoter
	case score >= 7:
		return Neutral
	default:
		return Detractor
	}
}

// TypeCount is one row of the type distribution table.
type TypeCount struct {
	Type    string
	Count   int
	Percent float64
}

// UnitRank is one entry of the per-unit score ranking.
type UnitRank struct {
	Name     string
	Average  float64
	Sessions int
}

// Statistics is the roll-up over one aggregation pass. Event-level counters
// come from the full normalized row list (rows without a session key
// included); session-level counters come from the finalized session set.
type Statistics struct {
	TotalEvents      int
	HumanEvents      int
	AutomatedEvents  int
	HumanPercent     float64
	AutomatedPercent float64

	UniqueParticipants int
	TypeDistribution   []TypeCount

	TotalSessions  int
	ScoredSessions int
	Promoters      int
	Neutrals       int
	Detractors     int
	NPSScore       int
	AverageScore   float64

	UnitRanking []UnitRank
}

// rankEpsilon is the window inside which two averages count as tied and fall
// back to name order, keeping pagination stable.
const rankEpsilon = 0.001

// Reduce computes statistics from the finalized sessions and the full
// normalized event list. It never fails: empty input yields zeroed output.
func Reduce(sessions []*Session, events []NormalizedEvent) Statistics {
	st := Statistics{
		TotalEvents:   len(events),
		TotalSessions: len(sessions),
	}

	participants := make(map[string]bool)
	types := make(map[string]int)
	for _, ev := range events {
		if ev.Role == RoleHuman {
			st.HumanEvents++
		} else {
			st.AutomatedEvents++
		}
		if ev.Participant != "" {
			participants[ev.Participant] = true
		}
		if ev.TypeTag != "" {
			types[ev.TypeTag]++
		}
	}
	st.UniqueParticipants = len(participants)
	st.HumanPercent = percent(st.HumanEvents, st.TotalEvents)
	st.AutomatedPercent = percent(st.AutomatedEvents, st.TotalEvents)

	st.TypeDistribution = make([]TypeCount, 0, len(types))
	for name, count := range types {
		st.TypeDistribution = append(st.TypeDistribution, TypeCount{
			Type:    name,
			Count:   count,
			Percent: percent(count, st.TotalEvents),
		})
	}
	sort.Slice(st.TypeDistribution, func(i, j int) bool {
		a, b := st.TypeDistribution[i], st.TypeDistribution[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Type < b.Type
	})

	var scoreSum float64
	unitSums := make(map[string]float64)
	unitCounts := make(map[string]int)
	for _, s := range sessions {
		if !s.HasScore() {
			continue
		}
		st.ScoredSessions++
		scoreSum += *s.Score
		switch Classify(*s.Score) {
		case Promoter:
			st.Promoters++
		case Neutral:
			st.Neutrals++
		case Detractor:
			st.Detractors++
		}
		if s.Unit != "" {
			unitSums[s.Unit] += *s.Score
			unitCounts[s.Unit]++
		}
	}

	if st.ScoredSessions > 0 {
		st.NPSScore = int(math.Round(float64(st.Promoters-st.Detractors) / float64(st.ScoredSessions) * 100))
		st.AverageScore = round2(scoreSum / float64(st.ScoredSessions))
	}

	st.UnitRanking = make([]UnitRank, 0, len(unitSums))
	for name, sum := range unitSums {
		st.UnitRanking = append(st.UnitRanking, UnitRank{
			Name:     name,
			Average:  round2(sum / float64(unitCounts[name])),
			Sessions: unitCounts[name],
		})
	}
	RankUnits(st.UnitRanking)

	return st
}

// RankUnits orders a ranking by average descending. Averages within
// rankEpsilon of each other are tied and ordered by name ascending.
func RankUnits(ranking []UnitRank) {
	sort.SliceStable(ranking, func(i, j int) bool {
		a, b := ranking[i], ranking[j]
		if math.Abs(a.Average-b.Average) < rankEpsilon {
			return a.Name < b.Name
		}
		return a.Average > b.Average
	})
}

// percent returns count/total as a percentage rounded to two decimals,
// guarding the empty case.
func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(count) / float64(total) * 100)
}

// FormatPercent renders a percentage with the fixed two decimals the
// consuming dashboards expect ("37.00").
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
