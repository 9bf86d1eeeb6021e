package service

import (
	"llm_survey_backend/internal/model"
	"sort"
)

// levelOrder 自评熟练度标签到序数的映射
var levelOrder = map[string]int{
	"Not familiar at all": 0,
	"Beginner":            1,
	"Moderate":            2,
	"Proficient":          3,
	"Very proficient":     4,
}

// unknownLevel ranks below every known label.
const unknownLevel = -1

const (
	weakestCount   = 2
	strongestCount = 2
)

func LevelRank(label string) int {
	if rank, ok := levelOrder[label]; ok {
		return rank
	}
	return unknownLevel
}

// SelectTopics picks the two lowest-ranked skills followed by the two
// highest-ranked ones. Equal ranks keep declared field order.
func SelectTopics(levels [model.SkillCount]string) []model.Topic {
	type rankedTopic struct {
		topic model.Topic
		rank  int
	}

	ranked := make([]rankedTopic, model.SkillCount)
	for i, label := range levels {
		ranked[i] = rankedTopic{topic: model.SkillTopics[i], rank: LevelRank(label)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].rank < ranked[j].rank
	})

	topics := make([]model.Topic, 0, weakestCount+strongestCount)
	for _, r := range ranked[:weakestCount] {
		topics = append(topics, r.topic)
	}
	for _, r := range ranked[len(ranked)-strongestCount:] {
		topics = append(topics, r.topic)
	}
	return topics
}
