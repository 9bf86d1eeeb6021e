package model

// Topic is a 1-based topic index. Topics 1..6 follow the skill fields of
// Student; TopicCoding is the fixed coding question.
type Topic int

const (
	TopicJava Topic = iota + 1
	TopicSQL
	TopicDataMining
	TopicIoT
	TopicHCI
	TopicBlockchains
	TopicCoding
)

// SkillTopics lists the six self-assessed topics in declared field order.
var SkillTopics = [SkillCount]Topic{
	TopicJava,
	TopicSQL,
	TopicDataMining,
	TopicIoT,
	TopicHCI,
	TopicBlockchains,
}

func (t Topic) String() string {
	switch t {
	case TopicJava:
		return "java_programming"
	case TopicSQL:
		return "SQL"
	case TopicDataMining:
		return "data_mining_and_machine_learning"
	case TopicIoT:
		return "IoT"
	case TopicHCI:
		return "HCI"
	case TopicBlockchains:
		return "blockchains"
	case TopicCoding:
		return "coding"
	}
	return "unknown"
}
