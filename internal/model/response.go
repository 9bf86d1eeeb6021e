package model

// DefaultResponse 全局默认回答，按题目区分
type DefaultResponse struct {
	QuestionID uint   `gorm:"column:question_id;primaryKey;autoIncrement:false"`
	Response   string `gorm:"column:response;type:text"`
}

func (DefaultResponse) TableName() string {
	return "llm_response_default"
}

// ResponseVariant identifies one of the per-student response tables.
type ResponseVariant string

const (
	VariantSkills   ResponseVariant = "skills"
	VariantHobbies  ResponseVariant = "hobbies"
	VariantSubjects ResponseVariant = "subjects"
	VariantAll      ResponseVariant = "all"
)

// StudentVariants lists the per-student variants in form rank order (2..5).
var StudentVariants = []ResponseVariant{VariantSkills, VariantHobbies, VariantSubjects, VariantAll}

func (v ResponseVariant) TableName() string {
	return "llm_response_" + string(v)
}

// StudentResponseSet is one row of a per-student variant table; all four
// tables share this shape.
type StudentResponseSet struct {
	StudentID           uint   `gorm:"column:student_id;primaryKey;autoIncrement:false"`
	JavaResponse        string `gorm:"column:java_response;type:text"`
	SQLResponse         string `gorm:"column:sql_response;type:text"`
	DataMiningResponse  string `gorm:"column:data_mining_response;type:text"`
	IoTResponse         string `gorm:"column:IOT_response;type:text"`
	HCIResponse         string `gorm:"column:HCI_response;type:text"`
	BlockchainsResponse string `gorm:"column:blockchains_response;type:text"`
	CodingResponse      string `gorm:"column:coding_response;type:text"`
}

// ForTopic returns the text stored for a topic, or "" for an unknown topic.
func (r *StudentResponseSet) ForTopic(topic Topic) string {
	switch topic {
	case TopicJava:
		return r.JavaResponse
	case TopicSQL:
		return r.SQLResponse
	case TopicDataMining:
		return r.DataMiningResponse
	case TopicIoT:
		return r.IoTResponse
	case TopicHCI:
		return r.HCIResponse
	case TopicBlockchains:
		return r.BlockchainsResponse
	case TopicCoding:
		return r.CodingResponse
	}
	return ""
}
