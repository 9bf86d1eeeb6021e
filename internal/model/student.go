package model

// SkillCount is the number of self-assessed topics stored per student.
const SkillCount = 6

// Student 学生记录（外部导入，只读）
type Student struct {
	ID              uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Email           string `gorm:"column:student_email;size:255;index"`
	JavaProgramming string `gorm:"column:java_programming;size:50"`
	SQL             string `gorm:"column:SQL;size:50"`
	DataMiningAndML string `gorm:"column:data_mining_and_machine_learning;size:50"`
	IoT             string `gorm:"column:IoT;size:50"`
	HCI             string `gorm:"column:HCI;size:50"`
	Blockchains     string `gorm:"column:blockchains;size:50"`
}

func (Student) TableName() string {
	return "answers"
}

// SkillLevels returns the six skill labels in declared topic order.
func (s *Student) SkillLevels() [SkillCount]string {
	return [SkillCount]string{
		s.JavaProgramming,
		s.SQL,
		s.DataMiningAndML,
		s.IoT,
		s.HCI,
		s.Blockchains,
	}
}
