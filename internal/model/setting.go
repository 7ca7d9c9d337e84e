package model

type Setting struct {
	ID    uint   `json:"-" gorm:"primaryKey"`
	Key   string `json:"key" gorm:"uniqueIndex;not null"`
	Value string `json:"value"`
	Desc  string `json:"desc"`
	// Sensitive 为 true 的配置项对外展示时脱敏
	Sensitive bool `json:"sensitive" gorm:"default:false"`
}
