package ai

import "context"

// ProjectInput — четыре поля, собранные ботом у пользователя
type ProjectInput struct {
	City         string
	ComplexName  string
	Description  string
	DeliveryYear string
}

// Audience — одна микро-ЦА из ответа модели
type Audience struct {
	Name                  string   `json:"name"`
	Description           string   `json:"description"`
	MainJob               string   `json:"main_job"`
	Trigger               string   `json:"trigger"`
	CriticalSubtasks      []string `json:"critical_subtasks"`
	DigitalMarketingRecos []string `json:"digital_marketing_recos"`
}

// Segmenter — внешний интеллект, не знает ни про Telegram, ни про HTTP.
// Возвращает либо ровно 5 валидных ЦА, либо ошибку — частичных результатов нет.
type Segmenter interface {
	GenerateAudiences(ctx context.Context, in ProjectInput) ([]Audience, error)
}
