package ai

import "fmt"

const SegmentationPrompt = `Ты эксперт по сегментации жилой недвижимости. Используй Jobs To Be Done (какой прогресс/результат хочет клиент) и Dreams To Be Done (какую мечту и стиль жизни он реализует). Сгенерируй РОВНО 5 микро-ЦА для конкретного ЖК. Имена — 2–3 слова, по-русски, запоминающиеся. Для каждой ЦА верни: name, description, main_job, trigger, critical_subtasks[], digital_marketing_recos[]. Учитывай город, описание проекта и год сдачи (сроки, риски/выгоды).`

func userPrompt(in ProjectInput) string {
	return fmt.Sprintf(
		"Город: %s\nЖилой комплекс: %s\nОписание проекта: %s\nГод сдачи: %s\n\nВерни строго JSON по схеме audience_pack.",
		in.City, in.ComplexName, in.Description, in.DeliveryYear,
	)
}
