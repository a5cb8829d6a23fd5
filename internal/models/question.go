package models

// Master_Q 헤더
const (
	QuestionIDHeader      = "ID"
	QuestionSectionHeader = "विभाग"
	QuestionTextHeader    = "प्रश्न"
	QuestionUploadHeader  = "अपलोड आवश्यक"
)

type Question struct {
	ID             string `json:"ID"`
	Section        string `json:"section"`
	Text           string `json:"text"`
	UploadRequired string `json:"upload_required"`
}

// FallbackQuestions is used when Master_Q is empty or unreadable.
var FallbackQuestions = []Question{
	{ID: "1", Section: "सामान्य", Text: "दप्तर अद्ययावत आहे का?", UploadRequired: "हो"},
	{ID: "2", Section: "सामान्य", Text: "नोंदवही पूर्ण आहे का?", UploadRequired: "नाही"},
}

// QuestionFromRecord maps a Master_Q record (header -> value) to a Question.
func QuestionFromRecord(rec map[string]string) Question {
	return Question{
		ID:             rec[QuestionIDHeader],
		Section:        rec[QuestionSectionHeader],
		Text:           rec[QuestionTextHeader],
		UploadRequired: rec[QuestionUploadHeader],
	}
}

func (q Question) Row() []string {
	return []string{q.ID, q.Section, q.Text, q.UploadRequired}
}
