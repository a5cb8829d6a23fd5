package models

// 시트 범위 (Persisted layout)
const (
	InspectionsRange    = "Inspections!A:G"
	InspectionIDRange   = "Inspections!A:A"
	FilesRange          = "Inspection_Files!A:D"
	AnswersRange        = "Inspection_Answers!A:D"
	ComplianceRange     = "Compliance!A:E"
	MasterQuestionRange = "Master_Q!A:D"
)

const (
	StatusPending   = "Pending"
	TimestampLayout = "2006-01-02 15:04:05"

	// compliance resolution overwrites columns C..E (senior remark, explanation, status)
	ComplianceResolutionCol = 2

	InspectionStatusCol = 5
	ComplianceStatusCol = 4
)

// 점검 요약 행
type InspectionSubmission struct {
	ID               string `json:"id"`
	OrgName          string `json:"saja_name"`
	InspectorName    string `json:"vro_name"`
	RegistrationDate string `json:"registration_date"`
	Timestamp        string `json:"timestamp"`
	Status           string `json:"status"`
	PrimaryLink      string `json:"primary_link"`
}

func (s InspectionSubmission) Row() []string {
	return []string{s.ID, s.OrgName, s.InspectorName, s.RegistrationDate, s.Timestamp, s.Status, s.PrimaryLink}
}

// 업로드 파일 한 건. FileID는 시트에 저장하지 않음
type FileAttachment struct {
	InspectionID string `json:"inspection_id"`
	QuestionID   string `json:"question_id"`
	FileName     string `json:"file_name"`
	FileURL      string `json:"file_url"`
	FileID       string `json:"file_id"`
}

func (f FileAttachment) Row() []string {
	return []string{f.InspectionID, f.QuestionID, f.FileName, f.FileURL}
}

type AnswerRecord struct {
	InspectionID string `json:"inspection_id"`
	QuestionID   string `json:"question_id"`
	Answer       string `json:"answer"`
	Remark       string `json:"remark"`
}

func (a AnswerRecord) Row() []string {
	return []string{a.InspectionID, a.QuestionID, a.Answer, a.Remark}
}

type ComplianceRecord struct {
	InspectionID string `json:"log_id"`
	Remark       string `json:"remark"`
	SeniorRemark string `json:"senior_remark"`
	Explanation  string `json:"explanation"`
	Status       string `json:"status"`
}

func (c ComplianceRecord) Row() []string {
	return []string{c.InspectionID, c.Remark, c.SeniorRemark, c.Explanation, c.Status}
}

// Resolution is the C..E tail written by the compliance resolution flow.
func (c ComplianceRecord) Resolution() []string {
	return []string{c.SeniorRemark, c.Explanation, c.Status}
}

type SheetLayout struct {
	Title   string
	Headers []string
}

// Layouts lists every sheet the backend reads or writes, with header rows.
var Layouts = []SheetLayout{
	{Title: "Master_Q", Headers: []string{QuestionIDHeader, QuestionSectionHeader, QuestionTextHeader, QuestionUploadHeader}},
	{Title: "Inspections", Headers: []string{"ID", "सजा", "नाव", "नोंदणी तारीख", "वेळ", "स्थिती", "फाईल लिंक"}},
	{Title: "Inspection_Files", Headers: []string{"Inspection_ID", "Question_ID", "File_Name", "File_URL"}},
	{Title: "Inspection_Answers", Headers: []string{"Inspection_ID", "Question_ID", "Answer", "Remark"}},
	{Title: "Compliance", Headers: []string{"Log_ID", "अधिकारी शेरा", "वरिष्ठ मत", "स्पष्टीकरण", "स्थिती"}},
}
