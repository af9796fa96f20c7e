package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type AssignmentCreatedMailData struct {
	FullName  string `json:"fullName"`
	ShiftName string `json:"shiftName"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type AssignmentMovedMailData struct {
	FullName  string `json:"fullName"`
	ShiftName string `json:"shiftName"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}
