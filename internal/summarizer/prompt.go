package summarizer

const systemPrompt = "You are a meeting summarizer."

const promptTemplate = `
You are a meeting summarizer. 
Return the result ONLY in strict JSON following this schema, without extra text:

{
  "MeetingDetails": {
    "Date & Time": "",
    "Location": "",
    "Participants": []
  },
  "Objective": "",
  "AgendaItems": [],
  "KeyDiscussions": "",
  "DecisionsMade": "",
  "ActionItems": [
    {"Task": "", "Owner": "", "DueDate": ""}
  ],
  "NextSteps": "",
  "AdditionalNotes": ""
}
`

// userPrompt appends the transcript verbatim to the schema instruction.
func userPrompt(transcript string) string {
	return promptTemplate + "\n\nTranscript:\n" + transcript
}
