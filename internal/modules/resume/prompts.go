package resume

import "strings"

const parseSystemPrompt = `You are a resume parser. Extract structured information from the resume text
and return a single JSON object matching this schema. Use null for unknown
scalars and [] for empty lists. Do not invent values.

{
  "first_name": string,
  "middle_name": string | null,
  "last_name": string,
  "contact_no": string | null,
  "email": string,
  "education": [
    {
      "university": string,
      "degree": string,
      "major": string | null,
      "cgpa": number | null,
      "scale": number | null,
      "minor": [string] | null,
      "graduation_date": string | null
    }
  ],
  "experience": [
    {
      "company": string,
      "position": string,
      "description": string | null,
      "start_date": string | null,
      "end_date": string | null
    }
  ],
  "skills": [string],
  "certifications": [string]
}`

func parseUserPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Resume text:\n")
	b.WriteString(text)
	return b.String()
}
