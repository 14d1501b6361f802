package screening

const ParsePrompt = `
# Task Context
You are an expert resume parser. You will be provided with the raw text of a candidate's resume.

# Background Data
%s

# Detailed Task Description & Rules
- Extract the candidate's name, email address, and phone number exactly as written.
- Extract all skills mentioned anywhere in the resume, including skill sections, project descriptions, and job descriptions.
- Extract every education entry with degree, institution, and dates where available.
- Extract every work experience entry with job title, company, and dates.
- Keep dates in the wording used by the resume (e.g. "March 2021", "2019", "Present"). Do not convert or normalize them.
- If a field is not present in the resume, use an empty string for string fields and an empty array for list fields.
- Do not infer, assume, or add information that is not explicitly present in the text.

# Output Formatting
Return a JSON object with this structure:
{
  "name": "string",
  "email": "string",
  "phone": "string",
  "skills": ["string"],
  "education": [
    {
      "degree": "string",
      "institution": "string",
      "start_date": "string",
      "end_date": "string"
    }
  ],
  "experience": [
    {
      "job_title": "string",
      "company": "string",
      "start_date": "string",
      "end_date": "string"
    }
  ]
}
Output must be valid JSON only (no commentary, no extra text).
`

const ExperiencePrompt = `
# Task Context
You are an expert in career history verification. You will be provided with the work experience entries extracted from a candidate's resume.

# Background Data
%s

# Detailed Task Description & Rules
- Check each entry and the entries in combination for plausibility.
- Look for the following issues:
  * Overlapping full-time positions at different companies
  * Unexplained gaps of more than a year between positions
  * Implausibly short stints across many companies
  * End dates before start dates, or dates in the future
  * Title inflation that does not match the stated timeline (e.g. "Senior Director" after one year of total experience)
- Be conservative: common patterns like contract work, internships, or a single gap are not suspicious on their own.
- Set "status" to "suspicious" only if at least one concrete issue is found, otherwise "valid".
- List each concrete issue found as a short flag string.

# Output Formatting
Return a JSON object with this structure:
{
  "status": "valid | suspicious",
  "reasoning": "string",
  "flags": ["string"]
}
Output must be valid JSON only (no commentary, no extra text).
`

const EducationPrompt = `
# Task Context
You are an expert in education credential verification. You will be provided with the education entries extracted from a candidate's resume.

# Background Data
%s

# Detailed Task Description & Rules
- Check each entry and the entries in combination for plausibility.
- Look for the following issues:
  * Institutions known or strongly suspected to be degree mills
  * Degrees completed in implausibly short time frames
  * Degrees in the wrong order (e.g. a master's degree finished before the bachelor's degree started)
  * Overlapping full-time degree programs at different institutions
  * Dates in the future or end dates before start dates
- Be conservative: missing dates or unfamiliar but plausible institutions are not suspicious on their own.
- Set "suspicious" to true only if at least one concrete issue is found.
- List each concrete issue found as a short reason string.

# Output Formatting
Return a JSON object with this structure:
{
  "suspicious": true,
  "reasons": ["string"]
}
Output must be valid JSON only (no commentary, no extra text).
`

const ReportPrompt = `
# Task Context
You are an expert fraud analyst writing the final screening report for a human reviewer. You will be provided with the aggregated screening signals for one candidate.

# Background Data
%s

# Detailed Task Description & Rules
- The signals contain the experience analysis, the education analysis, the plagiarism matches against previously seen resumes, and (if a job description was provided) the resume-vs-job-description similarity result.
- Summarize the plagiarism matches in prose instead of repeating the raw match list. Name the matched source files if there are any.
- If the job description similarity is present, state the average score and whether it crossed the match threshold. If it is absent, state that no job description was provided.
- List every education anomaly from the education analysis.
- Include one fraud indicator per signal that raised an issue, carrying over the reasoning and flags.
- End with a short final recommendation: proceed, proceed with caution, or reject, with a one-sentence justification.
- Base the report only on the provided signals. Do not infer, assume, or add external knowledge.

# Output Formatting
Return a JSON object with this structure:
{
  "fraud_indicators": [
    {
      "status": "string",
      "reasoning": "string",
      "flags": ["string"]
    }
  ],
  "plagiarism_summary": "string",
  "resume_vs_jd_similarity": "string",
  "education_anomalies": ["string"],
  "final_recommendation": "string"
}
Output must be valid JSON only (no commentary, no extra text).
`
