package enhance

import "strings"

// The model is asked for a custom marker-delimited grammar instead of JSON.
// Raw LaTeX is full of backslashes and braces that models routinely fail to
// escape, so JSON replies are unreliable; paired markers degrade gracefully
// when the model drifts.
const promptTemplate = `You are an AI assistant tasked with helping users improve their LaTeX-formatted resumes to better match specific job descriptions.

Instructions:
- Update the resume to match the job description, ensuring the following:
- Use consistent formatting throughout.
- Highlight relevant keywords and skills that match the job description, both technical and soft.
- Use clear, concise action verbs to describe responsibilities and achievements.
- Maintain the original tone and voice.
- Prefer directly related roles, but still reflect transferable skills (e.g., leadership, initiative, adaptability) from unrelated experiences.
- Check for and correct any grammar or formatting issues.
- Limit the resume to strictly one page in 11 pt font. Prioritize relevance; shorten sentences as needed without losing key information.
- Only rephrase or reorder existing information. Do not invent or add new content.
- Preserve all LaTeX formatting and structure.
- Every enhancement or removal item must carry a non-empty description and reason.
- The match score should reflect the following weights:
- Technical skill overlap: 40%
- Educational relevance: 25%
- Experience alignment (e.g., labs, internships): 25%
- Format/tone alignment with job role: 10%
- If core technical skills, tools, or location flexibility are missing from the resume, deduct accordingly.
- Provide a match_score (integer 0-100) and a match_score_explanation (1-2 sentences).

Return your output using EXACTLY this structure, with these literal tags and nothing else. Do NOT return JSON. Do NOT wrap the output in markdown code fences.

<rewritten_resume>
(the complete rewritten LaTeX resume)
</rewritten_resume>
<analysis>
<match_score>integer 0-100</match_score>
<match_score_explanation>1-2 sentences</match_score_explanation>
<summary_of_changes>
<enhanced_parts>
item: (title of the enhanced part)
description: (what changed)
reason: (why it was changed)
---
(repeat for each enhanced part, separated by ---)
</enhanced_parts>
<removed_parts>
item: (title of the removed part)
description: (what was removed)
reason: (why it was removed)
---
(repeat for each removed part, separated by ---)
</removed_parts>
</summary_of_changes>
</analysis>

LaTeX Resume:
{{RESUME}}

Job Description:
{{JOB_DESCRIPTION}}`

// BuildPrompt renders the deterministic instruction template for one request.
// The parser depends on the exact marker text declared here.
func BuildPrompt(resumeSource, jobDescription string) string {
	replacer := strings.NewReplacer(
		"{{RESUME}}", resumeSource,
		"{{JOB_DESCRIPTION}}", jobDescription,
	)
	return replacer.Replace(promptTemplate)
}
