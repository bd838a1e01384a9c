package llm

import "fmt"

// RewritePrompt builds the bullet-rewrite prompt with its fixed
// section-marker contract.
func RewritePrompt(jobDescription, bullet string) string {
	return fmt.Sprintf(`You are a professional resume writer. Your task is to improve the following resume bullet point to better match the job description.

%s

ORIGINAL BULLET POINT:
%s

INSTRUCTIONS:
1. Provide 3 improved versions of this bullet point
2. For each version, list 2-3 key changes made and why they improve the bullet
3. Format your response EXACTLY as shown below, including all section headers and separators:

---IMPROVED BULLETS---
1. [Improved bullet point 1 with strong action verb and metrics]
2. [Improved bullet point 2 with different focus area]
3. [Improved bullet point 3 with quantifiable results]

---KEY CHANGES---
1. [Change 1 for bullet 1][Change 2 for bullet 1][Change 3 for bullet 1]
2. [Change 1 for bullet 2][Change 2 for bullet 2][Change 3 for bullet 2]
3. [Change 1 for bullet 3][Change 2 for bullet 3][Change 3 for bullet 3]

RULES:
- Each bullet point should start with a strong action verb
- Include metrics and quantifiable results where possible
- Focus on the skills and requirements mentioned in the job description
- Keep each change description concise (1 short sentence)
- Use square brackets [] to separate multiple changes for each bullet
- Do not include any other text outside the specified format`, jobDescription, bullet)
}

// StarPrompt builds the STAR-story prompt.
func StarPrompt(bullet string) string {
	return fmt.Sprintf("Create a STAR-formatted interview answer for the following experience bullet from a resume. Return a plain JSON string with keys: situation, task, action, result.\n\nResume Bullet: %s", bullet)
}

// ExtractBulletsPrompt builds the resume bullet extraction prompt.
func ExtractBulletsPrompt(resumeText string) string {
	return fmt.Sprintf("Extract the key resume bullet points from the following resume text. Return each bullet on its own line without markers.\n\n%s", resumeText)
}
