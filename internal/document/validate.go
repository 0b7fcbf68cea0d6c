package document

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	shortDocumentRunes  = 200
	keywordPathMinRunes = 300
	minKeywordMatches   = 2
)

var (
	reName  = regexp.MustCompile(`(?m)^\s*[A-Z][a-zA-Z'\-]+(?:\s+[A-Z][a-zA-Z'\-]+){1,3}\s*$`)
	reEmail = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	rePhone = regexp.MustCompile(`(?:\+?\d{1,3}[\s.\-]?)?(?:\(\d{1,4}\)[\s.\-]?)?\d{2,4}[\s.\-]?\d{2,4}[\s.\-]?\d{2,4}`)
)

var resumeKeywords = []string{
	"experience", "education", "skills", "work", "employment", "university",
	"college", "degree", "bachelor", "master", "project", "projects",
	"certification", "certifications", "languages", "summary", "objective",
	"profile", "internship", "responsibilities", "achievements", "references",
	"contact", "curriculum vitae", "resume", "cv", "phd", "diploma", "training",
	"volunteer", "hobbies", "interests", "career", "qualifications",
}

var reKeywords = compileWordSet(resumeKeywords)

var sectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^\s*(?:education|academic background|academic qualifications|qualifications|formation)\s*:?\s*$`),
	regexp.MustCompile(`(?im)^\s*(?:work experience|professional experience|experience|employment history|work history|career history)\s*:?\s*$`),
	regexp.MustCompile(`(?im)^\s*(?:skills|technical skills|core competencies|competencies|key skills|compétences)\s*:?\s*$`),
	regexp.MustCompile(`(?im)^\s*(?:contact|contact information|contact details|personal details|personal information)\s*:?\s*$`),
}

// Validate decides whether text plausibly is a résumé. Short documents are
// accepted on a single identity signal, longer ones need a section header or
// enough résumé vocabulary.
func Validate(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return newInputError(ErrIncompleteDocument, "", "document is empty", nil)
	}

	if utf8.RuneCountInString(text) < shortDocumentRunes {
		if reName.MatchString(text) || reEmail.MatchString(text) || rePhone.MatchString(text) {
			return nil
		}
		return newInputError(ErrIncompleteDocument, "", "short document without name, email or phone", nil)
	}

	for _, pattern := range sectionPatterns {
		if pattern.MatchString(text) {
			return nil
		}
	}

	keywords := countKeywords(text)
	if utf8.RuneCountInString(text) >= keywordPathMinRunes && keywords >= minKeywordMatches {
		return nil
	}

	return newInputError(ErrNotAResume, "", "no résumé sections and too few résumé keywords", nil)
}

func countKeywords(text string) int {
	seen := make(map[string]struct{})
	for _, m := range reKeywords.FindAllString(strings.ToLower(text), -1) {
		seen[strings.TrimSpace(m)] = struct{}{}
	}
	return len(seen)
}

func compileWordSet(words []string) *regexp.Regexp {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}
